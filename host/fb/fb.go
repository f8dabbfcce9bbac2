// Package fb displays a session on the Linux framebuffer and reads
// keyboard and mouse input from evdev devices.
package fb

import (
	"context"
	"errors"
	"image"
	"sync"

	framebuffer "github.com/gonutz/framebuffer"
	"github.com/rook-computer/easel/internal/system"
	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/render/layout"
	"github.com/rook-computer/easel/session"
)

const DefaultDevice = "/dev/fb0"

// Config selects the devices a Display uses.
type Config struct {
	Device    string
	InputGlob string
	Renderer  render.Kind
	Logger    session.Logger
	// OnQuit runs once when F4 is pressed.
	OnQuit func()
}

// Display is a session.Provider backed by a framebuffer device.
type Display struct {
	dev      *framebuffer.Device
	out      render.Target
	renderer render.Kind
	glob     string
	logger   session.Logger
	onQuit   func()
	quitOnce sync.Once

	mu        sync.Mutex
	placement image.Rectangle
	mouseX    float64
	mouseY    float64

	console bool
}

var _ session.Provider = (*Display)(nil)

// Open opens the framebuffer, switches the console to graphics mode and
// hides the cursor. Close undoes all three.
func Open(cfg Config) (*Display, error) {
	if cfg.Device == "" {
		cfg.Device = DefaultDevice
	}
	if cfg.Logger == nil {
		cfg.Logger = session.NoopLogger{}
	}
	dev, err := framebuffer.Open(cfg.Device)
	if err != nil {
		return nil, err
	}
	bounds := dev.Bounds()
	cfg.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())

	d := newDisplay(dev, cfg)
	d.dev = dev
	if err := system.SetGraphicsMode(cfg.Logger); err == nil {
		d.console = true
	}
	_ = system.HideCursor(cfg.Logger)
	return d, nil
}

func newDisplay(out render.Target, cfg Config) *Display {
	bounds := out.Bounds()
	logger := cfg.Logger
	if logger == nil {
		logger = session.NoopLogger{}
	}
	return &Display{
		out:      out,
		renderer: cfg.Renderer,
		glob:     cfg.InputGlob,
		logger:   logger,
		onQuit:   cfg.OnQuit,
		mouseX:   float64(bounds.Dx()) / 2,
		mouseY:   float64(bounds.Dy()) / 2,
	}
}

// Close restores the console and releases the device.
func (d *Display) Close() error {
	_ = system.ShowCursor(d.logger)
	if d.console {
		_ = system.RestoreTextMode(d.logger)
	}
	if d.dev != nil {
		d.dev.Close()
	}
	return nil
}

func (d *Display) NewSurface(width, height int) (render.Surface, error) {
	return render.New(d.renderer, width, height, d.present)
}

// Viewport is the framebuffer resolution.
func (d *Display) Viewport() (float64, float64) {
	bounds := d.out.Bounds()
	return float64(bounds.Dx()), float64(bounds.Dy())
}

func (d *Display) Place(p layout.Placement) {
	rect := image.Rectangle{}
	if !p.Empty() {
		rect = p.Rect()
	}
	d.mu.Lock()
	d.placement = rect
	d.mu.Unlock()
}

func (d *Display) present(frame *image.RGBA) error {
	d.mu.Lock()
	place := d.placement
	d.mu.Unlock()
	render.Blit(d.out, frame, place)
	return nil
}

// Listen starts reading evdev devices. Input is best-effort: without
// devices the display still works and Listen only logs.
func (d *Display) Listen(ctx context.Context, sink session.EventSink) error {
	err := system.WatchInput(ctx, d.glob, d.logger, func(ev system.InputEvent) {
		d.handle(ev, sink)
	})
	if errors.Is(err, system.ErrNoInputDevices) {
		d.logger.Infof("fb", "no input devices, display only")
		return nil
	}
	return err
}

func (d *Display) handle(ev system.InputEvent, sink session.EventSink) {
	switch ev.Type {
	case system.EvKey:
		if ev.Code == system.KeyF4 && ev.Value == system.KeyPressed && d.onQuit != nil {
			d.quitOnce.Do(func() {
				d.logger.Infof("input", "F4 pressed: exiting")
				d.onQuit()
			})
		}
		name, ok := system.KeyCodeName(ev.Code)
		if !ok {
			return
		}
		switch ev.Value {
		case system.KeyPressed, system.KeyRepeated:
			sink.KeyDown(name)
		case system.KeyReleased:
			sink.KeyUp(name)
		}
	case system.EvRel:
		if ev.Code != system.RelX && ev.Code != system.RelY {
			return
		}
		x, y := d.moveMouse(ev.Code, float64(ev.Value))
		sink.PointerMove(x, y)
	}
}

// moveMouse applies a relative motion and clamps the result to the
// viewport.
func (d *Display) moveMouse(axis uint16, delta float64) (float64, float64) {
	width, height := d.Viewport()
	d.mu.Lock()
	defer d.mu.Unlock()
	if axis == system.RelX {
		d.mouseX = clamp(d.mouseX+delta, 0, width-1)
	} else {
		d.mouseY = clamp(d.mouseY+delta, 0, height-1)
	}
	return d.mouseX, d.mouseY
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
