// Package term displays a session in a terminal using half-block
// characters, two pixels per cell, and feeds terminal keyboard and mouse
// input back to it.
package term

import (
	"context"
	"image"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/render/layout"
	"github.com/rook-computer/easel/session"
)

// DefaultReleaseAfter is how long a key stays down without a repeat.
// Terminals report presses but never releases.
const DefaultReleaseAfter = 500 * time.Millisecond

const upperHalfBlock = '▀'

type Config struct {
	Renderer     render.Kind
	Logger       session.Logger
	ReleaseAfter time.Duration
	// OnQuit runs once on Ctrl-C.
	OnQuit func()
}

// Screen is a session.Provider drawing to a tcell screen. Each terminal
// cell shows two vertically stacked pixels, so the viewport is
// cols x rows*2.
type Screen struct {
	screen       tcell.Screen
	renderer     render.Kind
	logger       session.Logger
	releaseAfter time.Duration
	onQuit       func()
	quitOnce     sync.Once

	mu        sync.Mutex
	placement image.Rectangle
	grid      *image.RGBA
	held      map[string]*time.Timer
	closed    bool
}

var _ session.Provider = (*Screen)(nil)

// Open initializes the controlling terminal.
func Open(cfg Config) (*Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return newScreen(screen, cfg), nil
}

// newScreen wraps an initialized tcell screen.
func newScreen(screen tcell.Screen, cfg Config) *Screen {
	if cfg.Logger == nil {
		cfg.Logger = session.NoopLogger{}
	}
	if cfg.ReleaseAfter <= 0 {
		cfg.ReleaseAfter = DefaultReleaseAfter
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack))
	screen.Clear()
	cols, rows := screen.Size()
	cfg.Logger.Infof("term", "terminal open, %dx%d cells", cols, rows)
	return &Screen{
		screen:       screen,
		renderer:     cfg.Renderer,
		logger:       cfg.Logger,
		releaseAfter: cfg.ReleaseAfter,
		onQuit:       cfg.OnQuit,
		held:         make(map[string]*time.Timer),
	}
}

// Close restores the terminal.
func (s *Screen) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for _, timer := range s.held {
		timer.Stop()
	}
	s.held = nil
	s.mu.Unlock()

	s.screen.Fini()
	return nil
}

func (s *Screen) NewSurface(width, height int) (render.Surface, error) {
	return render.New(s.renderer, width, height, s.present)
}

func (s *Screen) Viewport() (float64, float64) {
	cols, rows := s.screen.Size()
	return float64(cols), float64(rows * 2)
}

func (s *Screen) Place(p layout.Placement) {
	rect := image.Rectangle{}
	if !p.Empty() {
		rect = p.Rect()
	}
	s.mu.Lock()
	s.placement = rect
	s.mu.Unlock()
}

func (s *Screen) present(frame *image.RGBA) error {
	cols, rows := s.screen.Size()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	if s.grid == nil || s.grid.Bounds().Dx() != cols || s.grid.Bounds().Dy() != rows*2 {
		s.grid = image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	}
	render.Blit(s.grid, frame, s.placement)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top := s.grid.RGBAAt(col, row*2)
			bottom := s.grid.RGBAAt(col, row*2+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			s.screen.SetContent(col, row, upperHalfBlock, nil, style)
		}
	}
	s.screen.Show()
	return nil
}

// Listen forwards terminal events to sink until ctx is done.
func (s *Screen) Listen(ctx context.Context, sink session.EventSink) error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go s.screen.ChannelEvents(events, quit)
	go func() {
		defer close(quit)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-events:
				if !ok {
					return
				}
				s.handle(ev, sink)
			}
		}
	}()
	return nil
}

func (s *Screen) handle(ev tcell.Event, sink session.EventSink) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		s.screen.Sync()
		sink.Resize()
	case *tcell.EventMouse:
		col, row := ev.Position()
		// Centre of the cell in pixel space.
		sink.PointerMove(float64(col)+0.5, float64(row*2)+1)
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || ev.Key() == tcell.KeyETX {
			if s.onQuit != nil {
				s.quitOnce.Do(func() {
					s.logger.Infof("input", "Ctrl-C: exiting")
					s.onQuit()
				})
			}
			return
		}
		name, ok := keyName(ev)
		if !ok {
			return
		}
		sink.KeyDown(name)
		s.armRelease(name, sink)
	}
}

// armRelease schedules a synthetic KeyUp; every repeat pushes it back.
func (s *Screen) armRelease(name string, sink session.EventSink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	if timer, ok := s.held[name]; ok {
		timer.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(s.releaseAfter, func() {
		s.mu.Lock()
		current, ok := s.held[name]
		if ok && current == timer {
			delete(s.held, name)
		}
		s.mu.Unlock()
		if ok && current == timer {
			sink.KeyUp(name)
		}
	})
	s.held[name] = timer
}
