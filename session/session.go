// Package session is a small immediate-mode drawing and game-loop helper.
//
// A Session owns one drawing surface obtained from a Provider, the current
// draw style, the pointer position and the key state map. StartLoop runs a
// fixed-rate callback: each tick repaints the background, calls the
// callback, then clears every key's just-pressed edge.
//
//	s, err := session.New(provider, 800, 600)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//	s.SetColor("blue")
//	s.DrawRectangle(session.Pt(0, 0), session.Pt(800.0/3, 600))
package session

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/render/layout"
)

type loopState int

const (
	noLoop loopState = iota
	loopRunning
	loopStopped
)

type Session struct {
	provider Provider
	surface  render.Surface
	logger   Logger
	clock    Clock
	qrcodes  render.QRCodeCache

	width  int
	height int

	// dispatch serializes loop ticks with input handlers so a handler never
	// observes a half-finished frame.
	dispatch sync.Mutex

	mu         sync.Mutex
	color      string
	mode       Mode
	frameRate  float64
	background string
	mouse      Point
	placement  layout.Placement
	keys       map[string]KeyState
	loopState  loopState
	loop       *Loop
	closed     bool

	cancelListen context.CancelFunc
}

// Option configures a Session at construction.
type Option func(*Session)

func WithLogger(logger Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock replaces the wall clock that drives the loop.
func WithClock(clock Clock) Option {
	return func(s *Session) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithFrameRate sets the initial frame rate.
func WithFrameRate(fps float64) Option {
	return func(s *Session) { s.frameRate = fps }
}

// WithBackground sets the color painted at the start of every frame.
func WithBackground(color string) Option {
	return func(s *Session) { s.background = color }
}

// New creates the process's Session on a surface of width x height pixels.
// It fails with ErrDuplicateSession while another Session is live and with
// ErrContextUnavailable when the provider cannot create a surface.
func New(provider Provider, width, height int, opts ...Option) (*Session, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrInvalidSize, width, height)
	}
	s := &Session{
		provider:   provider,
		logger:     NoopLogger{},
		clock:      realClock{},
		width:      width,
		height:     height,
		color:      render.DefaultColor,
		mode:       Fill,
		frameRate:  DefaultFrameRate,
		background: render.DefaultBackground,
		keys:       make(map[string]KeyState),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !validFrameRate(s.frameRate) {
		return nil, fmt.Errorf("%w: got %v", ErrInvalidFrameRate, s.frameRate)
	}
	if provider == nil {
		return nil, fmt.Errorf("%w: no provider", ErrContextUnavailable)
	}
	if !claim(s) {
		return nil, ErrDuplicateSession
	}

	surface, err := provider.NewSurface(width, height)
	if err != nil || surface == nil {
		release(s)
		if err == nil {
			return nil, fmt.Errorf("%w: provider returned no surface", ErrContextUnavailable)
		}
		return nil, fmt.Errorf("%w: %v", ErrContextUnavailable, err)
	}
	s.surface = surface
	s.surface.SetFillStyle(s.color)
	s.surface.SetStrokeStyle(s.color)
	s.fillBackground()

	listenCtx, cancel := context.WithCancel(context.Background())
	s.cancelListen = cancel
	if err := provider.Listen(listenCtx, s); err != nil {
		cancel()
		release(s)
		return nil, fmt.Errorf("listen for input: %w", err)
	}
	s.Resize()

	s.logger.Infof("session", "created %dx%d at %.4g fps", width, height, s.frameRate)
	return s, nil
}

// Close stops the loop, detaches from the provider and frees the live
// slot so a new Session can be created. It must not be called from the
// loop callback.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	loop := s.loop
	s.mu.Unlock()

	if loop != nil {
		loop.Stop()
		loop.Wait()
	}
	s.cancelListen()
	release(s)
	s.logger.Infof("session", "closed")
	return nil
}

// Resize recomputes the letterboxed placement for the provider's current
// viewport and applies it.
func (s *Session) Resize() {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	viewportWidth, viewportHeight := s.provider.Viewport()
	placement := layout.Letterbox(viewportWidth, viewportHeight, s.width, s.height)

	s.mu.Lock()
	s.placement = placement
	s.mu.Unlock()

	s.provider.Place(placement)
}

// Placement returns the current on-screen placement in viewport units.
func (s *Session) Placement() layout.Placement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.placement
}

func (s *Session) Width() int  { return s.width }
func (s *Session) Height() int { return s.height }

func (s *Session) Dimensions() Point {
	return Pt(float64(s.width), float64(s.height))
}

func (s *Session) Center() Point {
	return Pt(float64(s.width)/2, float64(s.height)/2)
}

// fillBackground clears the surface and paints it with the background
// color, then restores the draw color. s.mu must be held.
func (s *Session) fillBackground() {
	width := float64(s.width)
	height := float64(s.height)
	s.surface.ClearRect(0, 0, width, height)
	s.surface.SetFillStyle(s.background)
	s.surface.FillRect(0, 0, width, height)
	s.surface.SetFillStyle(s.color)
}

func validFrameRate(fps float64) bool {
	return fps > 0 && !math.IsInf(fps, 0)
}
