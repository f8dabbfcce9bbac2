// Package preview serves a session over HTTP: the last presented frame as
// a PNG and a JSON endpoint that feeds browser input back into the
// session.
package preview

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/render/layout"
	"github.com/rook-computer/easel/session"
)

const DefaultAddr = ":8080"

type Config struct {
	Addr     string
	Renderer render.Kind
	Logger   session.Logger
	// DevMode enables permissive CORS so a page served elsewhere can
	// drive the API.
	DevMode bool
}

// Server is a session.Provider whose display is a web page.
type Server struct {
	addr     string
	renderer render.Kind
	logger   session.Logger
	devMode  bool

	mu             sync.Mutex
	frame          *image.RGBA
	frames         uint64
	viewportWidth  float64
	viewportHeight float64
	placement      layout.Placement
	sink           session.EventSink

	srvMu  sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

var _ session.Provider = (*Server)(nil)

func New(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Logger == nil {
		cfg.Logger = session.NoopLogger{}
	}
	return &Server{addr: cfg.Addr, renderer: cfg.Renderer, logger: cfg.Logger, devMode: cfg.DevMode}
}

// Addr returns the bound address once Start has run, else the configured one.
func (s *Server) Addr() string {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()
	if s.ln != nil {
		return s.ln.Addr().String()
	}
	return s.addr
}

// Start listens and serves until ctx is done or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	s.srvMu.Lock()
	defer s.srvMu.Unlock()

	if s.closed {
		return errors.New("preview server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	s.srv = &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.srv = nil
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.ln = ln
	s.logger.Infof("preview", "serving on %s", ln.Addr())

	go func() {
		<-ctx.Done()
		_ = s.Stop()
	}()

	srv := s.srv
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		s.logger.Errorf("preview", "serve failed: %v", err)
	}()
	return nil
}

func (s *Server) Stop() error {
	s.srvMu.Lock()
	if s.closed {
		s.srvMu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	ln := s.ln
	s.srv = nil
	s.ln = nil
	s.srvMu.Unlock()

	if ln != nil {
		_ = ln.Close()
	}
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// Handler routes the page, the frame and the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", s.apiV1Router()))
	mux.HandleFunc("/frame.png", s.handleFrame)
	mux.HandleFunc("/", s.handleIndex)
	if s.devMode {
		return WithDevCORS(mux)
	}
	return mux
}

func (s *Server) NewSurface(width, height int) (render.Surface, error) {
	s.mu.Lock()
	if s.viewportWidth <= 0 || s.viewportHeight <= 0 {
		s.viewportWidth = float64(width)
		s.viewportHeight = float64(height)
	}
	s.mu.Unlock()
	return render.New(s.renderer, width, height, s.present)
}

// Viewport is the browser window size last reported by the page. Until the
// page reports one it equals the surface size.
func (s *Server) Viewport() (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewportWidth, s.viewportHeight
}

func (s *Server) Place(p layout.Placement) {
	s.mu.Lock()
	s.placement = p
	s.mu.Unlock()
}

// Listen routes API input events to sink until ctx is done.
func (s *Server) Listen(ctx context.Context, sink session.EventSink) error {
	s.mu.Lock()
	s.sink = sink
	s.mu.Unlock()
	go func() {
		<-ctx.Done()
		s.mu.Lock()
		if s.sink == sink {
			s.sink = nil
		}
		s.mu.Unlock()
	}()
	return nil
}

func (s *Server) present(frame *image.RGBA) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil || s.frame.Bounds() != frame.Bounds() {
		s.frame = image.NewRGBA(frame.Bounds())
	}
	draw.Draw(s.frame, frame.Bounds(), frame, frame.Bounds().Min, draw.Src)
	s.frames++
	return nil
}

func (s *Server) setViewport(width, height float64) session.EventSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewportWidth = width
	s.viewportHeight = height
	return s.sink
}

func (s *Server) currentSink() session.EventSink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sink
}
