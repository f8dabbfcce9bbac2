package app

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/rook-computer/easel/host/fb"
	"github.com/rook-computer/easel/host/preview"
	"github.com/rook-computer/easel/host/term"
	"github.com/rook-computer/easel/internal/system"
	"github.com/rook-computer/easel/session"
)

// App runs the demo scene on the configured host until it is asked to
// exit.
type App struct {
	Config Config
	Logger Logger

	// Provider, when set, replaces the host chosen by Config.Backend.
	Provider session.Provider

	exitOnce atomic.Bool
	exitCh   chan error
}

func New(cfg Config) *App {
	return &App{Config: cfg, Logger: NoopLogger{}, exitCh: make(chan error, 1)}
}

// Exit requests the app to stop running. Hosts and the scene call it.
func (app *App) Exit(err error) {
	if app.exitCh == nil {
		return
	}
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Start runs until ctx is done or Exit is called.
func (app *App) Start(ctx context.Context) error {
	if app.exitCh == nil {
		app.exitCh = make(chan error, 1)
	}
	app.exitOnce.Store(false)
	if err := app.Config.Validate(); err != nil {
		return err
	}

	provider, qrPayload, closeHost, err := app.openHost(ctx)
	if err != nil {
		app.Logger.Errorf("app", "host start error: %v", err)
		return err
	}
	defer closeHost()

	s, err := session.New(provider, app.Config.Width, app.Config.Height,
		session.WithLogger(app.Logger),
		session.WithFrameRate(app.Config.FrameRate),
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer s.Close()

	scene := NewScene(s, qrPayload, func() { app.Exit(nil) })
	loop, err := s.StartLoop(scene.Frame)
	if err != nil {
		return err
	}

	// Wait for completion (requested by a host or the scene), then exit.
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-app.exitCh:
	case <-loop.Done():
	}
	loop.Stop()
	loop.Wait()
	app.Logger.Infof("app", "stopped after %d frames", loop.Frames())
	return err
}

func (app *App) openHost(ctx context.Context) (session.Provider, string, func(), error) {
	if app.Provider != nil {
		return app.Provider, "", func() {}, nil
	}
	quit := func() { app.Exit(nil) }

	switch app.Config.Backend {
	case BackendFB:
		d, err := fb.Open(fb.Config{Renderer: app.Config.Renderer, Logger: app.Logger, OnQuit: quit})
		if err != nil {
			return nil, "", nil, fmt.Errorf("open framebuffer: %w", err)
		}
		return d, "", func() { _ = d.Close() }, nil
	case BackendTerm:
		s, err := term.Open(term.Config{Renderer: app.Config.Renderer, Logger: app.Logger, OnQuit: quit})
		if err != nil {
			return nil, "", nil, fmt.Errorf("open terminal: %w", err)
		}
		return s, "", func() { _ = s.Close() }, nil
	case BackendPreview:
		srv := preview.New(preview.Config{
			Addr:     app.Config.ListenAddr,
			Renderer: app.Config.Renderer,
			Logger:   app.Logger,
			DevMode:  app.Config.DevMode,
		})
		if err := srv.Start(ctx); err != nil {
			return nil, "", nil, err
		}
		url, err := system.PreviewURL(srv.Addr(), system.LocalIPv4())
		if err != nil {
			app.Logger.Errorf("app", "preview url: %v", err)
		} else {
			app.Logger.Infof("app", "preview at %s", url)
		}
		return srv, url, func() { _ = srv.Stop() }, nil
	}
	return nil, "", nil, fmt.Errorf("unknown backend %q", app.Config.Backend)
}
