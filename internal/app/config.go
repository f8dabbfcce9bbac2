package app

import (
	"flag"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/rook-computer/easel/host/preview"
	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/session"
)

const (
	EnvBackend    = "EASEL_BACKEND"
	EnvRenderer   = "EASEL_RENDERER"
	EnvListenAddr = "EASEL_LISTEN"
	EnvFrameRate  = "EASEL_FPS"
	EnvStdioLog   = "EASEL_STDIO_LOG"
	EnvDevMode    = "EASEL_DEV"
)

// Backend names a display host.
type Backend string

const (
	BackendFB      Backend = "fb"
	BackendTerm    Backend = "term"
	BackendPreview Backend = "preview"
)

func ParseBackend(name string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(name))); b {
	case BackendFB, BackendTerm, BackendPreview:
		return b, nil
	}
	return "", fmt.Errorf("unknown backend %q (want %s, %s or %s)", name, BackendFB, BackendTerm, BackendPreview)
}

// Config holds everything the demo binary can be told.
type Config struct {
	Backend    Backend
	Renderer   render.Kind
	Width      int
	Height     int
	FrameRate  float64
	ListenAddr string
	DevMode    bool
	Debug      bool
	StdioLog   string
}

// DefaultConfigFromEnv returns the built-in defaults overridden by any
// EASEL_* environment variables.
func DefaultConfigFromEnv() (Config, error) {
	cfg := Config{
		Backend:    BackendPreview,
		Renderer:   render.KindGG,
		Width:      800,
		Height:     600,
		FrameRate:  session.DefaultFrameRate,
		ListenAddr: preview.DefaultAddr,
		StdioLog:   os.Getenv(EnvStdioLog),
	}

	if raw := os.Getenv(EnvBackend); raw != "" {
		backend, err := ParseBackend(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvBackend, err)
		}
		cfg.Backend = backend
	}
	if raw := os.Getenv(EnvRenderer); raw != "" {
		kind, err := render.ParseKind(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvRenderer, err)
		}
		cfg.Renderer = kind
	}
	if raw := os.Getenv(EnvListenAddr); raw != "" {
		cfg.ListenAddr = raw
	}
	if raw := os.Getenv(EnvFrameRate); raw != "" {
		fps, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a number (got %q): %w", EnvFrameRate, raw, err)
		}
		cfg.FrameRate = fps
	}
	if raw := os.Getenv(EnvDevMode); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return Config{}, fmt.Errorf("%s must be a boolean (got %q): %w", EnvDevMode, raw, err)
		}
		cfg.DevMode = parsed
	}
	return cfg, cfg.Validate()
}

// RegisterFlags binds command-line flags to cfg, using its current values
// as defaults.
func (cfg *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.Func("backend", "display backend: fb, term or preview (default "+string(cfg.Backend)+")", func(v string) error {
		backend, err := ParseBackend(v)
		if err == nil {
			cfg.Backend = backend
		}
		return err
	})
	fs.Func("renderer", "surface renderer: gg or raster (default "+string(cfg.Renderer)+")", func(v string) error {
		kind, err := render.ParseKind(v)
		if err == nil {
			cfg.Renderer = kind
		}
		return err
	})
	fs.IntVar(&cfg.Width, "width", cfg.Width, "surface width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "surface height in pixels")
	fs.Float64Var(&cfg.FrameRate, "fps", cfg.FrameRate, "frames per second")
	fs.StringVar(&cfg.ListenAddr, "listen", cfg.ListenAddr, "preview server listen address")
	fs.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "enable permissive CORS on the preview API")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging to ./easel-debug.log")
	fs.StringVar(&cfg.StdioLog, "stdio-log", cfg.StdioLog, "redirect stdout+stderr (including panics) to this file; also configurable via "+EnvStdioLog)
}

func (cfg Config) Validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("surface size must be positive (got %dx%d)", cfg.Width, cfg.Height)
	}
	if !(cfg.FrameRate > 0) || math.IsInf(cfg.FrameRate, 0) {
		return fmt.Errorf("frame rate must be positive (got %v)", cfg.FrameRate)
	}
	return nil
}
