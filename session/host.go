package session

import (
	"context"

	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/render/layout"
)

// Provider is the host a Session draws on and receives input from.
type Provider interface {
	// NewSurface creates the drawing surface. An error means no drawing
	// context is available.
	NewSurface(width, height int) (render.Surface, error)

	// Viewport reports the current display size in viewport units.
	Viewport() (width, height float64)

	// Place applies the letterboxed position of the surface.
	Place(placement layout.Placement)

	// Listen delivers resize, pointer and key notifications to sink until
	// ctx is done. It must not block.
	Listen(ctx context.Context, sink EventSink) error
}

// EventSink receives host notifications. *Session implements it; each
// call is serialized against loop ticks, so calling it from the loop
// callback deadlocks.
type EventSink interface {
	Resize()
	PointerMove(x, y float64)
	KeyDown(code string)
	KeyUp(code string)
}

// Logger is the component-tagged logger used across easel.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type NoopLogger struct{}

func (NoopLogger) Infof(component, format string, args ...interface{})  {}
func (NoopLogger) Errorf(component, format string, args ...interface{}) {}
