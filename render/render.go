package render

import (
	"fmt"
	"image"
	"strings"
)

// Surface is an immediate-mode 2D drawing context in the style of an HTML
// canvas. Coordinates are in surface pixels. Colors are CSS-style strings;
// an unknown color leaves the previous style in place.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width int, height int)

	ClearRect(x, y, width, height float64)
	FillRect(x, y, width, height float64)
	StrokeRect(x, y, width, height float64)

	// Path primitives. Fill and Stroke do not consume the path.
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	ClosePath()
	Fill()
	Stroke()

	SetFillStyle(color string)
	SetStrokeStyle(color string)
	LineWidth() float64
	SetLineWidth(width float64)

	// Text is drawn with the fill style; y is the baseline.
	SetFontSize(px int)
	FillText(text string, x, y float64)
	MeasureText(text string) float64

	DrawImage(img image.Image, x, y, width, height float64)

	// Present hands the finished frame to the display.
	Present() error
}

// PresentFunc receives a finished frame. The image is owned by the surface
// and is only valid for the duration of the call.
type PresentFunc func(frame *image.RGBA) error

// Kind selects a Surface implementation.
type Kind string

const (
	// KindGG draws everything with gogpu/gg.
	KindGG Kind = "gg"

	// KindRaster draws shapes with gg and text with freetype.
	KindRaster Kind = "raster"
)

// ParseKind validates a renderer name. Empty selects KindGG.
func ParseKind(name string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(name))) {
	case "", KindGG:
		return KindGG, nil
	case KindRaster:
		return KindRaster, nil
	}
	return "", fmt.Errorf("unknown renderer %q (want %s or %s)", name, KindRaster, KindGG)
}

// New creates a surface of the given kind that calls present on Present.
func New(kind Kind, width, height int, present PresentFunc) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	switch kind {
	case "", KindGG:
		return NewGGCanvas(width, height, present), nil
	case KindRaster:
		return NewCanvas(width, height, present), nil
	}
	return nil, fmt.Errorf("unknown renderer %q", kind)
}
