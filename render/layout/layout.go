package layout

import (
	"image"
	"math"
)

// Placement is the on-screen rectangle a fixed-size surface occupies,
// measured in viewport units.
type Placement struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Empty reports whether the placement covers no area.
func (p Placement) Empty() bool {
	return !(p.Width > 0) || !(p.Height > 0)
}

// Rect rounds the placement to the pixel grid.
func (p Placement) Rect() image.Rectangle {
	rect := image.Rect(
		int(math.Round(p.Left)),
		int(math.Round(p.Top)),
		int(math.Round(p.Left+p.Width)),
		int(math.Round(p.Top+p.Height)),
	)
	return Normalize(rect)
}

// ToSurface maps a viewport-space point into the surface pixel grid.
// ok is false when the placement is empty and no mapping exists.
func (p Placement) ToSurface(x, y float64, surfaceWidth, surfaceHeight int) (sx, sy float64, ok bool) {
	if p.Empty() {
		return 0, 0, false
	}
	sx = (x - p.Left) * float64(surfaceWidth) / p.Width
	sy = (y - p.Top) * float64(surfaceHeight) / p.Height
	return sx, sy, true
}

// Letterbox fits a surfaceWidth x surfaceHeight surface into the viewport,
// preserving its aspect ratio and centering it on the axis with spare room.
func Letterbox(viewportWidth, viewportHeight float64, surfaceWidth, surfaceHeight int) Placement {
	if surfaceWidth <= 0 || surfaceHeight <= 0 || !(viewportWidth > 0) || !(viewportHeight > 0) {
		return Placement{}
	}
	ratio := float64(surfaceWidth) / float64(surfaceHeight)
	width := viewportWidth
	height := viewportHeight
	if viewportWidth/viewportHeight > ratio {
		width = viewportHeight * ratio
	} else {
		height = viewportWidth / ratio
	}
	return Placement{
		Left:   (viewportWidth - width) / 2,
		Top:    (viewportHeight - height) / 2,
		Width:  width,
		Height: height,
	}
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}
