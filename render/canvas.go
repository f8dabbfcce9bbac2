package render

import (
	"image"

	xdraw "golang.org/x/image/draw"
)

// Canvas is a software Surface over an *image.RGBA frame. Shapes are drawn
// by gg into the frame's pixels; text goes through freetype and images are
// scaled with x/image/draw.
type Canvas struct {
	painter
	present PresentFunc

	fontSize int
	fonts    *fontSet
}

// NewCanvas creates a transparent canvas. present may be nil.
func NewCanvas(width, height int, present PresentFunc) *Canvas {
	return &Canvas{
		painter:  newPainter(width, height),
		present:  present,
		fontSize: DefaultFontSize,
		fonts:    defaultFonts(),
	}
}

// Image returns the backing image. It is redrawn in place.
func (c *Canvas) Image() *image.RGBA { return c.frame }

func (c *Canvas) SetFontSize(px int) {
	if px > 0 {
		c.fontSize = px
	}
}

func (c *Canvas) FillText(text string, x, y float64) {
	if text == "" || c.fill.A == 0 {
		return
	}
	c.fonts.drawString(c.frame, text, x, y, c.fontSize, c.fill)
}

func (c *Canvas) MeasureText(text string) float64 {
	return c.fonts.measure(text, c.fontSize)
}

// DrawImage scales img into the destination rectangle with nearest-neighbor
// sampling, which keeps pixel art and QR codes crisp.
func (c *Canvas) DrawImage(img image.Image, x, y, width, height float64) {
	if img == nil {
		return
	}
	rect := pixelRect(x, y, width, height)
	if rect.Empty() || !rect.Overlaps(c.frame.Rect) {
		return
	}
	xdraw.NearestNeighbor.Scale(c.frame, rect, img, img.Bounds(), xdraw.Over, nil)
}

// Present hands over the frame and reports the first paint error since the
// previous Present.
func (c *Canvas) Present() error {
	err := c.takeErr()
	if c.present == nil {
		return err
	}
	if presentErr := c.present(c.frame); presentErr != nil {
		return presentErr
	}
	return err
}
