package render

import (
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// GGCanvas is a Surface drawn entirely by github.com/gogpu/gg, text and
// images included.
type GGCanvas struct {
	painter
	present PresentFunc

	fontSize int
	source   *text.FontSource
	faces    map[int]text.Face
}

// NewGGCanvas creates a transparent gg-backed canvas. present may be nil.
func NewGGCanvas(width, height int, present PresentFunc) *GGCanvas {
	c := &GGCanvas{
		painter:  newPainter(width, height),
		present:  present,
		fontSize: DefaultFontSize,
		faces:    make(map[int]text.Face),
	}
	if source, err := text.NewFontSource(goregular.TTF); err == nil {
		c.source = source
	}
	return c
}

func (c *GGCanvas) SetFontSize(px int) {
	if px > 0 {
		c.fontSize = px
	}
}

func (c *GGCanvas) FillText(s string, x, y float64) {
	face := c.face()
	if face == nil || s == "" || c.fill.A == 0 {
		return
	}
	c.dc.SetFont(face)
	c.dc.SetColor(c.fill)
	c.dc.DrawString(s, x, y)
}

func (c *GGCanvas) MeasureText(s string) float64 {
	face := c.face()
	if face == nil {
		return defaultFonts().measure(s, c.fontSize)
	}
	c.dc.SetFont(face)
	width, _ := c.dc.MeasureString(s)
	return width
}

func (c *GGCanvas) DrawImage(img image.Image, x, y, width, height float64) {
	if img == nil || !(width > 0) || !(height > 0) || !finite(x, y, width, height) {
		return
	}
	c.dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
		X:             x,
		Y:             y,
		DstWidth:      width,
		DstHeight:     height,
		Interpolation: gg.InterpNearest,
		Opacity:       1,
	})
}

// Present hands over the rendered frame and reports the first paint error
// since the previous Present.
func (c *GGCanvas) Present() error {
	err := c.takeErr()
	if c.present == nil {
		return err
	}
	if presentErr := c.present(c.frame); presentErr != nil {
		return presentErr
	}
	return err
}

func (c *GGCanvas) face() text.Face {
	if c.source == nil {
		return nil
	}
	face, ok := c.faces[c.fontSize]
	if !ok {
		face = c.source.Face(float64(c.fontSize))
		c.faces[c.fontSize] = face
	}
	return face
}
