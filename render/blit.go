package render

import (
	"image"
	"image/color"
)

// Target is a pixel sink such as a framebuffer device.
type Target interface {
	Bounds() image.Rectangle
	Set(x, y int, c color.Color)
}

// Blit scales frame into place on dst with nearest-neighbor sampling and
// paints everything outside place with Margin. place is relative to
// dst.Bounds().Min. Translucent pixels are flattened onto Margin.
func Blit(dst Target, frame *image.RGBA, place image.Rectangle) {
	bounds := dst.Bounds()
	place = place.Add(bounds.Min)
	srcBounds := frame.Bounds()
	srcWidth := srcBounds.Dx()
	srcHeight := srcBounds.Dy()
	dstWidth := place.Dx()
	dstHeight := place.Dy()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		inRow := y >= place.Min.Y && y < place.Max.Y && dstHeight > 0
		sy := 0
		if inRow {
			sy = srcBounds.Min.Y + ((y-place.Min.Y)*srcHeight)/dstHeight
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if !inRow || x < place.Min.X || x >= place.Max.X || dstWidth <= 0 {
				dst.Set(x, y, Margin)
				continue
			}
			sx := srcBounds.Min.X + ((x-place.Min.X)*srcWidth)/dstWidth
			dst.Set(x, y, Opaque(frame.RGBAAt(sx, sy)))
		}
	}
}

// Opaque flattens a premultiplied pixel onto Margin.
func Opaque(c color.RGBA) color.RGBA {
	if c.A == 0xFF {
		return c
	}
	inv := uint32(0xFF - c.A)
	return color.RGBA{
		R: uint8(uint32(c.R) + uint32(Margin.R)*inv/0xFF),
		G: uint8(uint32(c.G) + uint32(Margin.G)*inv/0xFF),
		B: uint8(uint32(c.B) + uint32(Margin.B)*inv/0xFF),
		A: 0xFF,
	}
}
