package render

import "image/color"

// Defaults mirror a freshly created HTML canvas.
var (
	DefaultBackground = "white"
	DefaultColor      = "black"
	DefaultLineWidth  = 1.0
	DefaultFontSize   = 10

	// Margin fills the viewport area outside a letterboxed surface.
	Margin = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)
