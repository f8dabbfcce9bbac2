package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// fontSet holds the embedded Go Regular font in the forms each text path
// needs: truetype for the freetype rasterizer, opentype for measuring and
// for the fallback drawer.
type fontSet struct {
	tt *truetype.Font
	ot *opentype.Font

	mu    sync.Mutex
	faces map[int]font.Face
}

var (
	fontsOnce sync.Once
	fonts     *fontSet
)

func defaultFonts() *fontSet {
	fontsOnce.Do(func() {
		fonts = &fontSet{faces: make(map[int]font.Face)}
		// Parse failures degrade to basicfont at draw time.
		if tt, err := truetype.Parse(goregular.TTF); err == nil {
			fonts.tt = tt
		}
		if ot, err := opentype.Parse(goregular.TTF); err == nil {
			fonts.ot = ot
		}
	})
	return fonts
}

// face returns a cached face of size pixels.
func (f *fontSet) face(size int) font.Face {
	f.mu.Lock()
	defer f.mu.Unlock()
	if face, ok := f.faces[size]; ok {
		return face
	}
	var face font.Face = basicfont.Face7x13
	if f.ot != nil {
		otFace, err := opentype.NewFace(f.ot, &opentype.FaceOptions{Size: float64(size), DPI: 72, Hinting: font.HintingFull})
		if err == nil {
			face = otFace
		}
	}
	f.faces[size] = face
	return face
}

// drawString draws text with its baseline starting at (x, y).
func (f *fontSet) drawString(dst draw.Image, text string, x, y float64, size int, col color.Color) {
	dot := fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
	src := image.NewUniform(col)
	if f.tt != nil {
		ctx := freetype.NewContext()
		ctx.SetDPI(72)
		ctx.SetFont(f.tt)
		ctx.SetFontSize(float64(size))
		ctx.SetClip(dst.Bounds())
		ctx.SetDst(dst)
		ctx.SetSrc(src)
		if _, err := ctx.DrawString(text, dot); err == nil {
			return
		}
	}
	drawer := &font.Drawer{Dst: dst, Src: src, Face: f.face(size), Dot: dot}
	drawer.DrawString(text)
}

// measure returns the advance width of text in pixels.
func (f *fontSet) measure(text string, size int) float64 {
	advance := font.MeasureString(f.face(size), text)
	return float64(advance) / 64
}

func toFixed(v float64) fixed.Int26_6 {
	if math.IsNaN(v) {
		return 0
	}
	return fixed.Int26_6(clampCoord(math.Round(v * 64)))
}
