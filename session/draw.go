package session

import (
	"image"
	"math"
)

// DrawRectangle draws a rectangle with its top-left corner at position.
func (s *Session) DrawRectangle(position, size Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode == Fill {
		s.surface.FillRect(position.X, position.Y, size.X, size.Y)
		return
	}
	s.surface.StrokeRect(position.X, position.Y, size.X, size.Y)
}

// DrawCircle outlines a circle and, in Fill mode, fills it as well.
func (s *Session) DrawCircle(center Point, radius float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.BeginPath()
	s.surface.Arc(center.X, center.Y, radius, 0, 2*math.Pi)
	s.strokeThenFill()
}

func (s *Session) DrawLine(from, to Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.BeginPath()
	s.surface.MoveTo(from.X, from.Y)
	s.surface.LineTo(to.X, to.Y)
	s.surface.Stroke()
}

// DrawTriangle outlines a triangle and, in Fill mode, fills it as well.
func (s *Session) DrawTriangle(a, b, c Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.BeginPath()
	s.surface.MoveTo(a.X, a.Y)
	s.surface.LineTo(b.X, b.Y)
	s.surface.LineTo(c.X, c.Y)
	s.surface.ClosePath()
	s.strokeThenFill()
}

// DrawText draws text in the current color with its baseline starting at
// position. size is in pixels and rounded to a whole pixel.
func (s *Session) DrawText(position Point, text string, size float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.SetFontSize(fontPixels(size))
	s.surface.FillText(text, position.X, position.Y)
}

// MeasureText returns the width DrawText would cover at size.
func (s *Session) MeasureText(text string, size float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.SetFontSize(fontPixels(size))
	return s.surface.MeasureText(text)
}

// DrawImage scales img into the rectangle at position with the given size.
func (s *Session) DrawImage(position, size Point, img image.Image) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.DrawImage(img, position.X, position.Y, size.X, size.Y)
}

// DrawQRCode draws a square QR code encoding payload. Codes are cached, so
// drawing the same payload every frame is cheap.
func (s *Session) DrawQRCode(position Point, payload string, size float64) error {
	px := int(math.Round(size))
	img, err := s.qrcodes.Image(payload, px)
	if err != nil || img == nil {
		return err
	}
	s.DrawImage(position, Pt(size, size), img)
	return nil
}

// strokeThenFill finishes a closed shape. s.mu must be held.
func (s *Session) strokeThenFill() {
	s.surface.Stroke()
	if s.mode == Fill {
		s.surface.Fill()
	}
}

// maxFontPixels bounds text sizes so the conversion to int is defined.
const maxFontPixels = 4096

func fontPixels(size float64) int {
	if math.IsNaN(size) || math.IsInf(size, 0) {
		return 0
	}
	return int(math.Round(math.Max(-maxFontPixels, math.Min(size, maxFontPixels))))
}
