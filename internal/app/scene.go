package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rook-computer/easel/session"
)

const (
	minRadius = 4.0
	maxRadius = 200.0
	qrSize    = 128.0
)

// Scene is the demo drawn every frame: a blue and a red rectangle in the
// outer thirds, a circle following the pointer, the held keys and, when
// there is one, a QR code of the preview URL.
//
// Space toggles fill and stroke, the up and down arrows resize the
// circle, Escape exits.
type Scene struct {
	s      *session.Session
	url    string
	quit   func()
	radius float64
}

func NewScene(s *session.Session, url string, quit func()) *Scene {
	return &Scene{s: s, url: url, quit: quit, radius: 30}
}

// Frame is the loop callback.
func (sc *Scene) Frame() {
	s := sc.s
	sc.handleKeys()

	size := s.Dimensions()
	third := size.X / 3

	s.SetColor("blue")
	s.DrawRectangle(session.Pt(0, 0), session.Pt(third, size.Y))
	s.SetColor("red")
	s.DrawRectangle(session.Pt(2*third, 0), session.Pt(third, size.Y))

	s.SetColor("green")
	s.DrawCircle(s.Mouse(), sc.radius)

	s.SetColor("black")
	s.DrawTriangle(
		session.Pt(size.X/2, size.Y/2-40),
		session.Pt(size.X/2-35, size.Y/2+20),
		session.Pt(size.X/2+35, size.Y/2+20),
	)
	s.DrawLine(session.Pt(third, size.Y-1), session.Pt(2*third, size.Y-1))

	s.DrawText(session.Pt(third+10, 24), fmt.Sprintf("mode: %s  radius: %.0f", s.Mode(), sc.radius), 16)
	s.DrawText(session.Pt(third+10, 44), "keys: "+heldKeys(s), 14)

	if sc.url != "" {
		pos := session.Pt(third+10, size.Y-qrSize-10)
		if err := s.DrawQRCode(pos, sc.url, qrSize); err == nil {
			s.DrawText(session.Pt(pos.X+qrSize+8, size.Y-14), sc.url, 12)
		}
	}
}

func (sc *Scene) handleKeys() {
	s := sc.s
	if s.IsKeyJustPressed("Escape") && sc.quit != nil {
		sc.quit()
	}
	if s.IsKeyJustPressed("Space") {
		if s.Mode() == session.Fill {
			s.SetMode(session.Stroke)
		} else {
			s.SetMode(session.Fill)
		}
	}
	if s.IsKeyPressed("ArrowUp") && sc.radius < maxRadius {
		sc.radius++
	}
	if s.IsKeyPressed("ArrowDown") && sc.radius > minRadius {
		sc.radius--
	}
}

func heldKeys(s *session.Session) string {
	var held []string
	for code, state := range s.Keys() {
		if state.Pressed {
			held = append(held, code)
		}
	}
	if len(held) == 0 {
		return "-"
	}
	sort.Strings(held)
	return strings.Join(held, " ")
}
