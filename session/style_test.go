package session

import (
	"errors"
	"math"
	"testing"
)

func TestSetColorUpdatesFillAndStroke(t *testing.T) {
	s, provider := newTestSession(t)
	s.SetColor("blue")

	if provider.surface.fill != "blue" || provider.surface.stroke != "blue" {
		t.Fatalf("surface styles = %q/%q, want blue/blue", provider.surface.fill, provider.surface.stroke)
	}
	if got := s.Color(); got != "blue" {
		t.Fatalf("Color = %q, want blue", got)
	}
}

func TestUnknownColorIsPassedThrough(t *testing.T) {
	s, provider := newTestSession(t)
	s.SetColor("no-such-color")
	if provider.surface.fill != "no-such-color" {
		t.Fatalf("fill = %q", provider.surface.fill)
	}
}

func TestStyleReadsAreStable(t *testing.T) {
	s, _ := newTestSession(t)
	s.SetColor("green")
	s.SetMode(Stroke)
	s.SetLineWidth(3)

	for i := 0; i < 3; i++ {
		if s.Color() != "green" || s.Mode() != Stroke || s.LineWidth() != 3 {
			t.Fatalf("read %d: color=%q mode=%v lineWidth=%v", i, s.Color(), s.Mode(), s.LineWidth())
		}
	}
}

func TestDefaults(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Color() != "black" || s.Mode() != Fill || s.FrameRate() != DefaultFrameRate || s.Background() != "white" {
		t.Fatalf("defaults: color=%q mode=%v fps=%v background=%q", s.Color(), s.Mode(), s.FrameRate(), s.Background())
	}
	if s.LineWidth() != 1 {
		t.Fatalf("LineWidth = %v, want 1", s.LineWidth())
	}
}

func TestSetFrameRateRejectsInvalid(t *testing.T) {
	s, _ := newTestSession(t)
	for _, fps := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if err := s.SetFrameRate(fps); !errors.Is(err, ErrInvalidFrameRate) {
			t.Errorf("SetFrameRate(%v) = %v, want ErrInvalidFrameRate", fps, err)
		}
	}
	if got := s.FrameRate(); got != DefaultFrameRate {
		t.Fatalf("FrameRate = %v, want %v", got, DefaultFrameRate)
	}
	if err := s.SetFrameRate(30); err != nil {
		t.Fatal(err)
	}
	if got := s.FrameRate(); got != 30 {
		t.Fatalf("FrameRate = %v, want 30", got)
	}
}

func TestSetFrameRateAfterLoopFails(t *testing.T) {
	clock := newManualClock()
	s, _ := newTestSession(t, WithClock(clock))
	loop, err := s.StartLoop(func() {})
	if err != nil {
		t.Fatal(err)
	}

	if err := s.SetFrameRate(30); !errors.Is(err, ErrLoopReconfiguration) {
		t.Fatalf("SetFrameRate while running = %v, want ErrLoopReconfiguration", err)
	}
	// Checked before the value itself.
	if err := s.SetFrameRate(-5); !errors.Is(err, ErrLoopReconfiguration) {
		t.Fatalf("SetFrameRate(-5) while running = %v, want ErrLoopReconfiguration", err)
	}

	loop.Stop()
	loop.Wait()
	if err := s.SetFrameRate(30); !errors.Is(err, ErrLoopReconfiguration) {
		t.Fatalf("SetFrameRate after stop = %v, want ErrLoopReconfiguration", err)
	}
}

func TestBackgroundAppliesNextFrame(t *testing.T) {
	s, provider := newTestSession(t)
	s.SetBackground("navy")
	provider.surface.reset()

	if err := s.tick(func() {}); err != nil {
		t.Fatal(err)
	}
	for _, c := range provider.surface.snapshot() {
		if c.name == "FillRect" && c.fill != "navy" {
			t.Fatalf("background fill = %q, want navy", c.fill)
		}
	}
}

func TestModeString(t *testing.T) {
	if Fill.String() != "fill" || Stroke.String() != "stroke" || Mode(7).String() != "Mode(7)" {
		t.Fatal("unexpected Mode strings")
	}
}
