package session

import "fmt"

// DefaultFrameRate is the loop rate when none is configured.
const DefaultFrameRate = 60.0

// Mode selects whether shapes are filled or outlined.
type Mode int

const (
	// Fill paints shape interiors; circles and triangles are also outlined.
	Fill Mode = iota
	// Stroke paints outlines only.
	Stroke
)

func (m Mode) String() string {
	switch m {
	case Fill:
		return "fill"
	case Stroke:
		return "stroke"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Color returns the current draw color as last set.
func (s *Session) Color() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.color
}

// SetColor sets both the fill and the stroke color. The string is passed
// to the surface as-is; a color it cannot parse leaves the painted color
// unchanged.
func (s *Session) SetColor(color string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface.SetFillStyle(color)
	s.surface.SetStrokeStyle(color)
	s.color = color
}

func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

func (s *Session) SetMode(mode Mode) {
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
}

// LineWidth returns the surface's current stroke width.
func (s *Session) LineWidth() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface.LineWidth()
}

func (s *Session) SetLineWidth(width float64) {
	s.mu.Lock()
	s.surface.SetLineWidth(width)
	s.mu.Unlock()
}

func (s *Session) FrameRate() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameRate
}

// SetFrameRate changes the loop rate. It fails with ErrLoopReconfiguration
// once a loop has been installed and with ErrInvalidFrameRate for values
// that are not positive and finite.
func (s *Session) SetFrameRate(fps float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loopState != noLoop {
		return fmt.Errorf("change frame rate: %w", ErrLoopReconfiguration)
	}
	if !validFrameRate(fps) {
		return fmt.Errorf("%w: got %v", ErrInvalidFrameRate, fps)
	}
	s.frameRate = fps
	return nil
}

// Background returns the color painted at the start of every frame.
func (s *Session) Background() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

// SetBackground takes effect from the next frame.
func (s *Session) SetBackground(color string) {
	s.mu.Lock()
	s.background = color
	s.mu.Unlock()
}
