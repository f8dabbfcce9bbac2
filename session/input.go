package session

// KeyState is the tracked state of one key.
type KeyState struct {
	// Pressed is true while the key is held.
	Pressed bool
	// JustPressed is true from a key-down until the end of the current
	// frame.
	JustPressed bool
}

// PointerMove records a pointer position given in viewport coordinates.
// Positions are mapped into surface space through the current placement;
// while the surface has no on-screen area the pointer keeps its last value.
func (s *Session) PointerMove(x, y float64) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if sx, sy, ok := s.placement.ToSurface(x, y, s.width, s.height); ok {
		s.mouse = Pt(sx, sy)
	}
}

// KeyDown marks code as pressed and just pressed. Auto-repeat re-arms the
// just-pressed edge.
func (s *Session) KeyDown(code string) {
	s.setKey(code, KeyState{Pressed: true, JustPressed: true})
}

func (s *Session) KeyUp(code string) {
	s.setKey(code, KeyState{})
}

func (s *Session) setKey(code string, state KeyState) {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	s.keys[code] = state
	s.mu.Unlock()
}

// Mouse returns the last pointer position in surface space.
func (s *Session) Mouse() Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mouse
}

// IsKeyPressed reports whether code is held. Unseen keys are not pressed.
func (s *Session) IsKeyPressed(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[code].Pressed
}

// IsKeyJustPressed reports whether code went down during the current frame.
func (s *Session) IsKeyJustPressed(code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[code].JustPressed
}

// Keys returns a copy of every key seen so far.
func (s *Session) Keys() map[string]KeyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]KeyState, len(s.keys))
	for code, state := range s.keys {
		out[code] = state
	}
	return out
}

// endFrame clears every just-pressed edge. s.mu must be held.
func (s *Session) endFrame() {
	for code, state := range s.keys {
		if state.JustPressed {
			state.JustPressed = false
			s.keys[code] = state
		}
	}
}
