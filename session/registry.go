package session

import "sync"

// registry enforces the one-live-session rule.
var registry struct {
	mu   sync.Mutex
	live *Session
}

func claim(s *Session) bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	if registry.live != nil {
		return false
	}
	registry.live = s
	return true
}

func release(s *Session) {
	registry.mu.Lock()
	if registry.live == s {
		registry.live = nil
	}
	registry.mu.Unlock()
}
