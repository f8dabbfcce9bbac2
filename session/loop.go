package session

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"
)

// ErrClosed is returned when a loop is started on a closed Session.
var ErrClosed = errors.New("session: closed")

// Loop is the handle of a running frame loop.
type Loop struct {
	session *Session
	period  time.Duration
	fn      func()
	cancel  context.CancelFunc
	done    chan struct{}
	frames  atomic.Uint64
}

// StartLoop installs fn as the per-frame callback and starts ticking at the
// current frame rate. Each tick repaints the background, calls fn, clears
// the just-pressed edges and presents the surface. A Session accepts one
// loop in its lifetime; a second call fails with ErrLoopReconfiguration.
func (s *Session) StartLoop(fn func()) (*Loop, error) {
	if fn == nil {
		fn = func() {}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.loopState != noLoop {
		s.mu.Unlock()
		return nil, fmt.Errorf("start loop: %w", ErrLoopReconfiguration)
	}
	period := time.Duration(float64(time.Second) / s.frameRate)
	if period <= 0 {
		period = time.Nanosecond
	}
	ctx, cancel := context.WithCancel(context.Background())
	loop := &Loop{
		session: s,
		period:  period,
		fn:      fn,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	s.loopState = loopRunning
	s.loop = loop
	ticker := s.clock.NewTicker(period)
	s.mu.Unlock()

	s.logger.Infof("loop", "started, period=%s", period)
	go loop.run(ctx, ticker)
	return loop, nil
}

func (l *Loop) run(ctx context.Context, ticker Ticker) {
	defer close(l.done)
	defer ticker.Stop()

	s := l.session
	lastLog := time.Now()
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.loopState = loopStopped
			s.mu.Unlock()
			s.logger.Infof("loop", "stopped after %d frames", l.frames.Load())
			return
		case <-ticker.C():
			if err := s.tick(l.fn); err != nil {
				s.logger.Errorf("loop", "present failed: %v", err)
			}
			frames := l.frames.Add(1)
			if time.Since(lastLog) > time.Second {
				s.logger.Infof("loop", "heartbeat frame=%d", frames)
				lastLog = time.Now()
			}
		}
	}
}

// tick runs one frame: repaint, callback, edge reset, present.
func (s *Session) tick(fn func()) error {
	s.dispatch.Lock()
	defer s.dispatch.Unlock()

	s.mu.Lock()
	s.fillBackground()
	s.mu.Unlock()

	fn()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.endFrame()
	return s.surface.Present()
}

// Stop cancels the loop. It does not wait; use Wait for that. Stop may be
// called from the loop callback.
func (l *Loop) Stop() { l.cancel() }

// Wait blocks until the loop goroutine has exited.
func (l *Loop) Wait() { <-l.done }

// Done is closed when the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Frames returns the number of completed frames.
func (l *Loop) Frames() uint64 { return l.frames.Load() }

// Period returns the time between frames.
func (l *Loop) Period() time.Duration { return l.period }
