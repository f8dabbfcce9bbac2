package session

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestTickOrder(t *testing.T) {
	s, provider := newTestSession(t)
	provider.surface.reset()

	err := s.tick(func() {
		s.DrawRectangle(Pt(1, 2), Pt(3, 4))
	})
	if err != nil {
		t.Fatal(err)
	}

	calls := provider.surface.snapshot()
	want := []string{"ClearRect", "SetFillStyle", "FillRect", "SetFillStyle", "FillRect", "Present"}
	if got := names(calls); !reflect.DeepEqual(got, want) {
		t.Fatalf("calls = %v, want %v", got, want)
	}
	if calls[1].text != "white" || calls[3].text != "black" {
		t.Fatalf("fill styles = %q then %q, want white then black", calls[1].text, calls[3].text)
	}
	if !reflect.DeepEqual(calls[4].args, []float64{1, 2, 3, 4}) {
		t.Fatalf("user rect = %v", calls[4].args)
	}
}

func TestStartLoopTwiceFails(t *testing.T) {
	s, _ := newTestSession(t, WithClock(newManualClock()))
	if _, err := s.StartLoop(func() {}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.StartLoop(func() {}); !errors.Is(err, ErrLoopReconfiguration) {
		t.Fatalf("second StartLoop = %v, want ErrLoopReconfiguration", err)
	}
}

func TestLoopPeriodFollowsFrameRate(t *testing.T) {
	clock := newManualClock()
	s, _ := newTestSession(t, WithClock(clock), WithFrameRate(50))
	loop, err := s.StartLoop(nil)
	if err != nil {
		t.Fatal(err)
	}
	if loop.Period() != 20*time.Millisecond || clock.period != 20*time.Millisecond {
		t.Fatalf("period = %v (ticker %v), want 20ms", loop.Period(), clock.period)
	}
}

func TestLoopStopAndWait(t *testing.T) {
	clock := newManualClock()
	s, provider := newTestSession(t, WithClock(clock))
	calls := 0
	loop, err := s.StartLoop(func() { calls++ })
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		clock.tick(t)
	}
	waitFrames(t, loop, 3)
	loop.Stop()
	loop.Wait()

	if calls != 3 || loop.Frames() != 3 {
		t.Fatalf("callback ran %d times over %d frames, want 3", calls, loop.Frames())
	}
	if !clock.ticker.stopped.Load() {
		t.Fatal("ticker not stopped")
	}
	if provider.surface.presented() != 3 {
		t.Fatalf("presented %d frames, want 3", provider.surface.presented())
	}
	if _, err := s.StartLoop(func() {}); !errors.Is(err, ErrLoopReconfiguration) {
		t.Fatalf("restart after stop = %v, want ErrLoopReconfiguration", err)
	}
}

func TestLoopRealClock(t *testing.T) {
	s, _ := newTestSession(t, WithFrameRate(200))
	loop, err := s.StartLoop(func() {})
	if err != nil {
		t.Fatal(err)
	}
	waitFrames(t, loop, 3)
	loop.Stop()
	select {
	case <-loop.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit")
	}
}

func TestLoopStopFromCallback(t *testing.T) {
	clock := newManualClock()
	s, _ := newTestSession(t, WithClock(clock))
	var loop *Loop
	loop, err := s.StartLoop(func() { loop.Stop() })
	if err != nil {
		t.Fatal(err)
	}
	clock.tick(t)
	select {
	case <-loop.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after Stop from callback")
	}
	if loop.Frames() != 1 {
		t.Fatalf("Frames = %d, want 1", loop.Frames())
	}
}

func TestCloseStopsLoop(t *testing.T) {
	s, _ := newTestSession(t, WithClock(newManualClock()))
	loop, err := s.StartLoop(func() {})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}
	select {
	case <-loop.Done():
	default:
		t.Fatal("Close returned with the loop still running")
	}
	if _, err := s.StartLoop(func() {}); !errors.Is(err, ErrClosed) {
		t.Fatalf("StartLoop after Close = %v, want ErrClosed", err)
	}
}

func TestPresentErrorIsLogged(t *testing.T) {
	clock := newManualClock()
	logger := &recordingLogger{}
	s, provider := newTestSession(t, WithClock(clock), WithLogger(logger))
	provider.surface.presentErr = errors.New("device gone")

	loop, err := s.StartLoop(func() {})
	if err != nil {
		t.Fatal(err)
	}
	clock.tick(t)
	waitFrames(t, loop, 1)

	if logger.errorCount() != 1 {
		t.Fatalf("logged %d errors, want 1", logger.errorCount())
	}
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if !strings.Contains(logger.errors[0], "device gone") {
		t.Fatalf("error line = %q", logger.errors[0])
	}
}
