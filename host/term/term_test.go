package term

import (
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rook-computer/easel/render/layout"
)

type sinkEvent struct {
	kind string
	code string
	x, y float64
}

type recordingSink struct {
	mu     sync.Mutex
	events []sinkEvent
}

func (s *recordingSink) add(ev sinkEvent) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	s.mu.Unlock()
}

func (s *recordingSink) snapshot() []sinkEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]sinkEvent(nil), s.events...)
}

func (s *recordingSink) Resize()                  { s.add(sinkEvent{kind: "resize"}) }
func (s *recordingSink) PointerMove(x, y float64) { s.add(sinkEvent{kind: "move", x: x, y: y}) }
func (s *recordingSink) KeyDown(code string)      { s.add(sinkEvent{kind: "down", code: code}) }
func (s *recordingSink) KeyUp(code string)        { s.add(sinkEvent{kind: "up", code: code}) }

func newTestScreen(t *testing.T, cols, rows int, cfg Config) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	if err := sim.Init(); err != nil {
		t.Fatal(err)
	}
	sim.SetSize(cols, rows)
	s := newScreen(sim, cfg)
	t.Cleanup(func() { _ = s.Close() })
	return s, sim
}

func TestViewportIsTwoPixelsPerRow(t *testing.T) {
	s, _ := newTestScreen(t, 40, 12, Config{})
	w, h := s.Viewport()
	if w != 40 || h != 24 {
		t.Fatalf("Viewport = %vx%v, want 40x24", w, h)
	}
}

func TestPresentDrawsHalfBlocks(t *testing.T) {
	s, sim := newTestScreen(t, 4, 2, Config{})
	s.Place(layout.Letterbox(4, 4, 4, 4))

	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	red := color.RGBA{R: 0xFF, A: 0xFF}
	blue := color.RGBA{B: 0xFF, A: 0xFF}
	for x := 0; x < 4; x++ {
		frame.SetRGBA(x, 0, red)
		frame.SetRGBA(x, 1, blue)
		frame.SetRGBA(x, 2, blue)
		frame.SetRGBA(x, 3, red)
	}
	if err := s.present(frame); err != nil {
		t.Fatal(err)
	}

	cells, cols, _ := sim.GetContents()
	top := cells[0]
	if len(top.Runes) == 0 || top.Runes[0] != upperHalfBlock {
		t.Fatalf("cell runes = %q", top.Runes)
	}
	fg, bg, _ := top.Style.Decompose()
	if fg != tcell.NewRGBColor(0xFF, 0, 0) || bg != tcell.NewRGBColor(0, 0, 0xFF) {
		t.Fatalf("row 0 colors = %v/%v, want red over blue", fg, bg)
	}
	fg, bg, _ = cells[cols+1].Style.Decompose()
	if fg != tcell.NewRGBColor(0, 0, 0xFF) || bg != tcell.NewRGBColor(0xFF, 0, 0) {
		t.Fatalf("row 1 colors = %v/%v, want blue over red", fg, bg)
	}
}

func TestHandleMouseAndResize(t *testing.T) {
	s, _ := newTestScreen(t, 10, 5, Config{})
	sink := &recordingSink{}

	s.handle(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone), sink)
	s.handle(tcell.NewEventResize(20, 10), sink)

	got := sink.snapshot()
	want := []sinkEvent{{kind: "move", x: 3.5, y: 5}, {kind: "resize"}}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("events = %+v, want %+v", got, want)
	}
}

func TestKeyReleaseIsSynthesized(t *testing.T) {
	s, _ := newTestScreen(t, 10, 5, Config{ReleaseAfter: 30 * time.Millisecond})
	sink := &recordingSink{}

	s.handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), sink)
	s.handle(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), sink)

	deadline := time.Now().Add(2 * time.Second)
	for len(sink.snapshot()) < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("no key-up, events = %+v", sink.snapshot())
		}
		time.Sleep(5 * time.Millisecond)
	}
	// Give a stale timer a chance to fire a second key-up.
	time.Sleep(60 * time.Millisecond)

	got := sink.snapshot()
	want := []sinkEvent{{kind: "down", code: "KeyA"}, {kind: "down", code: "KeyA"}, {kind: "up", code: "KeyA"}}
	if len(got) != len(want) {
		t.Fatalf("events = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestCtrlCQuits(t *testing.T) {
	quits := 0
	s, _ := newTestScreen(t, 10, 5, Config{OnQuit: func() { quits++ }})
	sink := &recordingSink{}

	s.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), sink)
	s.handle(tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), sink)

	if quits != 1 {
		t.Fatalf("OnQuit ran %d times, want 1", quits)
	}
	if len(sink.snapshot()) != 0 {
		t.Fatalf("Ctrl-C reached the sink: %+v", sink.snapshot())
	}
}
