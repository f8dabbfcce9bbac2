package session

import (
	"context"
	"fmt"
	"image"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rook-computer/easel/render"
	"github.com/rook-computer/easel/render/layout"
)

type call struct {
	name   string
	args   []float64
	text   string
	fill   string
	stroke string
	image  image.Image
}

// recordingSurface is a render.Surface that records every call together
// with the styles in effect at the time.
type recordingSurface struct {
	mu         sync.Mutex
	width      int
	height     int
	fill       string
	stroke     string
	lineWidth  float64
	fontSize   int
	calls      []call
	presents   int
	presentErr error
}

var _ render.Surface = (*recordingSurface)(nil)

func newRecordingSurface(width, height int) *recordingSurface {
	return &recordingSurface{width: width, height: height, fill: "black", stroke: "black", lineWidth: 1, fontSize: 10}
}

func (r *recordingSurface) record(name string, args ...float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{name: name, args: args, fill: r.fill, stroke: r.stroke})
}

func (r *recordingSurface) snapshot() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}

func (r *recordingSurface) reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *recordingSurface) presented() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.presents
}

func (r *recordingSurface) Size() (int, int) { return r.width, r.height }

func (r *recordingSurface) ClearRect(x, y, w, h float64)  { r.record("ClearRect", x, y, w, h) }
func (r *recordingSurface) FillRect(x, y, w, h float64)   { r.record("FillRect", x, y, w, h) }
func (r *recordingSurface) StrokeRect(x, y, w, h float64) { r.record("StrokeRect", x, y, w, h) }
func (r *recordingSurface) BeginPath()                    { r.record("BeginPath") }
func (r *recordingSurface) MoveTo(x, y float64)           { r.record("MoveTo", x, y) }
func (r *recordingSurface) LineTo(x, y float64)           { r.record("LineTo", x, y) }
func (r *recordingSurface) ClosePath()                    { r.record("ClosePath") }
func (r *recordingSurface) Fill()                         { r.record("Fill") }
func (r *recordingSurface) Stroke()                       { r.record("Stroke") }

func (r *recordingSurface) Arc(x, y, radius, start, end float64) {
	r.record("Arc", x, y, radius, start, end)
}

func (r *recordingSurface) SetFillStyle(color string) {
	r.mu.Lock()
	r.fill = color
	r.calls = append(r.calls, call{name: "SetFillStyle", text: color, fill: r.fill, stroke: r.stroke})
	r.mu.Unlock()
}

func (r *recordingSurface) SetStrokeStyle(color string) {
	r.mu.Lock()
	r.stroke = color
	r.calls = append(r.calls, call{name: "SetStrokeStyle", text: color, fill: r.fill, stroke: r.stroke})
	r.mu.Unlock()
}

func (r *recordingSurface) LineWidth() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lineWidth
}

func (r *recordingSurface) SetLineWidth(width float64) {
	r.mu.Lock()
	r.lineWidth = width
	r.mu.Unlock()
}

func (r *recordingSurface) SetFontSize(px int) {
	r.mu.Lock()
	r.fontSize = px
	r.mu.Unlock()
	r.record("SetFontSize", float64(px))
}

func (r *recordingSurface) FillText(text string, x, y float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{name: "FillText", args: []float64{x, y}, text: text, fill: r.fill, stroke: r.stroke})
}

func (r *recordingSurface) MeasureText(text string) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return float64(len(text) * r.fontSize)
}

func (r *recordingSurface) DrawImage(img image.Image, x, y, w, h float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, call{name: "DrawImage", args: []float64{x, y, w, h}, image: img})
}

func (r *recordingSurface) Present() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.presents++
	r.calls = append(r.calls, call{name: "Present"})
	return r.presentErr
}

func names(calls []call) []string {
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.name
	}
	return out
}

// fakeProvider hands out one recordingSurface and captures the event sink.
type fakeProvider struct {
	mu             sync.Mutex
	surface        *recordingSurface
	surfaceErr     error
	listenErr      error
	viewportWidth  float64
	viewportHeight float64
	placements     []layout.Placement
	sink           EventSink
	listenCtx      context.Context
}

func newFakeProvider(viewportWidth, viewportHeight float64) *fakeProvider {
	return &fakeProvider{viewportWidth: viewportWidth, viewportHeight: viewportHeight}
}

func (p *fakeProvider) NewSurface(width, height int) (render.Surface, error) {
	if p.surfaceErr != nil {
		return nil, p.surfaceErr
	}
	p.surface = newRecordingSurface(width, height)
	return p.surface, nil
}

func (p *fakeProvider) Viewport() (float64, float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.viewportWidth, p.viewportHeight
}

func (p *fakeProvider) setViewport(width, height float64) {
	p.mu.Lock()
	p.viewportWidth = width
	p.viewportHeight = height
	p.mu.Unlock()
}

func (p *fakeProvider) Place(placement layout.Placement) {
	p.mu.Lock()
	p.placements = append(p.placements, placement)
	p.mu.Unlock()
}

func (p *fakeProvider) lastPlacement() layout.Placement {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.placements) == 0 {
		return layout.Placement{}
	}
	return p.placements[len(p.placements)-1]
}

func (p *fakeProvider) Listen(ctx context.Context, sink EventSink) error {
	if p.listenErr != nil {
		return p.listenErr
	}
	p.sink = sink
	p.listenCtx = ctx
	return nil
}

// manualClock hands the loop a ticker that only fires when the test says so.
type manualClock struct {
	ticker *manualTicker
	period time.Duration
}

type manualTicker struct {
	ch      chan time.Time
	stopped atomic.Bool
}

func newManualClock() *manualClock {
	return &manualClock{ticker: &manualTicker{ch: make(chan time.Time)}}
}

func (c *manualClock) NewTicker(period time.Duration) Ticker {
	c.period = period
	return c.ticker
}

func (t *manualTicker) C() <-chan time.Time { return t.ch }
func (t *manualTicker) Stop()               { t.stopped.Store(true) }

func (c *manualClock) tick(t *testing.T) {
	t.Helper()
	select {
	case c.ticker.ch <- time.Now():
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not accept tick")
	}
}

func waitFrames(t *testing.T, loop *Loop, n uint64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for loop.Frames() < n {
		if time.Now().After(deadline) {
			t.Fatalf("loop reached %d frames, want %d", loop.Frames(), n)
		}
		time.Sleep(time.Millisecond)
	}
}

type recordingLogger struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (l *recordingLogger) Infof(component, format string, args ...interface{}) {
	l.mu.Lock()
	l.infos = append(l.infos, component+": "+fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) Errorf(component, format string, args ...interface{}) {
	l.mu.Lock()
	l.errors = append(l.errors, component+": "+fmt.Sprintf(format, args...))
	l.mu.Unlock()
}

func (l *recordingLogger) errorCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

// newTestSession creates a live 800x600 session that is closed at cleanup.
func newTestSession(t *testing.T, opts ...Option) (*Session, *fakeProvider) {
	t.Helper()
	provider := newFakeProvider(800, 600)
	s, err := New(provider, 800, 600, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s, provider
}

// live returns the registered Session, or nil.
func live() *Session {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.live
}
