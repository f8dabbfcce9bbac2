package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
)

type pathOpKind int

const (
	opMove pathOpKind = iota
	opLine
	opArc
	opClose
)

type pathOp struct {
	kind               pathOpKind
	x, y               float64
	radius, start, end float64 // arcs only
}

// shapePath records canvas path calls so Fill and Stroke can replay them;
// gg consumes its own path on every paint.
type shapePath struct {
	ops      []pathOp
	hasPoint bool
	startX   float64
	startY   float64
}

func (p *shapePath) reset() {
	p.ops = p.ops[:0]
	p.hasPoint = false
}

func (p *shapePath) moveTo(x, y float64) {
	p.ops = append(p.ops, pathOp{kind: opMove, x: x, y: y})
	p.hasPoint = true
	p.startX, p.startY = x, y
}

func (p *shapePath) lineTo(x, y float64) {
	if !p.hasPoint {
		p.moveTo(x, y)
		return
	}
	p.ops = append(p.ops, pathOp{kind: opLine, x: x, y: y})
}

// closePath closes the subpath and leaves the current point at its start.
func (p *shapePath) closePath() {
	if !p.hasPoint {
		return
	}
	p.ops = append(p.ops, pathOp{kind: opClose})
	p.moveTo(p.startX, p.startY)
}

// arc adds a clockwise arc joined to the current point by a straight line.
// Sweeps of a full turn or more draw the whole circle.
func (p *shapePath) arc(x, y, radius, startAngle, endAngle float64) {
	if !(radius >= 0) || !finite(x, y, radius, startAngle, endAngle) {
		return
	}
	sweep := endAngle - startAngle
	if sweep >= 2*math.Pi {
		sweep = 2 * math.Pi
	} else {
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	}

	firstX := x + radius*math.Cos(startAngle)
	firstY := y + radius*math.Sin(startAngle)
	p.lineTo(firstX, firstY)
	if sweep > 0 {
		p.ops = append(p.ops, pathOp{kind: opArc, x: x, y: y, radius: radius, start: startAngle, end: startAngle + sweep})
	}
}

func (p *shapePath) empty() bool {
	for _, op := range p.ops {
		if op.kind != opMove {
			return false
		}
	}
	return true
}

// trace replays the recorded path into dc. Moves that start no segment are
// dropped.
func (p *shapePath) trace(dc *gg.Context) {
	dc.ClearPath()
	for i, op := range p.ops {
		switch op.kind {
		case opMove:
			if i+1 < len(p.ops) && p.ops[i+1].kind != opMove {
				dc.MoveTo(op.x, op.y)
			}
		case opLine:
			dc.LineTo(op.x, op.y)
		case opArc:
			dc.DrawArc(op.x, op.y, op.radius, op.start, op.end)
		case opClose:
			dc.ClosePath()
		}
	}
}

// painter draws shapes with gg onto a pixmap whose pixels are also exposed
// as frame, so image/draw and font code can paint the same buffer.
type painter struct {
	pm    *gg.Pixmap
	dc    *gg.Context
	frame *image.RGBA

	fill      color.RGBA
	stroke    color.RGBA
	lineWidth float64

	path shapePath
	err  error
}

func newPainter(width, height int) painter {
	pm := gg.NewPixmap(width, height)
	black, _ := ParseColor(DefaultColor)
	dc := gg.NewContext(width, height, gg.WithPixmap(pm))
	dc.SetLineCap(gg.LineCapButt)
	dc.SetLineJoin(gg.LineJoinMiter)
	dc.SetMiterLimit(10)
	frame := &image.RGBA{
		Pix:    pm.Data(),
		Stride: 4 * width,
		Rect:   image.Rect(0, 0, width, height),
	}
	return painter{
		pm:        pm,
		dc:        dc,
		frame:     frame,
		fill:      black,
		stroke:    black,
		lineWidth: DefaultLineWidth,
	}
}

func (p *painter) Size() (int, int) { return p.pm.Width(), p.pm.Height() }

func (p *painter) ClearRect(x, y, width, height float64) {
	rect := pixelRect(x, y, width, height).Intersect(p.frame.Rect)
	if rect.Empty() {
		return
	}
	p.pm.FillRect(rect, 0, 0, 0, 0)
}

func (p *painter) FillRect(x, y, width, height float64) {
	if p.fill.A == 0 || !finite(x, y, width, height) {
		return
	}
	p.dc.ClearPath()
	p.dc.DrawRectangle(x, y, width, height)
	p.dc.SetColor(p.fill)
	p.record(p.dc.Fill())
}

func (p *painter) StrokeRect(x, y, width, height float64) {
	if p.stroke.A == 0 || !finite(x, y, width, height) {
		return
	}
	p.dc.ClearPath()
	p.dc.DrawRectangle(x, y, width, height)
	p.strokeCurrent()
}

func (p *painter) BeginPath()          { p.path.reset() }
func (p *painter) MoveTo(x, y float64) { p.path.moveTo(x, y) }
func (p *painter) LineTo(x, y float64) { p.path.lineTo(x, y) }
func (p *painter) ClosePath()          { p.path.closePath() }

func (p *painter) Arc(x, y, radius, startAngle, endAngle float64) {
	p.path.arc(x, y, radius, startAngle, endAngle)
}

// Fill paints the recorded path; open subpaths are implicitly closed.
func (p *painter) Fill() {
	if p.fill.A == 0 || p.path.empty() {
		return
	}
	p.path.trace(p.dc)
	p.dc.SetColor(p.fill)
	p.record(p.dc.Fill())
}

func (p *painter) Stroke() {
	if p.stroke.A == 0 || p.path.empty() {
		return
	}
	p.path.trace(p.dc)
	p.strokeCurrent()
}

func (p *painter) strokeCurrent() {
	p.dc.SetColor(p.stroke)
	p.dc.SetLineWidth(p.lineWidth)
	p.record(p.dc.Stroke())
}

func (p *painter) SetFillStyle(value string) {
	if parsed, ok := ParseColor(value); ok {
		p.fill = parsed
	}
}

func (p *painter) SetStrokeStyle(value string) {
	if parsed, ok := ParseColor(value); ok {
		p.stroke = parsed
	}
}

func (p *painter) LineWidth() float64 { return p.lineWidth }

// SetLineWidth ignores zero, negative and non-finite widths.
func (p *painter) SetLineWidth(width float64) {
	if width > 0 && !math.IsInf(width, 0) {
		p.lineWidth = width
	}
}

func (p *painter) record(err error) {
	if err != nil && p.err == nil {
		p.err = err
	}
}

// takeErr returns and clears the first paint error since the last call.
func (p *painter) takeErr() error {
	err := p.err
	p.err = nil
	return err
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// clampCoord keeps far off-surface coordinates representable as int.
func clampCoord(v float64) int {
	const limit = 1 << 24
	if v < -limit {
		return -limit
	}
	if v > limit {
		return limit
	}
	return int(v)
}

// pixelRect rounds a canvas rectangle, which may have negative extents.
func pixelRect(x, y, width, height float64) image.Rectangle {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(width) || math.IsNaN(height) {
		return image.Rectangle{}
	}
	return image.Rect(
		clampCoord(math.Round(x)),
		clampCoord(math.Round(y)),
		clampCoord(math.Round(x+width)),
		clampCoord(math.Round(y+height)),
	)
}
