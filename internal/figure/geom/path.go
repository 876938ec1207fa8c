package geom

import (
	"math"
)

// ============================================================
// Path
// ============================================================

// Op команда контура.
type Op uint8

const (
	MoveTo Op = iota
	LineTo
	QuadTo
	CubicTo
	Close
)

func (op Op) String() string {
	switch op {
	case MoveTo:
		return "M"
	case LineTo:
		return "L"
	case QuadTo:
		return "Q"
	case CubicTo:
		return "C"
	case Close:
		return "Z"
	}
	return "?"
}

// NumPoints количество точек, которые несёт команда.
func (op Op) NumPoints() int {
	switch op {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	}
	return 0
}

// Segment одна команда контура. Конечная точка всегда последняя из используемых.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// End конечная точка сегмента; для Close не определена.
func (s Segment) End() Point {
	if n := s.Op.NumPoints(); n > 0 {
		return s.Pts[n-1]
	}
	return Point{}
}

// Path упорядоченная последовательность команд (moveTo, lineTo, quadTo, cubicTo, close).
type Path struct {
	segs  []Segment
	start Point
	cur   Point
}

func NewPath() *Path {
	return &Path{}
}

func (p *Path) MoveTo(x, y float64) {
	p.append(Segment{Op: MoveTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) LineTo(x, y float64) {
	p.append(Segment{Op: LineTo, Pts: [3]Point{{x, y}}})
}

func (p *Path) QuadTo(cx, cy, x, y float64) {
	p.append(Segment{Op: QuadTo, Pts: [3]Point{{cx, cy}, {x, y}}})
}

func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	p.append(Segment{Op: CubicTo, Pts: [3]Point{{c1x, c1y}, {c2x, c2y}, {x, y}}})
}

func (p *Path) Close() {
	p.append(Segment{Op: Close})
}

// ArcTo добавляет эллиптическую дугу из текущей точки в (x, y) кубическими сегментами.
func (p *Path) ArcTo(rx, ry, angle float64, large, sweep bool, x, y float64) {
	for _, seg := range ArcToBezier(p.cur.X, p.cur.Y, rx, ry, angle, large, sweep, x, y) {
		p.append(seg)
	}
}

// Append добавляет готовый сегмент, поддерживая текущую точку и начало подконтура.
func (p *Path) Append(seg Segment) {
	p.append(seg)
}

func (p *Path) append(seg Segment) {
	switch seg.Op {
	case MoveTo:
		p.start = seg.Pts[0]
		p.cur = seg.Pts[0]
	case Close:
		p.cur = p.start
	default:
		p.cur = seg.End()
	}
	p.segs = append(p.segs, seg)
}

// Current текущая точка пера.
func (p *Path) Current() Point {
	return p.cur
}

// Start начало текущего подконтура.
func (p *Path) Start() Point {
	return p.start
}

func (p *Path) Segments() []Segment {
	return p.segs
}

func (p *Path) Len() int {
	return len(p.segs)
}

func (p *Path) Empty() bool {
	return len(p.segs) == 0
}

func (p *Path) Clone() *Path {
	q := &Path{start: p.start, cur: p.cur}
	q.segs = append([]Segment(nil), p.segs...)
	return q
}

// Equal сравнивает контуры покомандно.
func (p *Path) Equal(q *Path) bool {
	if p == nil || q == nil {
		return p == q
	}
	if len(p.segs) != len(q.segs) {
		return false
	}
	for i := range p.segs {
		if p.segs[i] != q.segs[i] {
			return false
		}
	}
	return true
}

// Translate сдвигает все точки контура на месте.
func (p *Path) Translate(dx, dy float64) {
	d := Point{dx, dy}
	for i := range p.segs {
		for j := 0; j < p.segs[i].Op.NumPoints(); j++ {
			p.segs[i].Pts[j] = p.segs[i].Pts[j].Add(d)
		}
	}
	p.start = p.start.Add(d)
	p.cur = p.cur.Add(d)
}

// Transform применяет матрицу ко всем точкам и возвращает новый контур.
func (p *Path) Transform(m Matrix) *Path {
	q := p.Clone()
	for i := range q.segs {
		for j := 0; j < q.segs[i].Op.NumPoints(); j++ {
			q.segs[i].Pts[j] = m.Apply(q.segs[i].Pts[j])
		}
	}
	q.start = m.Apply(q.start)
	q.cur = m.Apply(q.cur)
	return q
}

// ============================================================
// Bounds
// ============================================================

// Bounds точные границы контура с учётом экстремумов кривых. ok=false для пустого контура.
func (p *Path) Bounds() (FRect, bool) {
	if len(p.segs) == 0 {
		return FRect{}, false
	}

	b := boundsAcc{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	var cur, start Point
	for _, seg := range p.segs {
		switch seg.Op {
		case MoveTo:
			start = seg.Pts[0]
			cur = start
			b.add(cur)
		case LineTo:
			cur = seg.Pts[0]
			b.add(cur)
		case QuadTo:
			b.add(seg.Pts[1])
			for _, t := range quadExtrema(cur, seg.Pts[0], seg.Pts[1]) {
				b.add(quadAt(cur, seg.Pts[0], seg.Pts[1], t))
			}
			cur = seg.Pts[1]
		case CubicTo:
			b.add(seg.Pts[2])
			for _, t := range cubicExtrema(cur, seg.Pts[0], seg.Pts[1], seg.Pts[2]) {
				b.add(cubicAt(cur, seg.Pts[0], seg.Pts[1], seg.Pts[2], t))
			}
			cur = seg.Pts[2]
		case Close:
			cur = start
		}
	}
	if math.IsInf(b.minX, 0) {
		return FRect{}, false
	}
	return FRect{X: b.minX, Y: b.minY, W: b.maxX - b.minX, H: b.maxY - b.minY}, true
}

// BoundsRect целочисленные границы: floor начала и ceil конца.
func (p *Path) BoundsRect() Rect {
	r, ok := p.Bounds()
	if !ok {
		return Rect{}
	}
	return r.Snap()
}

type boundsAcc struct {
	minX, minY, maxX, maxY float64
}

func (b *boundsAcc) add(pt Point) {
	b.minX = math.Min(b.minX, pt.X)
	b.minY = math.Min(b.minY, pt.Y)
	b.maxX = math.Max(b.maxX, pt.X)
	b.maxY = math.Max(b.maxY, pt.Y)
}

func quadAt(p0, p1, p2 Point, t float64) Point {
	mt := 1 - t
	return Point{
		X: mt*mt*p0.X + 2*mt*t*p1.X + t*t*p2.X,
		Y: mt*mt*p0.Y + 2*mt*t*p1.Y + t*t*p2.Y,
	}
}

func cubicAt(p0, p1, p2, p3 Point, t float64) Point {
	mt := 1 - t
	a := mt * mt * mt
	b := 3 * mt * mt * t
	c := 3 * mt * t * t
	d := t * t * t
	return Point{
		X: a*p0.X + b*p1.X + c*p2.X + d*p3.X,
		Y: a*p0.Y + b*p1.Y + c*p2.Y + d*p3.Y,
	}
}

// quadExtrema параметры t в (0,1), где производная квадратичной кривой обнуляется по x или y.
func quadExtrema(p0, p1, p2 Point) []float64 {
	var ts []float64
	for _, v := range [2][3]float64{{p0.X, p1.X, p2.X}, {p0.Y, p1.Y, p2.Y}} {
		den := v[0] - 2*v[1] + v[2]
		if den == 0 {
			continue
		}
		if t := (v[0] - v[1]) / den; t > 0 && t < 1 {
			ts = append(ts, t)
		}
	}
	return ts
}

// cubicExtrema корни производной кубической кривой в (0,1) по каждой оси.
func cubicExtrema(p0, p1, p2, p3 Point) []float64 {
	var ts []float64
	for _, v := range [2][4]float64{{p0.X, p1.X, p2.X, p3.X}, {p0.Y, p1.Y, p2.Y, p3.Y}} {
		a := -v[0] + 3*v[1] - 3*v[2] + v[3]
		b := 2 * (v[0] - 2*v[1] + v[2])
		c := v[1] - v[0]
		for _, t := range solveQuadratic(a, b, c) {
			if t > 0 && t < 1 {
				ts = append(ts, t)
			}
		}
	}
	return ts
}

func solveQuadratic(a, b, c float64) []float64 {
	const eps = 1e-12
	if math.Abs(a) < eps {
		if math.Abs(b) < eps {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	return []float64{(-b + sq) / (2 * a), (-b - sq) / (2 * a)}
}

// ============================================================
// Flattening
// ============================================================

// Flatten разбивает контур на ломаные; каждая кривая заменяется steps отрезками.
// Второй результат сообщает, замкнута ли соответствующая ломаная.
func (p *Path) Flatten(steps int) ([][]Point, []bool) {
	if steps < 1 {
		steps = 1
	}
	var lines [][]Point
	var closed []bool
	var poly []Point
	var cur, start Point

	flush := func(isClosed bool) {
		if len(poly) > 1 {
			lines = append(lines, poly)
			closed = append(closed, isClosed)
		}
		poly = nil
	}

	for _, seg := range p.segs {
		switch seg.Op {
		case MoveTo:
			flush(false)
			start = seg.Pts[0]
			cur = start
			poly = []Point{cur}
		case LineTo:
			if poly == nil {
				poly = []Point{cur}
			}
			cur = seg.Pts[0]
			poly = append(poly, cur)
		case QuadTo:
			if poly == nil {
				poly = []Point{cur}
			}
			for i := 1; i <= steps; i++ {
				poly = append(poly, quadAt(cur, seg.Pts[0], seg.Pts[1], float64(i)/float64(steps)))
			}
			cur = seg.Pts[1]
		case CubicTo:
			if poly == nil {
				poly = []Point{cur}
			}
			for i := 1; i <= steps; i++ {
				poly = append(poly, cubicAt(cur, seg.Pts[0], seg.Pts[1], seg.Pts[2], float64(i)/float64(steps)))
			}
			cur = seg.Pts[2]
		case Close:
			if poly != nil {
				poly = append(poly, start)
			}
			flush(true)
			cur = start
		}
	}
	flush(false)
	return lines, closed
}

// ============================================================
// Primitive outlines
// ============================================================

// kappa коэффициент аппроксимации четверти окружности кубической кривой.
const kappa = 0.5522847498307936

// EllipsePath овал, вписанный в прямоугольник (x, y, w, h).
func EllipsePath(x, y, w, h float64) *Path {
	rx, ry := w/2, h/2
	cx, cy := x+rx, y+ry
	kx, ky := rx*kappa, ry*kappa

	p := NewPath()
	p.MoveTo(cx+rx, cy)
	p.CubicTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	p.CubicTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	p.CubicTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	p.CubicTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	p.Close()
	return p
}

// RectPath прямоугольный контур.
func RectPath(x, y, w, h float64) *Path {
	p := NewPath()
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
	return p
}
