package geom

import "math"

// ============================================================
// Point
// ============================================================

// Point точка на холсте в вещественных координатах.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) Equals(q Point) bool {
	return p.X == q.X && p.Y == q.Y
}

// ============================================================
// Rect
// ============================================================

// Rect целочисленный прямоугольник (x, y, ширина, высота) в единицах холста.
type Rect struct {
	X, Y, W, H int
}

// Contains проверяет попадание точки с включёнными границами: x <= px <= x+w.
func (r Rect) Contains(px, py int) bool {
	return px >= r.X && px <= r.X+r.W && py >= r.Y && py <= r.Y+r.H
}

func (r Rect) Translate(dx, dy int) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Union возвращает наименьший прямоугольник, содержащий оба.
func (r Rect) Union(o Rect) Rect {
	x0 := min(r.X, o.X)
	y0 := min(r.Y, o.Y)
	x1 := max(r.Right(), o.Right())
	y1 := max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Intersect пересечение прямоугольников; пустое пересечение даёт нулевой размер.
func (r Rect) Intersect(o Rect) Rect {
	x0 := max(r.X, o.X)
	y0 := max(r.Y, o.Y)
	x1 := min(r.Right(), o.Right())
	y1 := min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// UnionAll объединяет набор прямоугольников; для пустого набора ok=false.
func UnionAll(rects []Rect) (Rect, bool) {
	if len(rects) == 0 {
		return Rect{}, false
	}
	out := rects[0]
	for _, r := range rects[1:] {
		out = out.Union(r)
	}
	return out, true
}

// FRect вещественный прямоугольник, используется для точных границ контуров.
type FRect struct {
	X, Y, W, H float64
}

// Snap переводит в целочисленный прямоугольник: floor для начала, ceil для конца.
func (r FRect) Snap() Rect {
	x0 := math.Floor(r.X)
	y0 := math.Floor(r.Y)
	x1 := math.Ceil(r.X + r.W)
	y1 := math.Ceil(r.Y + r.H)
	return Rect{X: int(x0), Y: int(y0), W: int(x1 - x0), H: int(y1 - y0)}
}

// ============================================================
// Matrix
// ============================================================

// Matrix аффинное преобразование:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

var Identity = Matrix{A: 1, D: 1}

func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Rotate поворот на deg градусов вокруг начала координат (ось y направлена вниз).
func Rotate(deg float64) Matrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// RotateAbout поворот на deg градусов вокруг точки (cx, cy).
func RotateAbout(deg, cx, cy float64) Matrix {
	return Translate(cx, cy).Mul(Rotate(deg)).Mul(Translate(-cx, -cy))
}

// Mul возвращает m·n: сначала применяется n, затем m.
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

func (m Matrix) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

func (m Matrix) IsIdentity() bool {
	return m == Identity
}

// IsTranslation true, если матрица только сдвигает.
func (m Matrix) IsTranslation() bool {
	return m.A == 1 && m.B == 0 && m.C == 0 && m.D == 1
}

// TransformRect возвращает ограничивающий прямоугольник образа r.
func (m Matrix) TransformRect(r FRect) FRect {
	corners := [4]Point{
		m.Apply(Pt(r.X, r.Y)),
		m.Apply(Pt(r.X+r.W, r.Y)),
		m.Apply(Pt(r.X, r.Y+r.H)),
		m.Apply(Pt(r.X+r.W, r.Y+r.H)),
	}
	x0, y0 := corners[0].X, corners[0].Y
	x1, y1 := x0, y0
	for _, c := range corners[1:] {
		x0 = math.Min(x0, c.X)
		y0 = math.Min(y0, c.Y)
		x1 = math.Max(x1, c.X)
		y1 = math.Max(y1, c.Y)
	}
	return FRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
