package geom

import "math"

// ============================================================
// Elliptical arcs
// ============================================================

// Arc центральная параметризация эллиптической дуги.
type Arc struct {
	Cx, Cy float64
	Rx, Ry float64 // радиусы после коррекции
	Phi    float64 // поворот оси, радианы
	Theta1 float64 // начальный угол
	DTheta float64 // угловой размах; знак совпадает с sweep
}

// arcEpsilon порог вырожденного размаха и вырожденного sin(δ/2).
const arcEpsilon = 1e-10

// ArcCenter переводит дугу из параметризации по концам в центральную.
// ok=false, если дуга вырождена: совпадающие концы, нулевой радиус или нулевой размах.
func ArcCenter(x1, y1, rx, ry, angle float64, large, sweep bool, x2, y2 float64) (Arc, bool) {
	if x1 == x2 && y1 == y2 {
		return Arc{}, false
	}
	if rx == 0 || ry == 0 {
		return Arc{}, false
	}
	rx = math.Abs(rx)
	ry = math.Abs(ry)

	phi := angle * math.Pi / 180
	sinPhi, cosPhi := math.Sincos(phi)

	// хорда в локальной системе эллипса
	dx2 := (x1 - x2) / 2
	dy2 := (y1 - y2) / 2
	x1p := cosPhi*dx2 + sinPhi*dy2
	y1p := -sinPhi*dx2 + cosPhi*dy2

	// радиусы увеличиваются, если хорда не помещается
	lambda := (x1p*x1p)/(rx*rx) + (y1p*y1p)/(ry*ry)
	if lambda > 1 {
		s := math.Sqrt(lambda)
		rx *= s
		ry *= s
	}

	sign := -1.0
	if large != sweep {
		sign = 1.0
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*y1p*y1p - ry2*x1p*x1p
	den := rx2*y1p*y1p + ry2*x1p*x1p
	sq := num / den
	if sq < 0 {
		sq = 0
	}
	coef := sign * math.Sqrt(sq)
	cxp := coef * (rx * y1p / ry)
	cyp := coef * -(ry * x1p / rx)

	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	theta1 := math.Atan2((y1p-cyp)/ry, (x1p-cxp)/rx)
	dtheta := math.Atan2((-y1p-cyp)/ry, (-x1p-cxp)/rx) - theta1
	if sweep && dtheta < 0 {
		dtheta += 2 * math.Pi
	} else if !sweep && dtheta > 0 {
		dtheta -= 2 * math.Pi
	}
	if math.Abs(dtheta) < arcEpsilon {
		return Arc{}, false
	}

	return Arc{Cx: cx, Cy: cy, Rx: rx, Ry: ry, Phi: phi, Theta1: theta1, DTheta: dtheta}, true
}

// ArcToBezier аппроксимирует дугу (x1,y1) → (x2,y2) кубическими сегментами.
// Совпадающие концы дают пустой результат, нулевой радиус даёт один отрезок.
// Каждый сегмент покрывает не более π/2; конец последнего равен (x2, y2).
func ArcToBezier(x1, y1, rx, ry, angle float64, large, sweep bool, x2, y2 float64) []Segment {
	if x1 == x2 && y1 == y2 {
		return nil
	}
	if rx == 0 || ry == 0 {
		return []Segment{{Op: LineTo, Pts: [3]Point{{x2, y2}}}}
	}

	arc, ok := ArcCenter(x1, y1, rx, ry, angle, large, sweep, x2, y2)
	if !ok {
		return nil
	}

	n := int(math.Ceil(math.Abs(arc.DTheta)/(math.Pi/2) - arcEpsilon))
	if n < 1 {
		n = 1
	}
	delta := arc.DTheta / float64(n)

	sinPhi, cosPhi := math.Sincos(arc.Phi)
	toGlobal := func(ux, uy float64) Point {
		x := arc.Rx * ux
		y := arc.Ry * uy
		return Point{
			X: cosPhi*x - sinPhi*y + arc.Cx,
			Y: sinPhi*x + cosPhi*y + arc.Cy,
		}
	}

	segs := make([]Segment, 0, n)
	for i := 0; i < n; i++ {
		a1 := arc.Theta1 + float64(i)*delta
		a2 := a1 + delta

		sinHalf := math.Sin(delta / 2)
		if math.Abs(sinHalf) < arcEpsilon {
			continue
		}
		sinQuarter := math.Sin(delta / 4)
		t := (8.0 / 3.0) * sinQuarter * sinQuarter / sinHalf

		sin1, cos1 := math.Sincos(a1)
		sin2, cos2 := math.Sincos(a2)

		cp1 := toGlobal(cos1-sin1*t, sin1+cos1*t)
		cp2 := toGlobal(cos2+sin2*t, sin2-cos2*t)
		end := toGlobal(cos2, sin2)

		segs = append(segs, Segment{Op: CubicTo, Pts: [3]Point{cp1, cp2, end}})
	}
	if len(segs) > 0 {
		segs[len(segs)-1].Pts[2] = Point{x2, y2}
	}
	return segs
}
