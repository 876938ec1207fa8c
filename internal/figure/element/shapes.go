package element

import (
	"figuremaker/internal/figure/geom"
)

// ============================================================
// Rect
// ============================================================

type Rect struct {
	Base
	Paint
}

func NewRect(x, y, w, h int, paint Paint) *Rect {
	return &Rect{Base: Base{X: x, Y: y, W: w, H: h}, Paint: paint}
}

func (e *Rect) Kind() Kind { return KindRect }

func (e *Rect) Draw(r Renderer) {
	e.Paint.draw(r, Shape{Kind: ShapeRect, Rect: e.box()})
	if e.selected {
		drawSelection(r, e.Bounds())
	}
}

// ============================================================
// Circle
// ============================================================

// Circle овал, вписанный в ограничивающий прямоугольник (rx = w/2, ry = h/2).
type Circle struct {
	Base
	Paint
}

func NewCircle(x, y, w, h int, paint Paint) *Circle {
	return &Circle{Base: Base{X: x, Y: y, W: w, H: h}, Paint: paint}
}

func (e *Circle) Kind() Kind { return KindCircle }

func (e *Circle) Draw(r Renderer) {
	e.Paint.draw(r, Shape{Kind: ShapeEllipse, Rect: e.box()})
	if e.selected {
		drawSelection(r, e.Bounds())
	}
}

// ============================================================
// Path
// ============================================================

// Path произвольный контур. Координаты контура локальны относительно (X, Y).
type Path struct {
	Base
	Paint
	Path *geom.Path
}

func NewPath(x, y, w, h int, path *geom.Path, paint Paint) *Path {
	if path == nil {
		path = geom.NewPath()
	}
	return &Path{Base: Base{X: x, Y: y, W: w, H: h}, Paint: paint, Path: path}
}

// PathFromAbsolute строит элемент из контура в координатах холста:
// контур переносится так, чтобы его границы начинались в (0, 0).
func PathFromAbsolute(path *geom.Path, paint Paint) *Path {
	b := path.BoundsRect()
	local := path.Clone()
	local.Translate(-float64(b.X), -float64(b.Y))
	return NewPath(b.X, b.Y, b.W, b.H, local, paint)
}

func (e *Path) Kind() Kind { return KindPath }

func (e *Path) Draw(r Renderer) {
	r.PushTransform(geom.Translate(float64(e.X), float64(e.Y)))
	e.Paint.draw(r, Shape{Kind: ShapePath, Path: e.Path})
	r.PopTransform()
	if e.selected {
		drawSelection(r, e.Bounds())
	}
}
