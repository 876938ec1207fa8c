package render

import (
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/geom"
)

// fallbackSize размер холста для пустого документа.
const fallbackSize = 1000

// canvasSize возвращает заданный размер или правый нижний угол содержимого.
func canvasSize(elems []element.Element, width, height int) (int, int) {
	if width > 0 && height > 0 {
		return width, height
	}
	rects := make([]geom.Rect, 0, len(elems))
	for _, e := range elems {
		rects = append(rects, element.VisualBounds(e))
	}
	u, ok := geom.UnionAll(rects)
	if !ok || u.Right() <= 0 || u.Bottom() <= 0 {
		return fallbackSize, fallbackSize
	}
	return u.Right(), u.Bottom()
}

// withoutSelection снимает выделение со всех узлов дерева на время fn и
// затем восстанавливает его.
func withoutSelection(elems []element.Element, fn func()) {
	var selected []element.Element
	var visit func(e element.Element)
	visit = func(e element.Element) {
		if e.Selected() {
			selected = append(selected, e)
			e.SetSelected(false)
		}
		if g, ok := e.(*element.Group); ok {
			for _, c := range g.Children() {
				visit(c)
			}
		}
	}
	for _, e := range elems {
		visit(e)
	}
	defer func() {
		for _, e := range selected {
			e.SetSelected(true)
		}
	}()
	fn()
}
