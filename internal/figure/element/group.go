package element

import (
	"iter"

	"figuremaker/internal/figure/geom"
)

// ============================================================
// Group
// ============================================================

// Group владеет упорядоченным списком дочерних элементов. Рамка группы всегда
// равна объединению рамок детей и пересчитывается при AddChild/RemoveChild.
// ClippingMask ограничивает отрисовку детей рамкой группы.
type Group struct {
	Base
	GroupID      string
	ClippingMask bool
	children     []Element
}

// NewGroup создаёт группу и добавляет детей по порядку.
func NewGroup(children ...Element) *Group {
	g := &Group{}
	for _, c := range children {
		g.AddChild(c)
	}
	return g
}

// NewGroupAt создаёт пустую группу с заданной рамкой. Рамка сохраняется,
// пока в группе нет детей.
func NewGroupAt(x, y, w, h int) *Group {
	return &Group{Base: Base{X: x, Y: y, W: w, H: h}}
}

func (g *Group) Kind() Kind {
	if g.ClippingMask {
		return KindClippingMask
	}
	return KindGroup
}

func (g *Group) AddChild(e Element) {
	g.children = append(g.children, e)
	g.updateBounds()
}

// RemoveChild удаляет ребёнка по идентичности; отсутствующий ребёнок игнорируется.
func (g *Group) RemoveChild(e Element) {
	for i, c := range g.children {
		if c == e {
			g.children = append(g.children[:i], g.children[i+1:]...)
			g.updateBounds()
			return
		}
	}
}

// Children дети группы снизу вверх. Срез нельзя изменять.
func (g *Group) Children() []Element {
	return g.children
}

func (g *Group) Len() int {
	return len(g.children)
}

// updateBounds пересчитывает рамку по текущим детям; пустая группа сохраняет прежнюю.
func (g *Group) updateBounds() {
	rects := make([]geom.Rect, 0, len(g.children))
	for _, c := range g.children {
		rects = append(rects, VisualBounds(c))
	}
	if r, ok := geom.UnionAll(rects); ok {
		g.X, g.Y, g.W, g.H = r.X, r.Y, r.W, r.H
	}
}

// VisualBounds область, которую элемент занимает на холсте. Совпадает с Bounds
// для всех вариантов, кроме SVGText, привязанного к базовой линии.
func VisualBounds(e Element) geom.Rect {
	if t, ok := e.(*SVGText); ok {
		return t.VisualBounds()
	}
	return e.Bounds()
}

// Translate сдвигает каждого ребёнка и рамку группы на одну и ту же дельту.
func (g *Group) Translate(dx, dy int) {
	for _, c := range g.children {
		c.Translate(dx, dy)
	}
	g.X += dx
	g.Y += dy
}

// ResizeTo не действует: рамка группы выводится из детей.
func (g *Group) ResizeTo(w, h int) {}

// Contains истинно, если точку содержит любой потомок или сама рамка группы.
func (g *Group) Contains(px, py int) bool {
	for _, c := range g.children {
		if c.Contains(px, py) {
			return true
		}
	}
	return g.Bounds().Contains(px, py)
}

// ReleaseClippingMask снимает флаг маски; геометрия не меняется.
func (g *Group) ReleaseClippingMask() {
	g.ClippingMask = false
}

func (g *Group) Draw(r Renderer) {
	if g.ClippingMask {
		r.PushClipRect(g.Bounds())
	}
	for _, c := range g.children {
		c.Draw(r)
	}
	if g.ClippingMask {
		r.PopClip()
	}
	if g.selected {
		drawSelection(r, g.Bounds())
	}
}

// Leaves обходит все листовые элементы поддерева в порядке отрисовки.
func Leaves(e Element) iter.Seq[Element] {
	return func(yield func(Element) bool) {
		walkLeaves(e, yield)
	}
}

func walkLeaves(e Element, yield func(Element) bool) bool {
	g, ok := e.(*Group)
	if !ok {
		return yield(e)
	}
	for _, c := range g.children {
		if !walkLeaves(c, yield) {
			return false
		}
	}
	return true
}
