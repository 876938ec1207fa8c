// Package element описывает модель элементов холста: фигуры, текст, изображения и группы.
package element

import (
	"image"
	"image/color"

	"figuremaker/internal/figure/geom"
)

// ============================================================
// Kind
// ============================================================

// Kind дискриминант варианта элемента, он же тег записи в файле.
type Kind string

const (
	KindRect         Kind = "rect"
	KindCircle       Kind = "circle"
	KindPath         Kind = "path"
	KindText         Kind = "text"
	KindSVGText      Kind = "svg-text"
	KindImage        Kind = "image"
	KindGroup        Kind = "group"
	KindClippingMask Kind = "clipping-mask"
)

// kindSVGTextAlias старое написание тега svg-text, принимается только на чтение.
const kindSVGTextAlias = "svgtext"

// ParseKind разбирает тег записи, включая алиас svgtext.
func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindRect, KindCircle, KindPath, KindText, KindSVGText, KindImage, KindGroup, KindClippingMask:
		return Kind(s), true
	}
	if s == kindSVGTextAlias {
		return KindSVGText, true
	}
	return "", false
}

// ============================================================
// Element
// ============================================================

// Element общий контракт всех вариантов. Набор вариантов закрыт:
// реализации есть только в этом пакете.
type Element interface {
	Kind() Kind
	Bounds() geom.Rect
	Contains(px, py int) bool
	Translate(dx, dy int)
	ResizeTo(w, h int)
	Draw(r Renderer)
	Selected() bool
	SetSelected(selected bool)

	isElement()
}

// MinSize минимальная сторона элемента при изменении размера пользователем.
// Модель не проверяет это ограничение, его соблюдает вызывающая сторона.
const MinSize = 20

// ClampSize приводит размер к минимально допустимому.
func ClampSize(w, h int) (int, int) {
	return max(w, MinSize), max(h, MinSize)
}

// MoveTo перемещает элемент так, чтобы его левый верхний угол оказался в (x, y).
func MoveTo(e Element, x, y int) {
	b := e.Bounds()
	e.Translate(x-b.X, y-b.Y)
}

// Base хранит общее геометрическое состояние и флаг выделения.
type Base struct {
	X, Y, W, H int
	selected   bool
}

func (b *Base) Bounds() geom.Rect {
	return geom.Rect{X: b.X, Y: b.Y, W: b.W, H: b.H}
}

func (b *Base) Contains(px, py int) bool {
	return b.Bounds().Contains(px, py)
}

func (b *Base) Translate(dx, dy int) {
	b.X += dx
	b.Y += dy
}

func (b *Base) ResizeTo(w, h int) {
	b.W = w
	b.H = h
}

func (b *Base) Selected() bool            { return b.selected }
func (b *Base) SetSelected(selected bool) { b.selected = selected }

func (b *Base) isElement() {}

func (b *Base) box() geom.FRect {
	return geom.FRect{X: float64(b.X), Y: float64(b.Y), W: float64(b.W), H: float64(b.H)}
}

// drawSelection рисует рамку выделения вокруг прямоугольника.
func drawSelection(r Renderer, box geom.Rect) {
	ring := geom.FRect{X: float64(box.X - 2), Y: float64(box.Y - 2), W: float64(box.W + 4), H: float64(box.H + 4)}
	r.StrokeShape(Shape{Kind: ShapeRect, Rect: ring}, SelectionColor, 2)
}

// ============================================================
// Colors
// ============================================================

var (
	Black          = color.RGBA{A: 0xff}
	White          = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	Gray           = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	SelectionColor = color.RGBA{B: 0xff, A: 0xff}
)

// RGB возвращает непрозрачный цвет для полей заливки и обводки.
func RGB(r, g, b uint8) *color.RGBA {
	return &color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// Paint параметры заливки и обводки. nil означает отсутствие краски.
type Paint struct {
	Fill        *color.RGBA
	Stroke      *color.RGBA
	StrokeWidth float64
}

func (p Paint) draw(r Renderer, s Shape) {
	if p.Fill != nil {
		r.FillShape(s, *p.Fill)
	}
	if p.Stroke != nil {
		r.StrokeShape(s, *p.Stroke, p.StrokeWidth)
	}
}

// ============================================================
// Font
// ============================================================

// FontStyle битовая маска начертания.
type FontStyle int

const (
	Plain  FontStyle = 0
	Bold   FontStyle = 1
	Italic FontStyle = 2
)

type Font struct {
	Family string
	Size   int
	Style  FontStyle
}

// DefaultFont шрифт по умолчанию для нового текста и импорта.
var DefaultFont = Font{Family: "Arial", Size: 14}

func (f Font) Bold() bool   { return f.Style&Bold != 0 }
func (f Font) Italic() bool { return f.Style&Italic != 0 }

// Ascent приблизительная высота над базовой линией.
func (f Font) Ascent() float64 {
	return float64(f.Size) * 0.8
}

// LineHeight расстояние между базовыми линиями соседних строк.
func (f Font) LineHeight() float64 {
	return float64(f.Size) * 1.2
}

// ============================================================
// Renderer
// ============================================================

// ShapeKind тип геометрии, передаваемой рендереру.
type ShapeKind uint8

const (
	ShapeRect ShapeKind = iota
	ShapeEllipse
	ShapePath
)

// Shape геометрия для заливки или обводки. Rect задаёт прямоугольник или
// описанный вокруг овала прямоугольник; Path используется для ShapePath.
type Shape struct {
	Kind ShapeKind
	Rect geom.FRect
	Path *geom.Path
}

// Renderer возможности 2D-бэкенда, через которые рисуется любой элемент.
// Координаты проходят через текущий стек преобразований.
type Renderer interface {
	FillShape(s Shape, c color.RGBA)
	StrokeShape(s Shape, c color.RGBA, width float64)
	DrawImage(img image.Image, dst geom.Rect)
	// DrawText рисует одну строку с базовой линией в (x, y).
	DrawText(text string, font Font, c color.RGBA, x, y float64)
	PushClipRect(r geom.Rect)
	PopClip()
	PushTransform(m geom.Matrix)
	PopTransform()
}

// DrawAll рисует элементы снизу вверх.
func DrawAll(r Renderer, elems []Element) {
	for _, e := range elems {
		e.Draw(r)
	}
}
