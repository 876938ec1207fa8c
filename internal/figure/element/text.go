package element

import (
	"image/color"
	"strings"

	"figuremaker/internal/figure/geom"
)

// ============================================================
// Text
// ============================================================

// textPadding отступ текста от рамки блока.
const textPadding = 5

// Text многострочный текстовый блок с фоном и рамкой.
// Color задаёт цвет текста; nil означает чёрный без сохранения цвета в файле.
type Text struct {
	Base
	Text  string
	Font  Font
	Color *color.RGBA
}

func NewText(x, y, w, h int, text string, font Font) *Text {
	return &Text{Base: Base{X: x, Y: y, W: w, H: h}, Text: text, Font: font}
}

// NewTextBox блок по умолчанию для вставки пользователем.
func NewTextBox(x, y int) *Text {
	return NewText(x, y, 200, 100, "Enter text here", DefaultFont)
}

func (e *Text) Kind() Kind { return KindText }

// Lines строки текста, разделённые переводом строки.
func (e *Text) Lines() []string {
	return strings.Split(e.Text, "\n")
}

func (e *Text) Draw(r Renderer) {
	box := Shape{Kind: ShapeRect, Rect: e.box()}
	r.FillShape(box, White)
	if e.selected {
		r.StrokeShape(box, SelectionColor, 2)
	} else {
		r.StrokeShape(box, Gray, 1)
	}

	c := Black
	if e.Color != nil {
		c = *e.Color
	}
	x := float64(e.X + textPadding)
	y := float64(e.Y+textPadding) + e.Font.Ascent()
	for _, line := range e.Lines() {
		r.DrawText(line, e.Font, c, x, y)
		y += e.Font.LineHeight()
	}
}

// ============================================================
// SVGText
// ============================================================

// SVGText текст, привязанный к базовой линии SVG: (X, Y) точка начала базовой линии,
// текст занимает полосу [Y-H, Y]. Rotation в градусах применяется вокруг (X, Y)
// только при отрисовке.
type SVGText struct {
	Base
	Text     string
	Font     Font
	Color    color.RGBA
	Rotation float64
}

func NewSVGText(x, y, w, h int, text string, font Font, c *color.RGBA, rotation float64) *SVGText {
	e := &SVGText{Base: Base{X: x, Y: y, W: w, H: h}, Text: text, Font: font, Color: Black, Rotation: rotation}
	if c != nil {
		e.Color = *c
	}
	return e
}

func (e *SVGText) Kind() Kind { return KindSVGText }

// VisualBounds полоса, в которой текст рисуется: [Y-H, Y]. Bounds остаётся
// записанной рамкой (X, Y, W, H) для формата файла.
func (e *SVGText) VisualBounds() geom.Rect {
	return geom.Rect{X: e.X, Y: e.Y - e.H, W: e.W, H: e.H}
}

// transform преобразование отрисовки: поворот вокруг точки привязки.
func (e *SVGText) transform() geom.Matrix {
	return geom.RotateAbout(e.Rotation, float64(e.X), float64(e.Y))
}

// Contains переводит точку в локальную систему текста обратным поворотом
// и проверяет попадание в полосу над базовой линией.
func (e *SVGText) Contains(px, py int) bool {
	p := geom.Pt(float64(px), float64(py))
	if e.Rotation != 0 {
		p = geom.RotateAbout(-e.Rotation, float64(e.X), float64(e.Y)).Apply(p)
	}
	x0, x1 := float64(e.X), float64(e.X+e.W)
	y0, y1 := float64(e.Y-e.H), float64(e.Y)
	return p.X >= x0 && p.X <= x1 && p.Y >= y0 && p.Y <= y1
}

func (e *SVGText) Draw(r Renderer) {
	rotated := e.Rotation != 0
	if rotated {
		r.PushTransform(e.transform())
	}
	r.DrawText(e.Text, e.Font, e.Color, float64(e.X), float64(e.Y))
	if e.selected {
		ring := geom.FRect{X: float64(e.X - 2), Y: float64(e.Y - e.H - 2), W: float64(e.W + 4), H: float64(e.H + 4)}
		r.StrokeShape(Shape{Kind: ShapeRect, Rect: ring}, SelectionColor, 1)
	}
	if rotated {
		r.PopTransform()
	}
}
