// Package svgimport переводит SVG-документ в элементы холста.
package svgimport

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"figuremaker/internal/figure/element"

	"github.com/gofiber/fiber/v3/log"
)

// ============================================================
// Importer
// ============================================================

// Importer обходит дерево SVG в глубину за один проход. Ошибка в отдельном
// элементе не прерывает импорт: элемент пропускается, предупреждение
// сохраняется в Warnings и пишется в лог.
type Importer struct {
	warnings []string
}

func NewImporter() *Importer {
	return &Importer{}
}

// Warnings предупреждения последнего импорта.
func (im *Importer) Warnings() []string {
	return im.warnings
}

// Parse импортирует SVG из потока.
func Parse(r io.Reader) ([]element.Element, error) {
	return NewImporter().Parse(r)
}

// ParseFile импортирует SVG-файл.
func ParseFile(path string) ([]element.Element, error) {
	return NewImporter().ParseFile(path)
}

func (im *Importer) ParseFile(path string) ([]element.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open svg: %w", err)
	}
	defer f.Close()
	return im.Parse(f)
}

func (im *Importer) Parse(r io.Reader) ([]element.Element, error) {
	im.warnings = nil
	root, err := ParseDOM(r)
	if err != nil {
		return nil, err
	}
	if root.Tag != "svg" {
		return nil, fmt.Errorf("%w: root is <%s>, want <svg>", ErrNoRoot, root.Tag)
	}
	elems := im.walk(root, 0, 0)
	log.Infof("[SVG] imported %d elements (%d warnings)", len(elems), len(im.warnings))
	return elems, nil
}

func (im *Importer) warnf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	im.warnings = append(im.warnings, msg)
	log.Warnf("[SVG] %s", msg)
}

// walk разбирает узел со смещением родителя; собственный translate узла
// прибавляется к смещению до разбора.
func (im *Importer) walk(n *Node, offX, offY int) []element.Element {
	dx, dy := parseTranslate(n.Attr("transform"))
	offX += dx
	offY += dy

	switch n.Tag {
	case "svg":
		var out []element.Element
		for _, c := range n.Children {
			out = append(out, im.walk(c, offX, offY)...)
		}
		return out
	case "g":
		if g := im.group(n, offX, offY); g != nil {
			return []element.Element{g}
		}
		return nil
	case "rect", "circle", "ellipse", "path", "text":
		e, err := im.leaf(n, offX, offY)
		if err != nil {
			im.warnf("skipping <%s%s>: %v", n.Tag, idSuffix(n), err)
			return nil
		}
		if e == nil {
			return nil
		}
		return []element.Element{e}
	}
	return nil
}

func idSuffix(n *Node) string {
	if id := n.Attr("id"); id != "" {
		return fmt.Sprintf(" id=%q", id)
	}
	return ""
}

// group собирает детей во временный список; пустая группа отбрасывается.
func (im *Importer) group(n *Node, offX, offY int) *element.Group {
	var children []element.Element
	for _, c := range n.Children {
		children = append(children, im.walk(c, offX, offY)...)
	}
	if len(children) == 0 {
		return nil
	}
	g := element.NewGroup(children...)
	g.GroupID = n.Attr("id")
	g.ClippingMask = n.Attr("clip-path") != ""
	return g
}

func (im *Importer) leaf(n *Node, offX, offY int) (element.Element, error) {
	switch n.Tag {
	case "rect":
		return im.rect(n, offX, offY)
	case "circle":
		return im.circle(n, offX, offY)
	case "ellipse":
		return im.ellipse(n, offX, offY)
	case "path":
		return im.path(n, offX, offY)
	case "text":
		return im.text(n, offX, offY)
	}
	return nil, nil
}

// ============================================================
// Shapes
// ============================================================

func (im *Importer) rect(n *Node, offX, offY int) (element.Element, error) {
	x, err := lengthAttr(n, "x", 0)
	if err != nil {
		return nil, err
	}
	y, err := lengthAttr(n, "y", 0)
	if err != nil {
		return nil, err
	}
	w, err := requiredLength(n, "width")
	if err != nil {
		return nil, err
	}
	h, err := requiredLength(n, "height")
	if err != nil {
		return nil, err
	}
	paint, err := im.paint(n)
	if err != nil {
		return nil, err
	}
	return element.NewRect(int(x)+offX, int(y)+offY, int(w), int(h), paint), nil
}

func (im *Importer) circle(n *Node, offX, offY int) (element.Element, error) {
	cx, err := lengthAttr(n, "cx", 0)
	if err != nil {
		return nil, err
	}
	cy, err := lengthAttr(n, "cy", 0)
	if err != nil {
		return nil, err
	}
	r, err := requiredLength(n, "r")
	if err != nil {
		return nil, err
	}
	paint, err := im.paint(n)
	if err != nil {
		return nil, err
	}
	return element.NewCircle(int(cx-r)+offX, int(cy-r)+offY, int(2*r), int(2*r), paint), nil
}

// ellipse отображается на овал по описанному прямоугольнику.
func (im *Importer) ellipse(n *Node, offX, offY int) (element.Element, error) {
	cx, err := lengthAttr(n, "cx", 0)
	if err != nil {
		return nil, err
	}
	cy, err := lengthAttr(n, "cy", 0)
	if err != nil {
		return nil, err
	}
	rx, err := requiredLength(n, "rx")
	if err != nil {
		return nil, err
	}
	ry, err := requiredLength(n, "ry")
	if err != nil {
		return nil, err
	}
	paint, err := im.paint(n)
	if err != nil {
		return nil, err
	}
	return element.NewCircle(int(cx-rx)+offX, int(cy-ry)+offY, int(2*rx), int(2*ry), paint), nil
}

// path строит контур в абсолютных координатах и переносит его в начало
// собственных границ.
func (im *Importer) path(n *Node, offX, offY int) (element.Element, error) {
	d := n.Attr("d")
	if d == "" {
		return nil, fmt.Errorf("%w: d", ErrMissingAttr)
	}
	p, warnings, err := parsePathData(d)
	for _, w := range warnings {
		im.warnf("<path%s>: %s", idSuffix(n), w)
	}
	if err != nil {
		return nil, err
	}
	paint, err := im.paint(n)
	if err != nil {
		return nil, err
	}
	e := element.PathFromAbsolute(p, paint)
	e.Translate(offX, offY)
	return e, nil
}

// ============================================================
// Text
// ============================================================

// text оценивает размеры по числу символов и размеру шрифта; y в SVG
// задаёт базовую линию, поэтому верх блока находится на fontSize выше.
func (im *Importer) text(n *Node, offX, offY int) (element.Element, error) {
	content := strings.TrimSpace(n.TextContent())
	if content == "" {
		return nil, nil
	}
	x, err := lengthAttr(n, "x", 0)
	if err != nil {
		return nil, err
	}
	y, err := lengthAttr(n, "y", 0)
	if err != nil {
		return nil, err
	}

	font := element.DefaultFont
	if family := fontFamily(n.Attr("font-family")); family != "" {
		font.Family = family
	}
	if n.Attr("font-size") != "" {
		size, err := lengthAttr(n, "font-size", 0)
		if err != nil {
			return nil, err
		}
		font.Size = int(size)
	}
	if w := n.Attr("font-weight"); w == "bold" || w == "700" {
		font.Style |= element.Bold
	}
	if n.Attr("font-style") == "italic" {
		font.Style |= element.Italic
	}

	fill := im.color(n.Attr("fill"))
	if v, ok := parseStyle(n.Attr("style"))["fill"]; ok {
		fill = im.color(v)
	}
	if fill == nil {
		fill = &color.RGBA{A: 0xff}
	}

	w := utf8.RuneCountInString(content) * font.Size / 2
	h := font.Size + 10
	t := element.NewText(int(x)+offX, int(y)+offY-font.Size, w, h, content, font)
	t.Color = fill
	return t, nil
}

// fontFamily берёт первое семейство из списка и снимает кавычки.
func fontFamily(s string) string {
	first, _, _ := strings.Cut(s, ",")
	return strings.Trim(strings.TrimSpace(first), `"'`)
}

// ============================================================
// Paint
// ============================================================

// paint применяет атрибуты fill, stroke, stroke-width, затем переопределения
// из style. Отсутствующая или "none" краска означает её отсутствие.
func (im *Importer) paint(n *Node) (element.Paint, error) {
	p := element.Paint{
		Fill:        im.color(n.Attr("fill")),
		Stroke:      im.color(n.Attr("stroke")),
		StrokeWidth: 1,
	}
	sw, err := lengthAttr(n, "stroke-width", 1)
	if err != nil {
		return p, err
	}
	p.StrokeWidth = sw

	style := parseStyle(n.Attr("style"))
	if v, ok := style["fill"]; ok {
		p.Fill = im.color(v)
	}
	if v, ok := style["stroke"]; ok {
		p.Stroke = im.color(v)
	}
	if v, ok := style["stroke-width"]; ok {
		sw, err := parseLength(v)
		if err != nil {
			return p, fmt.Errorf("style stroke-width: %w", err)
		}
		p.StrokeWidth = sw
	}
	if p.StrokeWidth < 0 {
		p.StrokeWidth = 0
	}
	return p, nil
}

// color разбирает цвет; нераспознанное значение даёт чёрный с предупреждением.
func (im *Importer) color(s string) *color.RGBA {
	c, ok := parseColor(s)
	if !ok {
		im.warnf("unrecognized color %q, using black", s)
	}
	return c
}
