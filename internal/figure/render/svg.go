// Package render рисует элементы холста в SVG и в растр.
package render

import (
	"fmt"
	"html"
	"image"
	"image/color"
	"strconv"
	"strings"

	"figuremaker/internal/figure/codec"
	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/geom"

	"github.com/gofiber/fiber/v3/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/svg"
)

// ============================================================
// SVG renderer
// ============================================================

// SVG реализует element.Renderer, собирая разметку SVG. Преобразования и
// обрезка превращаются во вложенные <g>; прямоугольники обрезки
// складываются в <defs>.
type SVG struct {
	body   strings.Builder
	defs   strings.Builder
	depth  int
	clipID int
	err    error
}

func NewSVG() *SVG {
	return &SVG{depth: 1}
}

// Err первая ошибка кодирования растра во время отрисовки.
func (r *SVG) Err() error {
	return r.err
}

// Document собирает итоговый документ заданного размера.
func (r *SVG) Document(width, height int) string {
	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		width, height, width, height))
	builder.WriteString("\n")
	if r.defs.Len() > 0 {
		builder.WriteString("  <defs>\n")
		builder.WriteString(r.defs.String())
		builder.WriteString("  </defs>\n")
	}
	builder.WriteString(r.body.String())
	builder.WriteString(`</svg>`)
	return builder.String()
}

func (r *SVG) line(s string) {
	r.body.WriteString(strings.Repeat("  ", r.depth))
	r.body.WriteString(s)
	r.body.WriteString("\n")
}

func (r *SVG) FillShape(s element.Shape, c color.RGBA) {
	r.line(shapeTag(s, paintAttrs(c, nil, 0)))
}

func (r *SVG) StrokeShape(s element.Shape, c color.RGBA, width float64) {
	r.line(shapeTag(s, paintAttrs(color.RGBA{}, &c, width)))
}

func (r *SVG) DrawImage(img image.Image, dst geom.Rect) {
	data, err := codec.EncodeRaster(img)
	if err != nil {
		if r.err == nil {
			r.err = err
		}
		log.Warnf("[RENDER] skipping image at %d,%d: %v", dst.X, dst.Y, err)
		return
	}
	r.line(fmt.Sprintf(`<image x="%d" y="%d" width="%d" height="%d" preserveAspectRatio="none" href="data:image/png;base64,%s" />`,
		dst.X, dst.Y, dst.W, dst.H, data))
}

func (r *SVG) DrawText(text string, font element.Font, c color.RGBA, x, y float64) {
	var attrs strings.Builder
	fmt.Fprintf(&attrs, `x="%s" y="%s" font-family="%s" font-size="%d"`,
		formatFloat(x), formatFloat(y), html.EscapeString(font.Family), font.Size)
	if font.Bold() {
		attrs.WriteString(` font-weight="bold"`)
	}
	if font.Italic() {
		attrs.WriteString(` font-style="italic"`)
	}
	attrs.WriteString(` fill="` + hex(c) + `"`)
	attrs.WriteString(opacity("fill-opacity", c))
	r.line(fmt.Sprintf(`<text %s xml:space="preserve">%s</text>`, attrs.String(), html.EscapeString(text)))
}

func (r *SVG) PushClipRect(rect geom.Rect) {
	r.clipID++
	id := "clip" + strconv.Itoa(r.clipID)
	fmt.Fprintf(&r.defs, `    <clipPath id="%s"><rect x="%d" y="%d" width="%d" height="%d" /></clipPath>`+"\n",
		id, rect.X, rect.Y, rect.W, rect.H)
	r.line(`<g clip-path="url(#` + id + `)">`)
	r.depth++
}

func (r *SVG) PopClip() {
	r.closeGroup()
}

func (r *SVG) PushTransform(m geom.Matrix) {
	var attr string
	if m.IsTranslation() {
		attr = "translate(" + formatFloat(m.E) + " " + formatFloat(m.F) + ")"
	} else {
		attr = "matrix(" + strings.Join([]string{
			formatFloat(m.A), formatFloat(m.B), formatFloat(m.C),
			formatFloat(m.D), formatFloat(m.E), formatFloat(m.F),
		}, " ") + ")"
	}
	r.line(`<g transform="` + attr + `">`)
	r.depth++
}

func (r *SVG) PopTransform() {
	r.closeGroup()
}

func (r *SVG) closeGroup() {
	if r.depth <= 1 {
		return
	}
	r.depth--
	r.line(`</g>`)
}

// ============================================================
// Shapes
// ============================================================

func shapeTag(s element.Shape, paint string) string {
	switch s.Kind {
	case element.ShapeEllipse:
		rx, ry := s.Rect.W/2, s.Rect.H/2
		return fmt.Sprintf(`<ellipse cx="%s" cy="%s" rx="%s" ry="%s"%s />`,
			formatFloat(s.Rect.X+rx), formatFloat(s.Rect.Y+ry), formatFloat(rx), formatFloat(ry), paint)
	case element.ShapePath:
		if s.Path == nil || s.Path.Empty() {
			return "<!-- empty path -->"
		}
		return fmt.Sprintf(`<path d="%s"%s />`, codec.FormatPath(s.Path), paint)
	default:
		return fmt.Sprintf(`<rect x="%s" y="%s" width="%s" height="%s"%s />`,
			formatFloat(s.Rect.X), formatFloat(s.Rect.Y), formatFloat(s.Rect.W), formatFloat(s.Rect.H), paint)
	}
}

// paintAttrs атрибуты краски: только заливка при stroke == nil, иначе только обводка.
func paintAttrs(fill color.RGBA, stroke *color.RGBA, width float64) string {
	if stroke == nil {
		return ` fill="` + hex(fill) + `"` + opacity("fill-opacity", fill)
	}
	return ` fill="none" stroke="` + hex(*stroke) + `" stroke-width="` + formatFloat(width) + `"` + opacity("stroke-opacity", *stroke)
}

func hex(c color.RGBA) string {
	return codec.FormatColor(&c)
}

func opacity(attr string, c color.RGBA) string {
	if c.A == 0xff {
		return ""
	}
	return ` ` + attr + `="` + strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64) + `"`
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(val, 'f', -1, 64)
}

// ============================================================
// Export
// ============================================================

// SVGOptions параметры экспорта в SVG.
type SVGOptions struct {
	// Width и Height размер холста; ноль означает размер по содержимому.
	Width, Height int
	Minify        bool
}

// ExportSVG рисует элементы снизу вверх в SVG-документ. Рамки выделения
// в экспорт не попадают.
func ExportSVG(elems []element.Element, opts SVGOptions) (string, error) {
	r := NewSVG()
	withoutSelection(elems, func() {
		element.DrawAll(r, elems)
	})
	if r.Err() != nil {
		return "", r.Err()
	}

	w, h := canvasSize(elems, opts.Width, opts.Height)
	out := r.Document(w, h)
	if !opts.Minify {
		return out, nil
	}

	m := minify.New()
	m.AddFunc("image/svg+xml", svg.Minify)
	minified, err := m.String("image/svg+xml", out)
	if err != nil {
		return "", fmt.Errorf("minify svg: %w", err)
	}
	return minified, nil
}
