package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"

	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/geom"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// flattenSteps число отрезков на одну кривую при растеризации.
const flattenSteps = 16

// ============================================================
// Raster renderer
// ============================================================

// Raster реализует element.Renderer поверх *image.RGBA. Заливки и обводки
// растеризуются векторно со сглаживанием; текст рисуется растровым
// шрифтом, масштабированным до размера Font.Size.
type Raster struct {
	dst   *image.RGBA
	xform []geom.Matrix
	clips []image.Rectangle
	face  font.Face
}

// NewRaster создаёт холст w×h, залитый фоном bg.
func NewRaster(w, h int, bg color.Color) *Raster {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Raster{
		dst:   dst,
		xform: []geom.Matrix{geom.Identity},
		clips: []image.Rectangle{dst.Bounds()},
		face:  basicfont.Face7x13,
	}
}

func (r *Raster) Image() *image.RGBA {
	return r.dst
}

func (r *Raster) matrix() geom.Matrix {
	return r.xform[len(r.xform)-1]
}

func (r *Raster) clip() image.Rectangle {
	return r.clips[len(r.clips)-1]
}

func (r *Raster) PushTransform(m geom.Matrix) {
	r.xform = append(r.xform, r.matrix().Mul(m))
}

func (r *Raster) PopTransform() {
	if len(r.xform) > 1 {
		r.xform = r.xform[:len(r.xform)-1]
	}
}

// PushClipRect сужает область рисования до образа rect; при повороте
// используется его ограничивающий прямоугольник.
func (r *Raster) PushClipRect(rect geom.Rect) {
	fr := geom.FRect{X: float64(rect.X), Y: float64(rect.Y), W: float64(rect.W), H: float64(rect.H)}
	dev := r.matrix().TransformRect(fr).Snap()
	ir := image.Rect(dev.X, dev.Y, dev.X+dev.W, dev.Y+dev.H)
	r.clips = append(r.clips, r.clip().Intersect(ir))
}

func (r *Raster) PopClip() {
	if len(r.clips) > 1 {
		r.clips = r.clips[:len(r.clips)-1]
	}
}

// ============================================================
// Fill & stroke
// ============================================================

func shapePath(s element.Shape) *geom.Path {
	switch s.Kind {
	case element.ShapeEllipse:
		return geom.EllipsePath(s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H)
	case element.ShapePath:
		if s.Path == nil {
			return geom.NewPath()
		}
		return s.Path
	default:
		return geom.RectPath(s.Rect.X, s.Rect.Y, s.Rect.W, s.Rect.H)
	}
}

// rasterizer маска в системе координат текущей области обрезки.
type rasterizer struct {
	z      *vector.Rasterizer
	origin image.Point
	empty  bool
}

func (r *Raster) newRasterizer() *rasterizer {
	c := r.clip()
	if c.Empty() {
		return nil
	}
	return &rasterizer{z: vector.NewRasterizer(c.Dx(), c.Dy()), origin: c.Min, empty: true}
}

func (z *rasterizer) polygon(pts []geom.Point) {
	if len(pts) < 3 {
		return
	}
	ox, oy := float32(z.origin.X), float32(z.origin.Y)
	z.z.MoveTo(float32(pts[0].X)-ox, float32(pts[0].Y)-oy)
	for _, p := range pts[1:] {
		z.z.LineTo(float32(p.X)-ox, float32(p.Y)-oy)
	}
	z.z.ClosePath()
	z.empty = false
}

func (r *Raster) paint(z *rasterizer, c color.RGBA) {
	if z.empty {
		return
	}
	z.z.DrawOp = draw.Over
	z.z.Draw(r.dst, r.clip(), image.NewUniform(c), image.Point{})
}

func (r *Raster) FillShape(s element.Shape, c color.RGBA) {
	z := r.newRasterizer()
	if z == nil {
		return
	}
	polys, _ := shapePath(s).Transform(r.matrix()).Flatten(flattenSteps)
	for _, poly := range polys {
		z.polygon(poly)
	}
	r.paint(z, c)
}

// StrokeShape обводит ломаную четырёхугольниками с квадратными концами;
// все четырёхугольники имеют одну ориентацию, поэтому перекрытия не
// вычитаются друг из друга.
func (r *Raster) StrokeShape(s element.Shape, c color.RGBA, width float64) {
	if width <= 0 {
		return
	}
	z := r.newRasterizer()
	if z == nil {
		return
	}
	half := math.Max(width, 1) / 2
	polys, closed := shapePath(s).Transform(r.matrix()).Flatten(flattenSteps)
	for i, poly := range polys {
		n := len(poly)
		for j := 0; j+1 < n; j++ {
			z.polygon(segmentQuad(poly[j], poly[j+1], half))
		}
		if closed[i] && n > 2 && !poly[0].Equals(poly[n-1]) {
			z.polygon(segmentQuad(poly[n-1], poly[0], half))
		}
	}
	r.paint(z, c)
}

func segmentQuad(a, b geom.Point, half float64) []geom.Point {
	dx, dy := b.X-a.X, b.Y-a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return nil
	}
	ux, uy := dx/l*half, dy/l*half
	nx, ny := -uy, ux
	a = geom.Pt(a.X-ux, a.Y-uy)
	b = geom.Pt(b.X+ux, b.Y+uy)
	return []geom.Point{
		{X: a.X + nx, Y: a.Y + ny},
		{X: b.X + nx, Y: b.Y + ny},
		{X: b.X - nx, Y: b.Y - ny},
		{X: a.X - nx, Y: a.Y - ny},
	}
}

// ============================================================
// Images & text
// ============================================================

// transformOnto переносит src на холст через m с билинейной интерполяцией,
// не выходя за текущую область обрезки.
func (r *Raster) transformOnto(m geom.Matrix, src image.Image, sr image.Rectangle) {
	c := r.clip()
	if c.Empty() {
		return
	}
	dst := r.dst.SubImage(c).(*image.RGBA)
	s2d := f64.Aff3{m.A, m.C, m.E, m.B, m.D, m.F}
	draw.ApproxBiLinear.Transform(dst, s2d, src, sr, draw.Over, nil)
}

func (r *Raster) DrawImage(img image.Image, dst geom.Rect) {
	sb := img.Bounds()
	if sb.Empty() || dst.W <= 0 || dst.H <= 0 {
		return
	}
	scale := geom.Matrix{
		A: float64(dst.W) / float64(sb.Dx()),
		D: float64(dst.H) / float64(sb.Dy()),
		E: float64(dst.X) - float64(sb.Min.X)*float64(dst.W)/float64(sb.Dx()),
		F: float64(dst.Y) - float64(sb.Min.Y)*float64(dst.H)/float64(sb.Dy()),
	}
	r.transformOnto(r.matrix().Mul(scale), img, sb)
}

// DrawText рисует строку во вспомогательный слой растровым шрифтом и
// переносит слой на холст с масштабом Font.Size к высоте шрифта.
func (r *Raster) DrawText(text string, f element.Font, c color.RGBA, x, y float64) {
	if text == "" || f.Size <= 0 {
		return
	}
	metrics := r.face.Metrics()
	ascent := metrics.Ascent.Ceil()
	height := ascent + metrics.Descent.Ceil()
	width := font.MeasureString(r.face, text).Ceil()
	if width <= 0 || height <= 0 {
		return
	}

	layer := image.NewRGBA(image.Rect(0, 0, width, height))
	d := &font.Drawer{
		Dst:  layer,
		Src:  image.NewUniform(c),
		Face: r.face,
		Dot:  fixed.P(0, ascent),
	}
	d.DrawString(text)

	k := float64(f.Size) / float64(metrics.Height.Ceil())
	place := geom.Matrix{A: k, D: k, E: x, F: y - float64(ascent)*k}
	r.transformOnto(r.matrix().Mul(place), layer, layer.Bounds())
}

// ============================================================
// Export
// ============================================================

// RasterOptions параметры растрового экспорта.
type RasterOptions struct {
	// Width и Height размер холста; ноль означает размер по содержимому.
	Width, Height int
	Background    color.Color
}

// Rasterize рисует элементы снизу вверх без рамок выделения.
func Rasterize(elems []element.Element, opts RasterOptions) *image.RGBA {
	w, h := canvasSize(elems, opts.Width, opts.Height)
	bg := opts.Background
	if bg == nil {
		bg = element.White
	}
	r := NewRaster(w, h, bg)
	withoutSelection(elems, func() {
		element.DrawAll(r, elems)
	})
	return r.Image()
}

// RasterPNG рисует элементы и кодирует холст в PNG.
func RasterPNG(elems []element.Element, opts RasterOptions) ([]byte, error) {
	img := Rasterize(elems, opts)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
