package svgimport

import (
	"image/color"
	"strings"
	"testing"

	"figuremaker/internal/figure/element"
	"figuremaker/internal/figure/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func importString(t *testing.T, src string) ([]element.Element, []string) {
	t.Helper()
	im := NewImporter()
	elems, err := im.Parse(strings.NewReader(src))
	require.NoError(t, err)
	return elems, im.Warnings()
}

func TestImportRect(t *testing.T) {
	elems, warnings := importString(t, `<svg xmlns="http://www.w3.org/2000/svg">
  <rect x="10" y="20" width="100" height="50" fill="#ff0000" stroke="none"/>
</svg>`)
	require.Len(t, elems, 1)
	assert.Empty(t, warnings)

	r, ok := elems[0].(*element.Rect)
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: 10, Y: 20, W: 100, H: 50}, r.Bounds())
	assert.Equal(t, &color.RGBA{R: 255, A: 255}, r.Fill)
	assert.Nil(t, r.Stroke)
	assert.Equal(t, 1.0, r.StrokeWidth)
}

func TestImportCircleAndEllipse(t *testing.T) {
	elems, _ := importString(t, `<svg>
  <circle cx="50" cy="40" r="10" fill="blue"/>
  <ellipse cx="100" cy="100" rx="30" ry="10" stroke="black" stroke-width="3"/>
</svg>`)
	require.Len(t, elems, 2)

	c := elems[0].(*element.Circle)
	assert.Equal(t, geom.Rect{X: 40, Y: 30, W: 20, H: 20}, c.Bounds())
	assert.Equal(t, &color.RGBA{B: 255, A: 255}, c.Fill)

	e := elems[1].(*element.Circle)
	assert.Equal(t, geom.Rect{X: 70, Y: 90, W: 60, H: 20}, e.Bounds())
	assert.Nil(t, e.Fill)
	assert.Equal(t, 3.0, e.StrokeWidth)
}

func TestImportNestedGroup(t *testing.T) {
	elems, _ := importString(t, `<svg>
  <g id="g1" transform="translate(10,5)">
    <rect x="0" y="0" width="10" height="10"/>
    <circle cx="50" cy="50" r="10"/>
  </g>
</svg>`)
	require.Len(t, elems, 1)

	g, ok := elems[0].(*element.Group)
	require.True(t, ok)
	assert.Equal(t, "g1", g.GroupID)
	assert.False(t, g.ClippingMask)
	assert.Equal(t, element.KindGroup, g.Kind())
	require.Equal(t, 2, g.Len())
	assert.Equal(t, geom.Rect{X: 10, Y: 5, W: 10, H: 10}, g.Children()[0].Bounds())
	assert.Equal(t, geom.Rect{X: 50, Y: 45, W: 20, H: 20}, g.Children()[1].Bounds())
	assert.Equal(t, geom.Rect{X: 10, Y: 5, W: 60, H: 60}, g.Bounds())
}

func TestImportTransformsAccumulate(t *testing.T) {
	elems, _ := importString(t, `<svg transform="translate(1,1)">
  <g transform="translate(10 20)">
    <g transform="rotate(45) translate(5,5)">
      <rect x="0" y="0" width="4" height="4" transform="translate(2,0)"/>
    </g>
  </g>
</svg>`)
	require.Len(t, elems, 1)
	outer := elems[0].(*element.Group)
	inner := outer.Children()[0].(*element.Group)
	assert.Equal(t, geom.Rect{X: 18, Y: 26, W: 4, H: 4}, inner.Children()[0].Bounds())
}

func TestImportClippingGroup(t *testing.T) {
	elems, _ := importString(t, `<svg>
  <g id="masked" clip-path="url(#c)"><rect width="10" height="10"/></g>
  <g id="empty"><title>nothing drawable</title></g>
</svg>`)
	require.Len(t, elems, 1)
	g := elems[0].(*element.Group)
	assert.True(t, g.ClippingMask)
	assert.Equal(t, element.KindClippingMask, g.Kind())
}

func TestImportPath(t *testing.T) {
	elems, warnings := importString(t, `<svg>
  <path d="M10 10 L30 10 L30 40 Z" transform="translate(5,5)" stroke="#00f" fill="none"/>
</svg>`)
	require.Len(t, elems, 1)
	assert.Empty(t, warnings)

	p := elems[0].(*element.Path)
	assert.Equal(t, geom.Rect{X: 15, Y: 15, W: 20, H: 30}, p.Bounds())
	assert.Equal(t, geom.Point{X: 0, Y: 0}, p.Path.Segments()[0].End())
	assert.Nil(t, p.Fill)
	assert.Equal(t, &color.RGBA{B: 255, A: 255}, p.Stroke)
}

func TestImportPathArc(t *testing.T) {
	elems, _ := importString(t, `<svg><path d="M0 50 A50 50 0 0 1 100 50"/></svg>`)
	require.Len(t, elems, 1)
	p := elems[0].(*element.Path)
	b := p.Bounds()
	assert.InDelta(t, 0, b.X, 1)
	assert.InDelta(t, 0, b.Y, 1)
	assert.InDelta(t, 100, b.W, 2)
	assert.InDelta(t, 50, b.H, 2)
}

func TestImportRejectsSmoothCurves(t *testing.T) {
	elems, warnings := importString(t, `<svg>
  <path id="p1" d="M0 0 C10 10 20 10 30 0 S50 -10 60 0"/>
  <rect width="5" height="5"/>
</svg>`)
	require.Len(t, elems, 1)
	assert.Equal(t, element.KindRect, elems[0].Kind())
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `id="p1"`)
	assert.Contains(t, warnings[0], ErrSmoothCurve.Error())
}

func TestImportUnknownPathCommand(t *testing.T) {
	elems, warnings := importString(t, `<svg><path d="M0 0 L10 0 X 5 5 L10 10"/></svg>`)
	require.Len(t, elems, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "unknown path command")
	assert.Equal(t, 3, elems[0].(*element.Path).Path.Len())
}

func TestImportPathCommandWithoutArguments(t *testing.T) {
	elems, warnings := importString(t, `<svg><path id="p" d="M0,0 L10,10 L Z" stroke="#000"/></svg>`)
	require.Len(t, elems, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "without arguments")

	p := elems[0].(*element.Path)
	assert.Equal(t, 3, p.Path.Len())
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 10, H: 10}, p.Bounds())
}

func TestImportSkipsMalformedElements(t *testing.T) {
	tests := []struct {
		name string
		elem string
	}{
		{"bad number", `<rect x="abc" width="10" height="10"/>`},
		{"missing width", `<rect x="1" height="10"/>`},
		{"missing radius", `<circle cx="1" cy="1"/>`},
		{"missing path data", `<path fill="red"/>`},
		{"bad path number", `<path d="M 10 L 5 5"/>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elems, warnings := importString(t, "<svg>"+tt.elem+`<rect width="1" height="2"/></svg>`)
			require.Len(t, elems, 1)
			assert.Equal(t, geom.Rect{W: 1, H: 2}, elems[0].Bounds())
			assert.Len(t, warnings, 1)
		})
	}
}

func TestImportStyleOverrides(t *testing.T) {
	elems, warnings := importString(t, `<svg>
  <rect width="10" height="10" fill="rgb(0,128,255)" stroke="red" style="fill: blue; stroke: none; stroke-width: 4"/>
  <rect width="10" height="10" fill="bogus"/>
</svg>`)
	require.Len(t, elems, 2)

	styled := elems[0].(*element.Rect)
	assert.Equal(t, &color.RGBA{B: 255, A: 255}, styled.Fill)
	assert.Nil(t, styled.Stroke)
	assert.Equal(t, 4.0, styled.StrokeWidth)

	fallback := elems[1].(*element.Rect)
	assert.Equal(t, &color.RGBA{A: 255}, fallback.Fill)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "bogus")
}

func TestImportText(t *testing.T) {
	elems, _ := importString(t, `<svg>
  <text x="10" y="30" font-family="'Times New Roman', serif" font-size="20" font-weight="bold" font-style="italic">  Hi <tspan>there</tspan> </text>
  <text x="0" y="14">   </text>
  <text x="0" y="14" style="fill:#010203">x</text>
</svg>`)
	require.Len(t, elems, 2)

	txt := elems[0].(*element.Text)
	assert.Equal(t, "Hi there", txt.Text)
	assert.Equal(t, element.Font{Family: "Times New Roman", Size: 20, Style: element.Bold | element.Italic}, txt.Font)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, W: 80, H: 30}, txt.Bounds())
	assert.Equal(t, &color.RGBA{A: 255}, txt.Color)

	styled := elems[1].(*element.Text)
	assert.Equal(t, element.DefaultFont, styled.Font)
	assert.Equal(t, geom.Rect{X: 0, Y: 0, W: 7, H: 24}, styled.Bounds())
	assert.Equal(t, &color.RGBA{R: 1, G: 2, B: 3, A: 255}, styled.Color)
}

func TestImportRootErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ``},
		{"comment only", `<!-- nothing -->`},
		{"html root", `<html><rect width="1" height="1"/></html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			assert.ErrorIs(t, err, ErrNoRoot)
		})
	}
}

func TestImportIgnoresUnknownTags(t *testing.T) {
	elems, warnings := importString(t, `<?xml version="1.0"?>
<!DOCTYPE svg>
<svg:svg xmlns:svg="http://www.w3.org/2000/svg">
  <defs><clipPath id="c"><rect width="1" height="1"/></clipPath></defs>
  <svg:polygon points="0,0 1,1"/>
  <svg:rect width="3" height="3"/>
</svg:svg>`)
	assert.Empty(t, warnings)
	require.Len(t, elems, 1)
	assert.Equal(t, geom.Rect{W: 3, H: 3}, elems[0].Bounds())
}
