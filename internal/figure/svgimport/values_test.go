package svgimport

import (
	"image/color"
	"strings"
	"testing"

	"figuremaker/internal/figure/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLength(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"12", 12, false},
		{" 12.5px ", 12.5, false},
		{"50%", 50, false},
		{"-3e1", -30, false},
		{"abc", 0, true},
		{"12 px", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseLength(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrBadNumber)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTranslate(t *testing.T) {
	tests := []struct {
		in     string
		dx, dy int
	}{
		{"", 0, 0},
		{"translate(10,20)", 10, 20},
		{"translate(7)", 7, 0},
		{"translate(1.9, -2.7)", 1, -2},
		{"rotate(30) translate(3 4)", 3, 4},
		{"translate(10,20) scale(2) translate(5,5)", 15, 25},
		{"translate(10,20", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			dx, dy := parseTranslate(tt.in)
			assert.Equal(t, tt.dx, dx)
			assert.Equal(t, tt.dy, dy)
		})
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want *color.RGBA
		ok   bool
	}{
		{"", nil, true},
		{"none", nil, true},
		{"NONE", nil, true},
		{"#ff0000", &color.RGBA{R: 255, A: 255}, true},
		{"#0F0", &color.RGBA{G: 255, A: 255}, true},
		{"rgb(1, 2, 3)", &color.RGBA{R: 1, G: 2, B: 3, A: 255}, true},
		{"rgb(100%,0%,20%)", &color.RGBA{R: 255, B: 51, A: 255}, true},
		{"navy", &color.RGBA{B: 128, A: 255}, true},
		{"#12", &color.RGBA{A: 255}, false},
		{"hsl(0,0%,0%)", &color.RGBA{A: 255}, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := parseColor(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStyle(t *testing.T) {
	props := parseStyle("fill: red; Stroke:#000;stroke-width:2")
	assert.Equal(t, "red", props["fill"])
	assert.Equal(t, "#000", props["stroke"])
	assert.Equal(t, "2", props["stroke-width"])
	assert.Empty(t, parseStyle("  "))
}

func TestParseDOM(t *testing.T) {
	root, err := ParseDOM(strings.NewReader(`<svg width="10">
  <text id="t">a &amp; b<![CDATA[ <c> ]]></text>
  <svg:g xmlns:svg="x" fill="&quot;q&quot;"/>
</svg>`))
	require.NoError(t, err)
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "10", root.Attr("width"))
	assert.False(t, root.HasAttr("height"))

	var elems []*Node
	for _, c := range root.Children {
		if c.Tag != "" {
			elems = append(elems, c)
		}
	}
	require.Len(t, elems, 2)
	assert.Equal(t, "a & b <c> ", elems[0].TextContent())
	assert.Equal(t, "g", elems[1].Tag)
	assert.Equal(t, `"q"`, elems[1].Attr("fill"))
}

func TestParsePathData(t *testing.T) {
	tests := []struct {
		name string
		d    string
		ops  string
		end  geom.Point
	}{
		{"absolute", "M10 10 L20 10 L20 20 Z", "MLLZ", geom.Pt(10, 10)},
		{"relative", "m10 10 l10 0 l0 10", "MLL", geom.Pt(20, 20)},
		{"implicit lineto", "M0 0 10 0 10 10", "MLL", geom.Pt(10, 10)},
		{"implicit relative lineto", "m5 5 5 0", "ML", geom.Pt(10, 5)},
		{"horizontal vertical", "M1 1 H9 V7 h1 v1", "MLLLL", geom.Pt(10, 8)},
		{"compact numbers", "M0,0L-5-5.5.5.5", "MLL", geom.Pt(0.5, 0.5)},
		{"curves", "M0 0 Q5 5 10 0 c1 1 2 2 3 0", "MQC", geom.Pt(13, 0)},
		{"glued arc flags", "M0 0 a5 5 0 0110 0", "MCC", geom.Pt(10, 0)},
		{"degenerate arc", "M0 0 A0 5 0 0 1 10 0", "ML", geom.Pt(10, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, warnings, err := parsePathData(tt.d)
			require.NoError(t, err)
			assert.Empty(t, warnings)

			var ops strings.Builder
			for _, s := range p.Segments() {
				ops.WriteString(s.Op.String())
			}
			assert.Equal(t, tt.ops, ops.String())
			assert.InDelta(t, tt.end.X, p.Current().X, 1e-9)
			assert.InDelta(t, tt.end.Y, p.Current().Y, 1e-9)
		})
	}
}

func TestParsePathDataSkipsEmptyCommands(t *testing.T) {
	tests := []struct {
		name     string
		d        string
		ops      string
		warnings int
	}{
		{"lineto before close", "M0,0 L10,10 L Z", "MLZ", 1},
		{"trailing command", "M0 0 L5 5 C", "ML", 1},
		{"two in a row", "M0 0 H V L5 5", "ML", 2},
		{"close needs none", "M0 0 L5 5 Z z", "MLZZ", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, warnings, err := parsePathData(tt.d)
			require.NoError(t, err)
			assert.Len(t, warnings, tt.warnings)

			var ops strings.Builder
			for _, s := range p.Segments() {
				ops.WriteString(s.Op.String())
			}
			assert.Equal(t, tt.ops, ops.String())
		})
	}
}

func TestParsePathDataErrors(t *testing.T) {
	tests := []struct {
		name string
		d    string
		err  error
	}{
		{"smooth cubic", "M0 0 S1 1 2 2", ErrSmoothCurve},
		{"smooth quad", "M0 0 t1 1", ErrSmoothCurve},
		{"truncated", "M0 0 L5", ErrBadNumber},
		{"bad flag", "M0 0 A5 5 0 2 1 10 0", ErrBadNumber},
		{"empty", "", ErrMissingAttr},
		{"only unknown", "X 1 2", ErrMissingAttr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parsePathData(tt.d)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
