package codec

import (
	"image/color"
	"testing"

	"figuremaker/internal/figure/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPath(t *testing.T) {
	assert.Equal(t, "M 0,0 L 10.5,0 Q 12,3 10.5,6.25 C 8,8 2,8 0,6.25 Z", FormatPath(samplePath()))
	assert.Equal(t, "", FormatPath(geom.NewPath()))
}

func TestParsePathRoundTrip(t *testing.T) {
	p := samplePath()
	p.MoveTo(-1.125, 1e-7)
	p.LineTo(0.1+0.2, 1.0/3)

	got := ParsePath(FormatPath(p))
	assert.True(t, p.Equal(got))
}

func TestParsePathLegacyAndBroken(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []geom.Segment
	}{
		{
			name: "glued letters",
			in:   "M1.0,2.0 L3.0,4.0 Q5.0,6.0 7.0,8.0 Z",
			want: []geom.Segment{
				{Op: geom.MoveTo, Pts: [3]geom.Point{{X: 1, Y: 2}}},
				{Op: geom.LineTo, Pts: [3]geom.Point{{X: 3, Y: 4}}},
				{Op: geom.QuadTo, Pts: [3]geom.Point{{X: 5, Y: 6}, {X: 7, Y: 8}}},
				{Op: geom.Close},
			},
		},
		{
			name: "bad segment skipped",
			in:   "M 0,0 L 1,abc L 2,2 X 1,1 C 1,1 2,2 Z",
			want: []geom.Segment{
				{Op: geom.MoveTo},
				{Op: geom.LineTo, Pts: [3]geom.Point{{X: 2, Y: 2}}},
				{Op: geom.Close},
			},
		},
		{
			name: "empty",
			in:   "   ",
			want: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParsePath(tc.in).Segments()
			require.Len(t, got, len(tc.want))
			for i := range tc.want {
				assert.Equal(t, tc.want[i], got[i])
			}
		})
	}
}

func TestColors(t *testing.T) {
	assert.Equal(t, "none", FormatColor(nil))
	assert.Equal(t, "#0a0b0c", FormatColor(&color.RGBA{R: 10, G: 11, B: 12, A: 255}))

	tests := []struct {
		in   string
		want *color.RGBA
	}{
		{"none", nil},
		{"", nil},
		{"#FF8000", &color.RGBA{R: 255, G: 128, A: 255}},
		{"#f80", &color.RGBA{R: 255, G: 136, A: 255}},
		{"garbage", &color.RGBA{A: 255}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseColor(tc.in))
		})
	}
}
