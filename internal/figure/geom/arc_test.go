package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Расчёты опираются на IEEE-754 double с округлением к ближайшему чётному;
// FMA не используется, поэтому допуск 1e-9 покрывает различия платформ.
const tol = 1e-9

func assertPoint(t *testing.T, want, got Point) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, tol, "x")
	assert.InDelta(t, want.Y, got.Y, tol, "y")
}

func TestArcToBezierDegenerate(t *testing.T) {
	t.Run("same endpoints", func(t *testing.T) {
		assert.Empty(t, ArcToBezier(5, 5, 10, 10, 0, false, true, 5, 5))
	})

	for _, tc := range []struct {
		name   string
		rx, ry float64
	}{
		{"zero rx", 0, 10},
		{"zero ry", 10, 0},
		{"both zero", 0, 0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			segs := ArcToBezier(0, 0, tc.rx, tc.ry, 30, true, false, 20, 15)
			require.Len(t, segs, 1)
			assert.Equal(t, LineTo, segs[0].Op)
			assert.Equal(t, Pt(20, 15), segs[0].End())
		})
	}
}

func TestArcToBezierQuarterCircle(t *testing.T) {
	segs := ArcToBezier(10, 0, 10, 10, 0, false, true, 0, 10)
	require.Len(t, segs, 1)

	k := 10 * kappa
	assert.Equal(t, CubicTo, segs[0].Op)
	assertPoint(t, Pt(10, k), segs[0].Pts[0])
	assertPoint(t, Pt(k, 10), segs[0].Pts[1])
	assert.Equal(t, Pt(0, 10), segs[0].Pts[2])
}

func TestArcCenter(t *testing.T) {
	t.Run("small arc", func(t *testing.T) {
		arc, ok := ArcCenter(10, 0, 10, 10, 0, false, true, 0, 10)
		require.True(t, ok)
		assert.InDelta(t, 0, arc.Cx, tol)
		assert.InDelta(t, 0, arc.Cy, tol)
		assert.InDelta(t, 0, arc.Theta1, tol)
		assert.InDelta(t, math.Pi/2, arc.DTheta, tol)
	})

	t.Run("large arc", func(t *testing.T) {
		arc, ok := ArcCenter(10, 0, 10, 10, 0, true, true, 0, 10)
		require.True(t, ok)
		assert.InDelta(t, 10, arc.Cx, tol)
		assert.InDelta(t, 10, arc.Cy, tol)
		assert.InDelta(t, 3*math.Pi/2, arc.DTheta, tol)
		assert.Len(t, ArcToBezier(10, 0, 10, 10, 0, true, true, 0, 10), 3)
	})

	t.Run("radii correction", func(t *testing.T) {
		arc, ok := ArcCenter(0, 0, 1, 1, 0, false, true, 10, 0)
		require.True(t, ok)
		assert.InDelta(t, 5, arc.Rx, tol)
		assert.InDelta(t, 5, arc.Ry, tol)
		assert.InDelta(t, 5, arc.Cx, tol)
		assert.InDelta(t, 0, arc.Cy, tol)
		assert.InDelta(t, math.Pi, math.Abs(arc.DTheta), tol)

		segs := ArcToBezier(0, 0, 1, 1, 0, false, true, 10, 0)
		require.Len(t, segs, 2)
		mid := segs[0].End()
		assert.InDelta(t, 5, math.Hypot(mid.X-5, mid.Y), tol)
	})

	t.Run("negative radii", func(t *testing.T) {
		a, ok := ArcCenter(10, 0, -10, -10, 0, false, true, 0, 10)
		require.True(t, ok)
		b, _ := ArcCenter(10, 0, 10, 10, 0, false, true, 0, 10)
		assert.Equal(t, b, a)
	})
}

func TestArcSweepsAreSupplementary(t *testing.T) {
	for _, tc := range []struct {
		name           string
		rx, ry, angle  float64
		x1, y1, x2, y2 float64
	}{
		{"circle", 10, 10, 0, 0, 0, 10, 0},
		{"ellipse", 20, 10, 0, 0, 0, 15, 5},
		{"rotated", 30, 12, 45, 3, 4, 20, 18},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a, ok := ArcCenter(tc.x1, tc.y1, tc.rx, tc.ry, tc.angle, false, true, tc.x2, tc.y2)
			require.True(t, ok)
			b, ok := ArcCenter(tc.x1, tc.y1, tc.rx, tc.ry, tc.angle, true, false, tc.x2, tc.y2)
			require.True(t, ok)

			assert.Greater(t, a.DTheta, 0.0)
			assert.Less(t, b.DTheta, 0.0)
			assert.InDelta(t, 2*math.Pi, math.Abs(a.DTheta)+math.Abs(b.DTheta), tol)
		})
	}
}

func TestArcToBezierSegmentsStayOnEllipse(t *testing.T) {
	const rx, ry, angle = 30.0, 12.0, 45.0
	arc, ok := ArcCenter(3, 4, rx, ry, angle, true, true, 20, 18)
	require.True(t, ok)
	segs := ArcToBezier(3, 4, rx, ry, angle, true, true, 20, 18)
	require.NotEmpty(t, segs)
	assert.LessOrEqual(t, math.Abs(arc.DTheta)/float64(len(segs)), math.Pi/2+tol)

	inv := Rotate(-angle)
	for _, seg := range segs[:len(segs)-1] {
		local := inv.Apply(seg.End().Sub(Pt(arc.Cx, arc.Cy)))
		v := (local.X*local.X)/(arc.Rx*arc.Rx) + (local.Y*local.Y)/(arc.Ry*arc.Ry)
		assert.InDelta(t, 1, v, 1e-6)
	}
	assert.Equal(t, Pt(20, 18), segs[len(segs)-1].End())
}

func TestPathArcToAdvancesCursor(t *testing.T) {
	p := NewPath()
	p.MoveTo(10, 0)
	p.ArcTo(10, 10, 0, false, true, 0, 10)
	assert.Equal(t, Pt(0, 10), p.Current())
	assert.Equal(t, 2, p.Len())
}
