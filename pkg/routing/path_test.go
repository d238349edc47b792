package routing

import (
	"math"
	"testing"

	"github.com/harnesslab/loom/pkg/geom"
)

func TestDirectPath(t *testing.T) {
	from := geom.Vec3{X: 0.1, Y: 0.2, Z: 0.3}
	to := geom.Vec3{X: 0.2, Y: 0.2, Z: 0.3}

	path := GeneratePath(StrategyDirect, from, to)
	if len(path) != 2 {
		t.Fatalf("direct path has %d points, want 2", len(path))
	}
	if path[0] != from || path[1] != to {
		t.Errorf("direct path endpoints %v..%v, want %v..%v", path[0], path[1], from, to)
	}
}

func TestCornerPath(t *testing.T) {
	from := geom.Vec3{X: 0, Y: 0, Z: 0}
	to := geom.Vec3{X: 1, Y: 1, Z: 1}

	path := GeneratePath(StrategyCorner, from, to)
	if len(path) != 3 {
		t.Fatalf("corner path has %d points, want 3", len(path))
	}
	if path[0] != from || path[2] != to {
		t.Errorf("corner path endpoints not exact: %v..%v", path[0], path[2])
	}

	mid := path[1]
	if mid.X != 0.5 || mid.Y != 0.5 {
		t.Errorf("corner midpoint xy = (%v,%v), want (0.5,0.5)", mid.X, mid.Y)
	}
	// Elevation is max(z)+0.1, so the corner clears both endpoints.
	if mid.Z != 1.1 {
		t.Errorf("corner midpoint z = %v, want 1.1", mid.Z)
	}
}

func TestCornerPathHigherFromEndpoint(t *testing.T) {
	from := geom.Vec3{Z: 0.8}
	to := geom.Vec3{X: 1, Z: 0.2}

	path := GeneratePath(StrategyCorner, from, to)
	if got := path[1].Z; got != 0.9 {
		t.Errorf("corner z = %v, want max(0.8,0.2)+0.1 = 0.9", got)
	}
}

func TestSplinePath(t *testing.T) {
	from := geom.Vec3{X: 0, Y: 0, Z: 0}
	to := geom.Vec3{X: 1, Y: 0, Z: 0.1}

	path := GeneratePath(StrategySpline, from, to)
	if len(path) != 7 {
		t.Fatalf("spline path has %d points, want 7", len(path))
	}
	if path[0] != from || path[6] != to {
		t.Errorf("spline endpoints not exact: %v..%v", path[0], path[6])
	}

	// Interior points must match direct Bézier evaluation of the same
	// control points.
	c1 := from.Lerp(to, 0.3)
	c1.Y += splineBowY
	c1.Z = from.Z + splineLiftZ
	c2 := from.Lerp(to, 0.7)
	c2.Y += splineBowY
	c2.Z = to.Z + splineLiftZ

	for i := 1; i < 6; i++ {
		want := geom.CubicBezier(from, c1, c2, to, float64(i)/6)
		if path[i].Distance(want) > 1e-12 {
			t.Errorf("spline point %d = %v, want %v", i, path[i], want)
		}
	}

	// The lateral bow pushes interior points to positive Y.
	for i := 1; i < 6; i++ {
		if path[i].Y <= 0 {
			t.Errorf("spline point %d has no lateral bow: %v", i, path[i])
		}
	}
}

func TestSplinePathMonotoneProgress(t *testing.T) {
	from := geom.Vec3{X: 0}
	to := geom.Vec3{X: 1, Z: 0.1}
	path := GeneratePath(StrategySpline, from, to)

	for i := 1; i < len(path); i++ {
		if path[i].X <= path[i-1].X {
			t.Errorf("spline X not monotone at %d: %v -> %v", i, path[i-1].X, path[i].X)
		}
	}
}

func TestGeneratePathFiniteOutput(t *testing.T) {
	from := geom.Vec3{X: -3.2, Y: 1.5, Z: 0.01}
	to := geom.Vec3{X: 2.9, Y: -1.4, Z: 1.2}

	for _, s := range []Strategy{StrategyDirect, StrategyCorner, StrategySpline} {
		path := GeneratePath(s, from, to)
		if len(path) < 2 {
			t.Errorf("%s: path has %d points", s, len(path))
		}
		for i, p := range path {
			if !p.IsFinite() {
				t.Errorf("%s: point %d not finite: %v", s, i, p)
			}
		}
		if path[0] != from || path[len(path)-1] != to {
			t.Errorf("%s: endpoints not preserved", s)
		}
	}
}

func TestSplineChordDistance(t *testing.T) {
	// Scenario: endpoints at distance 1.0 with height diff 0.1 select
	// spline; verify the constructed example matches the selector.
	from := geom.Vec3{X: 0, Z: 0}
	to := geom.Vec3{X: math.Sqrt(1 - 0.01), Z: 0.1}
	if d := from.Distance(to); math.Abs(d-1.0) > 1e-12 {
		t.Fatalf("test setup: distance = %v, want 1.0", d)
	}
	if got := SelectStrategy(from, to); got != StrategySpline {
		t.Errorf("strategy = %v, want spline", got)
	}
}
