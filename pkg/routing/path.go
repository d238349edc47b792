package routing

import "github.com/harnesslab/loom/pkg/geom"

const (
	// cornerLift is how far the corner midpoint sits above the higher
	// endpoint.
	cornerLift = 0.1

	// splineSegments is the Bézier sample count; the path has
	// splineSegments+1 points including both endpoints.
	splineSegments = 6

	// splineBowY is the lateral bump applied to both control points.
	splineBowY = 0.05

	// splineLiftZ is how far each control point sits above its nearer
	// endpoint.
	splineLiftZ = 0.02
)

// GeneratePath builds the polyline for a wire using the given strategy.
// The first and last points always equal from and to exactly.
func GeneratePath(strategy Strategy, from, to geom.Vec3) []geom.Vec3 {
	switch strategy {
	case StrategyCorner:
		return cornerPath(from, to)
	case StrategySpline:
		return splinePath(from, to)
	default:
		return directPath(from, to)
	}
}

// directPath is the two-point straight segment.
func directPath(from, to geom.Vec3) []geom.Vec3 {
	return []geom.Vec3{from, to}
}

// cornerPath routes over a midpoint above the higher endpoint. The midpoint
// elevation is max(from.Z, to.Z)+cornerLift so the corner always clears both
// ends regardless of which is higher.
func cornerPath(from, to geom.Vec3) []geom.Vec3 {
	mid := geom.Vec3{
		X: (from.X + to.X) / 2,
		Y: (from.Y + to.Y) / 2,
		Z: max(from.Z, to.Z) + cornerLift,
	}
	return []geom.Vec3{from, mid, to}
}

// splinePath samples a cubic Bézier between the endpoints. Control points
// sit 30% and 70% along the chord, bowed on Y and lifted slightly above
// their nearer endpoint.
func splinePath(from, to geom.Vec3) []geom.Vec3 {
	c1 := from.Lerp(to, 0.3)
	c1.Y += splineBowY
	c1.Z = from.Z + splineLiftZ

	c2 := from.Lerp(to, 0.7)
	c2.Y += splineBowY
	c2.Z = to.Z + splineLiftZ

	path := make([]geom.Vec3, 0, splineSegments+1)
	path = append(path, from)
	for i := 1; i < splineSegments; i++ {
		t := float64(i) / splineSegments
		path = append(path, geom.CubicBezier(from, c1, c2, to, t))
	}
	return append(path, to)
}
