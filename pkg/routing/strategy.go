// Package routing computes 3D wire routes between positioned harness nodes:
// a shape strategy per edge, the polyline for that strategy, and rendering
// attributes derived from the wire's physical properties.
//
// Like pkg/layout, everything here is a pure function of its inputs.
package routing

import "github.com/harnesslab/loom/pkg/geom"

// Strategy identifies one of the route-shape algorithms.
type Strategy string

const (
	// StrategyDirect is a straight segment between the endpoints.
	StrategyDirect Strategy = "direct"

	// StrategyCorner lifts the wire over the higher endpoint via a single
	// elevated midpoint.
	StrategyCorner Strategy = "corner"

	// StrategySpline is a sampled cubic Bézier with a gentle lateral bow.
	StrategySpline Strategy = "spline"
)

const (
	// directMaxDistance is the endpoint distance below which a wire is
	// routed as a straight segment.
	directMaxDistance = 0.3

	// cornerMinHeightDiff is the Z difference above which a non-short wire
	// is routed over a corner.
	cornerMinHeightDiff = 0.2
)

// SelectStrategy picks the route shape for a wire between two endpoints.
//
// The checks run in a fixed order and the first match wins: distance before
// height, so a short-but-steep wire is still direct.
func SelectStrategy(from, to geom.Vec3) Strategy {
	if from.Distance(to) < directMaxDistance {
		return StrategyDirect
	}
	dz := from.Z - to.Z
	if dz < 0 {
		dz = -dz
	}
	if dz > cornerMinHeightDiff {
		return StrategyCorner
	}
	return StrategySpline
}
