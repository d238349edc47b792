package layout

import (
	"slices"

	"github.com/harnesslab/loom/pkg/scene"
)

const (
	// DefaultMinDistance is the minimum tolerated separation between two
	// positioned nodes, in scene units.
	DefaultMinDistance = 0.05

	// maxResolvePasses bounds the relaxation loop. Pairs still closer than
	// minDistance after the final pass are a tolerated residual, not an
	// error.
	maxResolvePasses = 10
)

// Resolve pushes pairs of nodes apart until every pair is at least
// minDistance apart or the pass cap is reached. It returns a new slice
// with new positions; the input is not modified. The second return value is
// the number of passes that applied at least one correction.
//
// Each violating pair moves half the deficit in opposite directions along
// the line between the two nodes, so an isolated pair lands exactly
// minDistance apart. Nodes at the exact same position produce a zero
// direction vector and are left untouched: exact coincidences are not
// resolvable by this algorithm.
//
// Cost is O(n²) per pass; callers should keep node counts in the hundreds.
func Resolve(nodes []scene.PositionedNode, minDistance float64) ([]scene.PositionedNode, int) {
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	out := slices.Clone(nodes)

	passes := 0
	for range maxResolvePasses {
		corrections := 0
		for i := 0; i < len(out); i++ {
			for j := i + 1; j < len(out); j++ {
				dist := out[i].Position.Distance(out[j].Position)
				if dist >= minDistance {
					continue
				}
				dir := out[j].Position.Sub(out[i].Position).Normalize()
				if dir.Length() == 0 {
					// Coincident pair, no direction to push along.
					continue
				}
				shift := (minDistance - dist) / 2
				out[i].Position = out[i].Position.Sub(dir.Scale(shift))
				out[j].Position = out[j].Position.Add(dir.Scale(shift))
				corrections++
			}
		}
		if corrections == 0 {
			break
		}
		passes++
	}
	return out, passes
}

// Violations returns the indices of node pairs still closer than minDistance.
// Useful for callers that need to report residual overlaps after Resolve.
func Violations(nodes []scene.PositionedNode, minDistance float64) [][2]int {
	if minDistance <= 0 {
		minDistance = DefaultMinDistance
	}
	var pairs [][2]int
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			if nodes[i].Position.Distance(nodes[j].Position) < minDistance {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}
