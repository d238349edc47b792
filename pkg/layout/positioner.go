// Package layout computes 3D placements for harness nodes inside their
// assigned zones and resolves pairwise overlaps between placed nodes.
//
// The package is stateless: every function is a pure computation over its
// inputs and returns fresh values. Callers own all data before and after.
package layout

import (
	"math/rand/v2"
	"slices"

	"github.com/harnesslab/loom/pkg/geom"
	"github.com/harnesslab/loom/pkg/scene"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// DefaultSeed is the default jitter seed for reproducibility.
	DefaultSeed = uint64(42)

	// cornersMaxNodes is the largest group placed with the corners strategy.
	cornersMaxNodes = 4

	// smallGridMaxNodes is the largest group placed on the fixed 3×3 grid.
	smallGridMaxNodes = 9

	// smallGridSide is the grid side used for groups of 5–9 nodes.
	smallGridSide = 3

	// gridJitterZ is the Z jitter amplitude as a fraction of the zone depth.
	gridJitterZ = 0.05

	// gridJitterRotZ is the rotation.z jitter amplitude in radians.
	gridJitterRotZ = 0.1
)

// =============================================================================
// Positioning
// =============================================================================

// Result carries the positioned nodes plus the warning-level side effects of
// positioning. Zones referenced by nodes but absent from the coordinate
// system drop their whole group from the output; DroppedZones makes that
// observable so callers can compare output length against input length.
type Result struct {
	Nodes        []scene.PositionedNode
	DroppedZones []string
}

// Position computes a 3D transform for every node whose zone exists in the
// coordinate system. Nodes without a zone tag fall into scene.DefaultZone.
//
// Placement strategy is selected per zone group by size:
//
//	1 node      zone center
//	2–4 nodes   fixed quarter-extent corner offsets
//	5–9 nodes   3×3 grid
//	>9 nodes    ceil(sqrt(n)) grid
//
// Grid placements receive a small Z and rotation jitter drawn from a PCG
// source seeded with seed, so identical requests produce identical output.
// Output is ordered by zone name, then input order within each zone.
func Position(nodes []scene.Node, cs scene.CoordinateSystem, seed uint64) Result {
	groups := make(map[string][]scene.Node)
	for _, n := range nodes {
		zone := n.ZoneOrDefault()
		groups[zone] = append(groups[zone], n)
	}

	zoneNames := make([]string, 0, len(groups))
	for name := range groups {
		zoneNames = append(zoneNames, name)
	}
	slices.Sort(zoneNames)

	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	var result Result
	for _, name := range zoneNames {
		zone, ok := cs.Zone(name)
		if !ok {
			result.DroppedZones = append(result.DroppedZones, name)
			continue
		}
		result.Nodes = append(result.Nodes, placeGroup(groups[name], zone, rng)...)
	}
	return result
}

// placeGroup positions one zone's nodes with the strategy for its size.
func placeGroup(nodes []scene.Node, zone scene.Zone, rng *rand.Rand) []scene.PositionedNode {
	out := make([]scene.PositionedNode, len(nodes))
	switch n := len(nodes); {
	case n == 1:
		out[0] = positioned(nodes[0], zone.Center, geom.Zero)
	case n <= cornersMaxNodes:
		for i, node := range nodes {
			out[i] = positioned(node, cornerOffset(zone, i), geom.Zero)
		}
	case n <= smallGridMaxNodes:
		for i, node := range nodes {
			out[i] = gridPositioned(node, zone, i, smallGridSide, rng)
		}
	default:
		grid := ceilSqrt(n)
		for i, node := range nodes {
			out[i] = gridPositioned(node, zone, i, grid, rng)
		}
	}
	return out
}

// cornerOffset returns the i-th corner position for a zone. Corners are at
// quarter extents from the center, ordered front-left, front-right,
// back-left, back-right (+X forward, +Y left). The index wraps modulo 4;
// the corners branch only ever sees up to 4 nodes.
func cornerOffset(zone scene.Zone, i int) geom.Vec3 {
	qx := zone.Size.X / 4
	qy := zone.Size.Y / 4
	corners := [4]geom.Vec3{
		{X: qx, Y: qy},   // front-left
		{X: qx, Y: -qy},  // front-right
		{X: -qx, Y: qy},  // back-left
		{X: -qx, Y: -qy}, // back-right
	}
	offset := corners[i%4]
	return geom.Vec3{
		X: zone.Center.X + offset.X,
		Y: zone.Center.Y + offset.Y,
		Z: zone.Center.Z,
	}
}

// gridPositioned places the node at row-major grid index i inside the zone.
// Steps divide each extent into grid+1 intervals so border cells keep a
// margin from the zone faces.
func gridPositioned(node scene.Node, zone scene.Zone, i, grid int, rng *rand.Rand) scene.PositionedNode {
	stepX := zone.Size.X / float64(grid+1)
	stepY := zone.Size.Y / float64(grid+1)
	row := i / grid
	col := i % grid

	pos := geom.Vec3{
		X: zone.Center.X - zone.Size.X/2 + float64(col+1)*stepX,
		Y: zone.Center.Y - zone.Size.Y/2 + float64(row+1)*stepY,
		Z: zone.Center.Z + jitter(rng, gridJitterZ*zone.Size.Z),
	}
	rot := geom.Vec3{Z: jitter(rng, gridJitterRotZ)}
	return positioned(node, pos, rot)
}

// positioned builds a fresh PositionedNode, copying caller metadata so the
// input node is never shared or mutated.
func positioned(node scene.Node, pos, rot geom.Vec3) scene.PositionedNode {
	node.Meta = scene.CopyMeta(node.Meta)
	return scene.PositionedNode{
		Node:     node,
		Position: pos,
		Rotation: rot,
		Scale:    geom.One,
	}
}

// jitter draws a value uniformly from [-amplitude, amplitude].
func jitter(rng *rand.Rand, amplitude float64) float64 {
	return (rng.Float64()*2 - 1) * amplitude
}

// ceilSqrt returns the smallest integer g with g*g >= n.
func ceilSqrt(n int) int {
	g := 1
	for g*g < n {
		g++
	}
	return g
}
