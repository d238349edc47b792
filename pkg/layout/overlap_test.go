package layout

import (
	"math"
	"testing"

	"github.com/harnesslab/loom/pkg/geom"
	"github.com/harnesslab/loom/pkg/scene"
)

func positionedAt(id string, pos geom.Vec3) scene.PositionedNode {
	return scene.PositionedNode{
		Node:     scene.Node{ID: id},
		Position: pos,
		Scale:    geom.One,
	}
}

func TestResolveSeparatesClosePair(t *testing.T) {
	nodes := []scene.PositionedNode{
		positionedAt("a", geom.Vec3{X: 1.0, Y: 0, Z: 0.5}),
		positionedAt("b", geom.Vec3{X: 1.02, Y: 0, Z: 0.5}),
	}

	out, passes := Resolve(nodes, 0.05)
	if passes == 0 {
		t.Fatal("expected at least one correcting pass")
	}

	dist := out[0].Position.Distance(out[1].Position)
	if math.Abs(dist-0.05) > 1e-12 {
		t.Errorf("post-resolution distance = %v, want 0.05", dist)
	}

	// Each node moves half the deficit (0.015) along X, in opposite directions.
	if math.Abs(out[0].Position.X-0.985) > 1e-12 {
		t.Errorf("node a x = %v, want 0.985", out[0].Position.X)
	}
	if math.Abs(out[1].Position.X-1.035) > 1e-12 {
		t.Errorf("node b x = %v, want 1.035", out[1].Position.X)
	}

	// Y and Z are untouched for a pure X violation.
	if out[0].Position.Y != 0 || out[0].Position.Z != 0.5 {
		t.Errorf("node a moved off axis: %v", out[0].Position)
	}
}

func TestResolveDoesNotMutateInput(t *testing.T) {
	orig := geom.Vec3{X: 1.0, Y: 0, Z: 0.5}
	nodes := []scene.PositionedNode{
		positionedAt("a", orig),
		positionedAt("b", geom.Vec3{X: 1.02, Y: 0, Z: 0.5}),
	}

	Resolve(nodes, 0.05)
	if nodes[0].Position != orig {
		t.Errorf("input mutated: %v", nodes[0].Position)
	}
}

func TestResolveLeavesSeparatedNodesAlone(t *testing.T) {
	nodes := []scene.PositionedNode{
		positionedAt("a", geom.Vec3{X: 0}),
		positionedAt("b", geom.Vec3{X: 1}),
		positionedAt("c", geom.Vec3{X: 2}),
	}

	out, passes := Resolve(nodes, 0.05)
	if passes != 0 {
		t.Errorf("passes = %d, want 0 for an already-valid layout", passes)
	}
	for i := range nodes {
		if out[i].Position != nodes[i].Position {
			t.Errorf("node %d moved without a violation", i)
		}
	}
}

func TestResolveCoincidentNodesUntouched(t *testing.T) {
	p := geom.Vec3{X: 1, Y: 1, Z: 1}
	nodes := []scene.PositionedNode{
		positionedAt("a", p),
		positionedAt("b", p),
	}

	out, _ := Resolve(nodes, 0.05)
	if out[0].Position != p || out[1].Position != p {
		t.Errorf("coincident nodes must not be separated: %v / %v", out[0].Position, out[1].Position)
	}

	// The residual violation stays observable.
	if got := Violations(out, 0.05); len(got) != 1 {
		t.Errorf("Violations = %v, want the coincident pair", got)
	}
}

func TestResolveThreeNodeChain(t *testing.T) {
	// Three nodes packed along X inside one minDistance; multiple passes
	// should spread them close to the minimum. Corrections interact within a
	// pass, so convergence is geometric: allow a 1% residual.
	nodes := []scene.PositionedNode{
		positionedAt("a", geom.Vec3{X: 0.00}),
		positionedAt("b", geom.Vec3{X: 0.01}),
		positionedAt("c", geom.Vec3{X: 0.02}),
	}

	out, _ := Resolve(nodes, 0.05)
	if got := Violations(out, 0.05*0.99); len(got) != 0 {
		t.Errorf("residual violations after resolve: %v", got)
	}
}

func TestResolveDefaultMinDistance(t *testing.T) {
	nodes := []scene.PositionedNode{
		positionedAt("a", geom.Vec3{X: 0}),
		positionedAt("b", geom.Vec3{X: 0.01}),
	}

	out, _ := Resolve(nodes, 0)
	dist := out[0].Position.Distance(out[1].Position)
	if math.Abs(dist-DefaultMinDistance) > 1e-12 {
		t.Errorf("distance = %v, want default %v", dist, DefaultMinDistance)
	}
}
