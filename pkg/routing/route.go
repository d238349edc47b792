package routing

import (
	"github.com/harnesslab/loom/pkg/geom"
	"github.com/harnesslab/loom/pkg/scene"
)

// Result carries the computed routes plus the warning-level side effects of
// routing. Edges referencing a node id absent from the positioned set are
// skipped and listed in SkippedEdges; they contribute no route.
type Result struct {
	Routes       []scene.Route
	SkippedEdges []string
}

// RouteEdges computes a route for every edge whose endpoints are both
// present in the positioned node set. Routes come out in edge input order.
func RouteEdges(nodes []scene.PositionedNode, edges []scene.Edge) Result {
	positions := make(map[string]geom.Vec3, len(nodes))
	for _, n := range nodes {
		positions[n.ID] = n.Position
	}

	var result Result
	for _, edge := range edges {
		from, okFrom := positions[edge.From]
		to, okTo := positions[edge.To]
		if !okFrom || !okTo {
			result.SkippedEdges = append(result.SkippedEdges, edge.ID)
			continue
		}
		result.Routes = append(result.Routes, RouteEdge(edge, from, to))
	}
	return result
}

// RouteEdge computes the route for a single edge between known endpoint
// positions: strategy selection, path generation, and styling.
func RouteEdge(edge scene.Edge, from, to geom.Vec3) scene.Route {
	path := GeneratePath(SelectStrategy(from, to), from, to)
	style := ResolveStyle(edge)
	return scene.Route{
		EdgeID:   edge.ID,
		Path:     path,
		Color:    style.Color,
		Radius:   style.Radius,
		Segments: len(path) - 1,
		Material: scene.MaterialCopper,
	}
}
