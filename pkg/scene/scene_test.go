package scene

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/harnesslab/loom/pkg/geom"
)

func TestZoneOrDefault(t *testing.T) {
	tests := []struct {
		name string
		node Node
		want string
	}{
		{"explicit zone", Node{ID: "relay", Zone: "engine"}, "engine"},
		{"missing zone", Node{ID: "relay"}, DefaultZone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.ZoneOrDefault(); got != tt.want {
				t.Errorf("ZoneOrDefault() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSceneRoundTrip(t *testing.T) {
	in := Scene{
		Nodes: []Node{
			{ID: "ecu", Zone: "engine", Meta: map[string]any{"part_no": "A-100"}},
			{ID: "fuse_box"},
		},
		Edges: []Edge{
			{ID: "w1", From: "ecu", To: "fuse_box", Properties: WireProperties{Color: "red", Gauge: "6mm²"}},
		},
		CoordinateSystem: CoordinateSystem{Zones: map[string]Zone{
			"engine": {Name: "engine", Center: geom.Vec3{X: 1.8, Z: 0.3}, Size: geom.Vec3{X: 0.8, Y: 1.6, Z: 0.6}},
		}},
		VehicleSignature: "vin:test",
	}

	data, err := MarshalScene(in)
	if err != nil {
		t.Fatalf("MarshalScene: %v", err)
	}

	out, err := ReadScene(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadScene: %v", err)
	}

	if len(out.Nodes) != 2 || len(out.Edges) != 1 {
		t.Fatalf("round trip lost entities: %d nodes, %d edges", len(out.Nodes), len(out.Edges))
	}
	if out.Nodes[0].Meta["part_no"] != "A-100" {
		t.Errorf("caller metadata not preserved: %v", out.Nodes[0].Meta)
	}
	if out.Edges[0].Properties.Gauge != "6mm²" {
		t.Errorf("wire gauge not preserved: %q", out.Edges[0].Properties.Gauge)
	}
	if z, ok := out.CoordinateSystem.Zone("engine"); !ok || z.Center.X != 1.8 {
		t.Errorf("zone not preserved: %+v ok=%v", z, ok)
	}
}

func TestPositionedFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "positioned.json")

	in := PositionedScene{
		Nodes: []PositionedNode{
			{
				Node:     Node{ID: "ecu", Zone: "engine"},
				Position: geom.Vec3{X: 1.8, Y: 0, Z: 0.3},
				Scale:    geom.One,
			},
		},
		VehicleSignature: "vin:test",
	}

	if err := WritePositionedFile(in, path); err != nil {
		t.Fatalf("WritePositionedFile: %v", err)
	}

	out, err := ReadPositionedFile(path)
	if err != nil {
		t.Fatalf("ReadPositionedFile: %v", err)
	}
	if len(out.Nodes) != 1 || out.Nodes[0].Position != in.Nodes[0].Position {
		t.Errorf("positioned round trip mismatch: %+v", out.Nodes)
	}
}

func TestRoutesFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "routes.json")

	in := []Route{
		{
			EdgeID:   "w1",
			Path:     []geom.Vec3{{X: 0}, {X: 1}},
			Color:    "#FF0000",
			Radius:   0.002,
			Segments: 1,
			Material: MaterialCopper,
		},
	}

	if err := WriteRoutesFile(in, path); err != nil {
		t.Fatalf("WriteRoutesFile: %v", err)
	}
	out, err := ReadRoutesFile(path)
	if err != nil {
		t.Fatalf("ReadRoutesFile: %v", err)
	}
	if len(out) != 1 || out[0].EdgeID != "w1" || out[0].Material != MaterialCopper {
		t.Errorf("routes round trip mismatch: %+v", out)
	}
}

func TestCopyMeta(t *testing.T) {
	if CopyMeta(nil) != nil {
		t.Error("CopyMeta(nil) should be nil")
	}

	orig := map[string]any{"k": "v"}
	cp := CopyMeta(orig)
	cp["k"] = "changed"
	if orig["k"] != "v" {
		t.Error("CopyMeta must not share storage with the original")
	}
}

func TestVecJSONShape(t *testing.T) {
	data, err := json.Marshal(geom.Vec3{X: 1, Y: 2, Z: 3})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"x":1,"y":2,"z":3}`
	if string(data) != want {
		t.Errorf("vec JSON = %s, want %s", data, want)
	}
}
