// Package scene defines the canonical serialization format for harness
// scenes: nodes, zones, edges, positioned nodes, and routed wires.
// Used for API payloads, CLI files, and caching.
//
// The format is human-readable and designed for round-trip fidelity:
// import → transform → export → re-import produces identical results.
package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Scene is the input payload for the positioning operation.
type Scene struct {
	Nodes            []Node           `json:"nodes"`
	Edges            []Edge           `json:"edges,omitempty"`
	CoordinateSystem CoordinateSystem `json:"coordinateSystem"`
	VehicleSignature string           `json:"vehicleSignature,omitempty"`
}

// PositionedScene is the output of positioning and the input of routing.
type PositionedScene struct {
	Nodes            []PositionedNode `json:"nodes"`
	Edges            []Edge           `json:"edges,omitempty"`
	CoordinateSystem CoordinateSystem `json:"coordinateSystem"`
	VehicleSignature string           `json:"vehicleSignature,omitempty"`
}

// =============================================================================
// Serialization API
// =============================================================================

// MarshalScene serializes a Scene to pretty-printed JSON bytes.
func MarshalScene(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// ReadScene decodes a JSON scene from an io.Reader.
func ReadScene(r io.Reader) (Scene, error) {
	var s Scene
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Scene{}, fmt.Errorf("decode scene: %w", err)
	}
	return s, nil
}

// ReadSceneFile reads a JSON scene file.
func ReadSceneFile(path string) (Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return Scene{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadScene(f)
}

// WritePositionedFile writes a positioned scene to a JSON file.
// The file is created with 0644 permissions.
func WritePositionedFile(s PositionedScene, path string) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadPositionedFile reads a positioned scene from a JSON file.
func ReadPositionedFile(path string) (PositionedScene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PositionedScene{}, fmt.Errorf("read %s: %w", path, err)
	}
	var s PositionedScene
	if err := json.Unmarshal(data, &s); err != nil {
		return PositionedScene{}, fmt.Errorf("decode positioned scene: %w", err)
	}
	return s, nil
}

// WriteRoutesFile writes computed routes to a JSON file.
func WriteRoutesFile(routes []Route, path string) error {
	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadRoutesFile reads computed routes from a JSON file.
func ReadRoutesFile(path string) ([]Route, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var routes []Route
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("decode routes: %w", err)
	}
	return routes, nil
}
