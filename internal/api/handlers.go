package api

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/harnesslab/loom/pkg/errors"
	"github.com/harnesslab/loom/pkg/pipeline"
	"github.com/harnesslab/loom/pkg/scene"
)

// =============================================================================
// Response Envelope
// =============================================================================

// envelope is the standard response wrapper for all API endpoints.
type envelope struct {
	Success  bool      `json:"success"`
	Data     any       `json:"data,omitempty"`
	Metadata any       `json:"metadata,omitempty"`
	Error    *apiError `json:"error,omitempty"`
}

// apiError is the structured error body for failed requests.
type apiError struct {
	Code       string                `json:"code"`
	Message    string                `json:"message"`
	Violations []apperrors.Violation `json:"violations,omitempty"`
}

// =============================================================================
// Request / Response Payloads
// =============================================================================

// positionRequest is the body of POST /v1/layout/position.
type positionRequest struct {
	Scene   scene.Scene      `json:"scene"`
	Options pipeline.Options `json:"options"`
}

// positionMetadata extends pipeline metadata with request bookkeeping and
// the warning-level side effects of positioning.
type positionMetadata struct {
	pipeline.PositionMetadata
	DroppedZones []string `json:"droppedZones,omitempty"`
	RequestID    string   `json:"requestId"`
	CacheHit     bool     `json:"cacheHit"`
}

// routeRequest is the body of POST /v1/layout/route.
type routeRequest struct {
	Scene   scene.PositionedScene `json:"scene"`
	Options pipeline.Options      `json:"options"`
}

// routeMetadata extends pipeline metadata with request bookkeeping and the
// warning-level side effects of routing.
type routeMetadata struct {
	pipeline.RouteMetadata
	SkippedEdges []string `json:"skippedEdges,omitempty"`
	RequestID    string   `json:"requestId"`
	CacheHit     bool     `json:"cacheHit"`
}

// previewRequest is the body of POST /v1/layout/preview.
type previewRequest struct {
	Scene   scene.PositionedScene `json:"scene"`
	Routes  []scene.Route         `json:"routes"`
	Options pipeline.Options      `json:"options"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handlePosition(w http.ResponseWriter, r *http.Request) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, &apiError{
			Code:    string(apperrors.ErrCodeInvalidInput),
			Message: "request body is not valid JSON",
		})
		return
	}
	req.Options.Logger = s.logger

	result, hit, err := s.runner.PositionWithCacheInfo(r.Context(), req.Scene, req.Options)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.logger.Info("positioned scene",
		"request_id", RequestID(r.Context()),
		"nodes", len(result.Nodes),
		"dropped_zones", len(result.DroppedZones),
		"cache_hit", hit)

	s.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    result.Nodes,
		Metadata: positionMetadata{
			PositionMetadata: result.Metadata,
			DroppedZones:     result.DroppedZones,
			RequestID:        RequestID(r.Context()),
			CacheHit:         hit,
		},
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req routeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, &apiError{
			Code:    string(apperrors.ErrCodeInvalidInput),
			Message: "request body is not valid JSON",
		})
		return
	}
	req.Options.Logger = s.logger

	result, hit, err := s.runner.RouteWithCacheInfo(r.Context(), req.Scene, req.Options)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.logger.Info("routed edges",
		"request_id", RequestID(r.Context()),
		"routes", len(result.Routes),
		"skipped_edges", len(result.SkippedEdges),
		"cache_hit", hit)

	s.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Data:    result.Routes,
		Metadata: routeMetadata{
			RouteMetadata: result.Metadata,
			SkippedEdges:  result.SkippedEdges,
			RequestID:     RequestID(r.Context()),
			CacheHit:      hit,
		},
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, &apiError{
			Code:    string(apperrors.ErrCodeInvalidInput),
			Message: "request body is not valid JSON",
		})
		return
	}
	req.Options.Logger = s.logger

	svg, hit, err := s.runner.PreviewWithCacheInfo(r.Context(), req.Scene, req.Routes, req.Options)
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}

	s.logger.Info("rendered preview",
		"request_id", RequestID(r.Context()),
		"bytes", len(svg),
		"cache_hit", hit)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

// =============================================================================
// Error Mapping
// =============================================================================

// writeFailure maps pipeline errors to envelope error responses.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := apperrors.AsValidation(err); ok {
		s.writeError(w, r, http.StatusBadRequest, &apiError{
			Code:       string(apperrors.ErrCodeInvalidInput),
			Message:    "request payload failed validation",
			Violations: ve.Violations,
		})
		return
	}

	status := http.StatusInternalServerError
	code := apperrors.GetCode(err)
	switch code {
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidScene,
		apperrors.ErrCodeInvalidZone, apperrors.ErrCodeInvalidEdge:
		status = http.StatusBadRequest
	case apperrors.ErrCodeNotFound, apperrors.ErrCodeNodeNotFound,
		apperrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case "":
		code = apperrors.ErrCodeInternal
	}

	s.logger.Error("request failed",
		"request_id", RequestID(r.Context()),
		"path", r.URL.Path,
		"error", err)

	s.writeError(w, r, status, &apiError{
		Code:    string(code),
		Message: apperrors.UserMessage(err),
	})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, apiErr *apiError) {
	s.writeJSON(w, status, envelope{Success: false, Error: apiErr})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encode response", "error", err)
	}
}
