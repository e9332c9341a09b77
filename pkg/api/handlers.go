package api

import (
	"context"
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"time"

	"map_query/pkg/routing"
)

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	router routing.Router
	stats  StatsResponse
}

// NewHandlers creates handlers with the given router.
func NewHandlers(router routing.Router, stats StatsResponse) *Handlers {
	return &Handlers{
		router: router,
		stats:  stats,
	}
}

// HandleRoute handles POST /api/v1/route.
func (h *Handlers) HandleRoute(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer func() { routeDuration.Observe(time.Since(start).Seconds()) }()

	// Enforce Content-Type.
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		h.reject(w, http.StatusBadRequest, "invalid_request", "")
		return
	}

	// Parse request.
	var req RouteRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1024)).Decode(&req); err != nil {
		h.reject(w, http.StatusBadRequest, "invalid_request", "")
		return
	}
	if req.Source == nil {
		h.reject(w, http.StatusBadRequest, "invalid_request", "source")
		return
	}
	if req.Destination == nil {
		h.reject(w, http.StatusBadRequest, "invalid_request", "destination")
		return
	}

	// Route.
	result, err := h.router.Route(r.Context(), *req.Source, *req.Destination)
	if err != nil {
		switch {
		case errors.Is(err, routing.ErrInvalidVertex):
			h.reject(w, http.StatusBadRequest, "invalid_vertex", "")
		case errors.Is(err, routing.ErrNoRoute):
			routeRequests.WithLabelValues(resultNoRoute).Inc()
			writeError(w, http.StatusNotFound, "no_route_found", "")
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			routeRequests.WithLabelValues(resultUnavailable).Inc()
			writeError(w, http.StatusServiceUnavailable, "request_timeout", "")
		default:
			routeRequests.WithLabelValues(resultError).Inc()
			writeError(w, http.StatusInternalServerError, "internal_error", "")
		}
		return
	}

	routeRequests.WithLabelValues(resultFound).Inc()
	settledVertices.Observe(float64(result.Settled))

	// Build response.
	resp := RouteResponse{
		State:    routing.Found.String(),
		Distance: result.Distance,
		Path:     result.Path,
		Coords:   make([]CoordJSON, len(result.Coords)),
		Settled:  result.Settled,
	}
	for i, c := range result.Coords {
		resp.Coords[i] = CoordJSON{X: c.X, Y: c.Y}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.stats)
}

func (h *Handlers) reject(w http.ResponseWriter, status int, code, field string) {
	routeRequests.WithLabelValues(resultInvalid).Inc()
	writeError(w, status, code, field)
}

func writeError(w http.ResponseWriter, status int, code, field string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code, Field: field})
}
