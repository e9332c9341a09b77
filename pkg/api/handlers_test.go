package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"map_query/pkg/routing"
)

// mockRouter implements routing.Router for testing.
type mockRouter struct {
	result *routing.RouteResult
	err    error
}

func (m *mockRouter) Route(ctx context.Context, src, dst uint32) (*routing.RouteResult, error) {
	return m.result, m.err
}

func postRoute(h *Handlers, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.HandleRoute(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	return resp
}

func TestHandleRoute_Success(t *testing.T) {
	mock := &mockRouter{
		result: &routing.RouteResult{
			Source:      0,
			Destination: 2,
			Distance:    7,
			Path:        routing.Path{0, 1, 2},
			Coords:      []routing.Coord{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 3, Y: 4}},
			Settled:     3,
		},
	}
	h := NewHandlers(mock, StatsResponse{NumVertices: 4})

	w := postRoute(h, `{"source":0,"destination":2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200. body: %s", w.Code, w.Body.String())
	}

	var resp RouteResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.State != "found" {
		t.Errorf("State = %q, want found", resp.State)
	}
	if resp.Distance != 7 {
		t.Errorf("Distance = %f, want 7", resp.Distance)
	}
	if fmt.Sprint(resp.Path) != "[0 1 2]" {
		t.Errorf("Path = %v, want [0 1 2]", resp.Path)
	}
	if len(resp.Coords) != 3 || resp.Coords[2] != (CoordJSON{X: 3, Y: 4}) {
		t.Errorf("Coords = %+v", resp.Coords)
	}
}

func TestHandleRoute_BadRequests(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"not json", "not json", ""},
		{"negative id", `{"source":-1,"destination":2}`, ""},
		{"missing source", `{"destination":2}`, "source"},
		{"missing destination", `{"source":2}`, "destination"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(&mockRouter{}, StatsResponse{})
			w := postRoute(h, tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}
			resp := decodeError(t, w)
			if resp.Error != "invalid_request" || resp.Field != tt.wantField {
				t.Errorf("error = %+v, want invalid_request field %q", resp, tt.wantField)
			}
		})
	}
}

func TestHandleRoute_MissingContentType(t *testing.T) {
	h := NewHandlers(&mockRouter{}, StatsResponse{})

	req := httptest.NewRequest("POST", "/api/v1/route", strings.NewReader(`{"source":0,"destination":1}`))
	w := httptest.NewRecorder()
	h.HandleRoute(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestHandleRoute_RouterErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid vertex", fmt.Errorf("%w: 99", routing.ErrInvalidVertex), http.StatusBadRequest, "invalid_vertex"},
		{"no route", fmt.Errorf("%w: 0 to 3", routing.ErrNoRoute), http.StatusNotFound, "no_route_found"},
		{"timeout", fmt.Errorf("acquire engine: %w", context.DeadlineExceeded), http.StatusServiceUnavailable, "request_timeout"},
		{"other", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandlers(&mockRouter{err: tt.err}, StatsResponse{})
			w := postRoute(h, `{"source":0,"destination":3}`)
			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if resp := decodeError(t, w); resp.Error != tt.wantCode {
				t.Errorf("error = %q, want %q", resp.Error, tt.wantCode)
			}
		})
	}
}

func TestHandleHealth(t *testing.T) {
	h := NewHandlers(&mockRouter{}, StatsResponse{})

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	h.HandleHealth(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp HealthResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want 'ok'", resp.Status)
	}
}

func TestHandleStats(t *testing.T) {
	h := NewHandlers(&mockRouter{}, StatsResponse{NumVertices: 500000, NumEdges: 1200000, NumComponents: 3, Frontier: "lazy", PoolSize: 4})

	req := httptest.NewRequest("GET", "/api/v1/stats", nil)
	w := httptest.NewRecorder()
	h.HandleStats(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}

	var resp StatsResponse
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.NumVertices != 500000 || resp.NumComponents != 3 {
		t.Errorf("stats = %+v", resp)
	}
}
