package api

// RouteRequest is the JSON body for POST /api/v1/route.
type RouteRequest struct {
	Source      *uint32 `json:"source"`
	Destination *uint32 `json:"destination"`
}

// CoordJSON is a vertex position in graph coordinates.
type CoordJSON struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// RouteResponse is the JSON response for a successful route query.
type RouteResponse struct {
	State    string      `json:"state"`
	Distance float64     `json:"distance"`
	Path     []uint32    `json:"path"`
	Coords   []CoordJSON `json:"coords"`
	Settled  int         `json:"settled"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// StatsResponse is the JSON response for GET /api/v1/stats.
type StatsResponse struct {
	NumVertices   uint32 `json:"num_vertices"`
	NumEdges      uint32 `json:"num_edges"`
	NumComponents int    `json:"num_components"`
	Frontier      string `json:"frontier"`
	PoolSize      int    `json:"pool_size"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
