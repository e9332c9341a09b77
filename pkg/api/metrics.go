package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// routeRequests counts route requests by outcome
	routeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "map_query_route_requests_total",
		Help: "Total route requests by result",
	}, []string{"result"})

	// routeDuration tracks end-to-end route latency
	routeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "map_query_route_duration_seconds",
		Help:    "Route request duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
	})

	// settledVertices tracks how much of the graph each found route explored
	settledVertices = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "map_query_settled_vertices",
		Help:    "Vertices settled per successful route query",
		Buckets: prometheus.ExponentialBuckets(1, 4, 12),
	})
)

const (
	resultFound       = "found"
	resultNoRoute     = "no_route"
	resultInvalid     = "invalid"
	resultUnavailable = "unavailable"
	resultError       = "error"
)
