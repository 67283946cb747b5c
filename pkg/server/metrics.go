package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskmarket_http_requests_total",
		Help: "Handled api requests by route",
	}, []string{"route"})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskmarket_active_sessions",
		Help: "Browse sessions held in memory",
	})
	evictedSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmarket_evicted_sessions_total",
		Help: "Sessions dropped because the store was full",
	})
)
