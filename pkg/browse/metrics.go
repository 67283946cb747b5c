package browse

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	queries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmarket_queries_total",
		Help: "Catalog queries run through the browse pipeline",
	})
	queryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "slaskmarket_query_duration_seconds",
		Help:    "Time spent evaluating, sorting and paging one query",
		Buckets: prometheus.ExponentialBuckets(0.00005, 2, 14),
	})
	mutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slaskmarket_session_mutations_total",
		Help: "Filter state mutations by operation",
	}, []string{"op"})
)
