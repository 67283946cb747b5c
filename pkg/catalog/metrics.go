package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskmarket_catalog_products",
		Help: "Number of products in the current catalog snapshot",
	})
	lastLoad = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slaskmarket_catalog_loaded_timestamp_seconds",
		Help: "Unix time of the last published catalog snapshot",
	})
	failedLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmarket_catalog_failed_loads_total",
		Help: "Catalog loads that kept the previous snapshot",
	})
	cacheFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slaskmarket_catalog_cache_fallbacks_total",
		Help: "Loads served from the payload cache after an upstream failure",
	})
)
