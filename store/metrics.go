package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registryOps = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tango_registry_ops_total",
	Help: "Number of tree table operations",
}, []string{"op", "status"})

var registryTrees = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "tango_registry_trees",
	Help: "Number of trees registered in the tree table",
})

var filterSkips = promauto.NewCounter(prometheus.CounterOpts{
	Name: "tango_filter_skips_total",
	Help: "Number of lookups answered by the membership filter alone",
})

var forestSearches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "tango_forest_searches_total",
	Help: "Number of tango searches per shard",
}, []string{"shard"})

var forestSearchSteps = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "tango_search_steps",
	Help:    "Tango steps taken per search",
	Buckets: prometheus.LinearBuckets(0, 1, 16),
})

var forestTrees = promauto.NewGaugeVec(prometheus.GaugeOpts{
	Name: "tango_forest_trees",
	Help: "Number of tango trees per shard",
}, []string{"shard"})

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
