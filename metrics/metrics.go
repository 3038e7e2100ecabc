package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	DatasetBuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lifeline_dataset_builds_total",
		Help: "Total number of dataset snapshot builds",
	})
	DatasetBuildDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lifeline_dataset_build_duration_ms",
		Help:    "Dataset snapshot build duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	})
	DonorsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lifeline_donors_loaded",
		Help: "Donor records in the current snapshot",
	})
	RowsSkippedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lifeline_rows_skipped_total",
		Help: "Total raw rows skipped for a missing donor key",
	})
	ClusterQueriesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lifeline_cluster_queries_total",
		Help: "Total viewport cluster queries",
	})
	ClusterQueryDurationMs = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lifeline_cluster_query_duration_ms",
		Help:    "Viewport cluster query duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500},
	})
)

func init() {
	prometheus.MustRegister(DatasetBuildsTotal)
	prometheus.MustRegister(DatasetBuildDurationMs)
	prometheus.MustRegister(DonorsLoaded)
	prometheus.MustRegister(RowsSkippedTotal)
	prometheus.MustRegister(ClusterQueriesTotal)
	prometheus.MustRegister(ClusterQueryDurationMs)
}

// Handler exposes the registered collectors for Prometheus scraping; mounted
// on /metrics by the router.
func Handler() http.Handler { return promhttp.Handler() }
