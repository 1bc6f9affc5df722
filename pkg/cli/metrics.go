package cli

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "torp_analyses_total",
		Help: "Number of quote analyses performed, by final grade.",
	}, []string{"grade"})

	analysesCapped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "torp_analyses_capped_total",
		Help: "Number of analyses where obligation or anomaly capping changed the grade.",
	})

	analysisScore = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "torp_analysis_score",
		Help:    "Distribution of composite scores on the 0-1000 scale.",
		Buckets: prometheus.LinearBuckets(0, 100, 11),
	})

	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "torp_http_request_errors_total",
		Help: "Number of HTTP requests that ended in an error response.",
	}, []string{"path"})
)
