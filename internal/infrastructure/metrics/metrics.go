package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ClassificationsTotal counts classifications by outcome
	// (toxic, not_toxic, error).
	ClassificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "toxicity_classifications_total",
		Help: "Total number of classification requests by outcome",
	}, []string{"outcome"})

	// ModelLoadSeconds observes how long model provisioning took,
	// labeled by source (cache, local, remote).
	ModelLoadSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "toxicity_model_load_seconds",
		Help:    "Model provisioning duration in seconds",
		Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
	}, []string{"source"})

	// ModelLoaded reports whether a usable model handle is held.
	ModelLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "toxicity_model_loaded",
		Help: "1 when a model handle is loaded, 0 otherwise",
	})
)
