package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GenerationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joewriter_generations_total",
		Help: "Generation requests by persona and outcome.",
	}, []string{"persona", "outcome"})

	StepDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "joewriter_generation_step_duration_seconds",
		Help:    "Time spent waiting on the model for one prompt step.",
		Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
	}, []string{"step"})

	StepErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "joewriter_generation_step_errors_total",
		Help: "Model calls that returned an error, by step.",
	}, []string{"step"})
)
