package generate

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidecraft_generations_total",
			Help: "Total number of generation attempts by result.",
		},
		[]string{"result"},
	)
	generationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slidecraft_generation_duration_seconds",
			Help:    "Generation round-trip duration in seconds.",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80, 160},
		},
	)
)

func init() {
	prometheus.MustRegister(generationsTotal)
	prometheus.MustRegister(generationDuration)
}

func observe(err error, d time.Duration) {
	result := "ok"
	var ge *Error
	if errors.As(err, &ge) {
		result = string(ge.Kind)
	} else if err != nil {
		result = "error"
	}
	generationsTotal.WithLabelValues(result).Inc()
	if result != string(KindValidation) {
		generationDuration.Observe(d.Seconds())
	}
}
