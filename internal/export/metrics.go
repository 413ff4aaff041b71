package export

import "github.com/prometheus/client_golang/prometheus"

var (
	exportsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slidecraft_exports_total",
			Help: "Total number of export attempts by result.",
		},
		[]string{"result"},
	)
	imageFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slidecraft_export_image_failures_total",
			Help: "Slide images replaced by a placeholder.",
		},
	)
	exportDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "slidecraft_export_duration_seconds",
			Help:    "Export duration in seconds, image prefetch included.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func init() {
	prometheus.MustRegister(exportsTotal)
	prometheus.MustRegister(imageFailuresTotal)
	prometheus.MustRegister(exportDuration)
}
