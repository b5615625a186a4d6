package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Pipeline stage metrics
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pipeline_stage_duration_ms",
		Help:    "Duration of each pipeline stage in milliseconds",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 18), // 0.1ms to ~13s
	}, []string{"stage"})

	ImagePixels = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pipeline_image_pixels",
		Help: "Number of pixels in the last processed image",
	})

	ImageBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pipeline_device_buffer_bytes",
		Help: "Size in bytes of each device buffer for the last run",
	})

	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pipeline_runs_total",
		Help: "Total number of pipeline runs by backend and outcome",
	}, []string{"backend", "status"})
)
