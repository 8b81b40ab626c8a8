package summarizer

import "github.com/prometheus/client_golang/prometheus"

var (
	modelLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "summaryd",
			Subsystem: "model",
			Name:      "loads_total",
			Help:      "Model load attempts by result",
		},
		[]string{"result"},
	)

	modelLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "summaryd",
			Subsystem: "model",
			Name:      "load_duration_seconds",
			Help:      "Duration of successful model loads in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300},
		},
	)

	modelLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "summaryd",
			Subsystem: "model",
			Name:      "loaded",
			Help:      "1 when the model and tokenizer are loaded",
		},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "summaryd",
			Subsystem: "inference",
			Name:      "generation_duration_seconds",
			Help:      "Duration of summary generation in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"runtime"},
	)

	inputTruncationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "summaryd",
			Subsystem: "inference",
			Name:      "input_truncations_total",
			Help:      "Inputs truncated to the maximum input token count",
		},
	)
)

func init() {
	prometheus.MustRegister(modelLoadsTotal, modelLoadDuration, modelLoaded, generationDuration, inputTruncationsTotal)
}
