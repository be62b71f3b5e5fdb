package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	admissionsTotal *prometheus.CounterVec
	routingLatency  *prometheus.HistogramVec
	queueDepth      prometheus.Gauge
	freeBeds        *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.HistogramVec, prometheus.Gauge, *prometheus.GaugeVec) {
	adm := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "admissions_total",
			Help: "Number of processed patients by outcome and severity",
		},
		[]string{"outcome", "severity"},
	)
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "routing_latency_seconds",
			Help:    "Time spent selecting a hospital and allocating a bed",
			Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
		},
		[]string{"outcome"},
	)
	depth := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "patient_queue_depth",
			Help: "Number of patients waiting in the queue",
		},
	)
	free := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hospital_free_beds",
			Help: "Free beds per hospital",
		},
		[]string{"hospital_index", "hospital"},
	)
	return adm, lat, depth, free
}

func init() {
	admissionsTotal, routingLatency, queueDepth, freeBeds = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers dispatch metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(admissionsTotal, routingLatency, queueDepth, freeBeds)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	admissionsTotal, routingLatency, queueDepth, freeBeds = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
