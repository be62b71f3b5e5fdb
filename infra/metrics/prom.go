package metrics

import (
	coremetrics "github.com/kilianp07/smarthospital/core/metrics"
	"github.com/kilianp07/smarthospital/core/model"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records admissions and bed occupancy in Prometheus metrics.
type PromSink struct {
	admissions *prometheus.CounterVec
	distance   *prometheus.HistogramVec
	wait       *prometheus.HistogramVec
	totalBeds  *prometheus.GaugeVec
	occupied   *prometheus.GaugeVec
}

// NewPromSink registers admission metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already present on the registerer are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		admissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospital_admissions_total",
			Help: "Processed patients per hospital and outcome",
		}, []string{"hospital_index", "hospital", "outcome"}),
		distance: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "admission_distance",
			Help:    "Shortest distance travelled by admitted patients",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}, []string{"hospital_index", "hospital"}),
		wait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "patient_wait_seconds",
			Help:    "Time between report and processing",
			Buckets: prometheus.DefBuckets,
		}, []string{"severity"}),
		totalBeds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hospital_total_beds",
			Help: "Bed capacity per hospital",
		}, []string{"hospital_index", "hospital"}),
		occupied: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "hospital_occupied_beds",
			Help: "Occupied beds per hospital",
		}, []string{"hospital_index", "hospital"}),
	}
	var err error
	if s.admissions, err = register(reg, s.admissions); err != nil {
		return nil, err
	}
	if s.distance, err = register(reg, s.distance); err != nil {
		return nil, err
	}
	if s.wait, err = register(reg, s.wait); err != nil {
		return nil, err
	}
	if s.totalBeds, err = register(reg, s.totalBeds); err != nil {
		return nil, err
	}
	if s.occupied, err = register(reg, s.occupied); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordAdmission counts the admission and observes distance and wait time.
func (s *PromSink) RecordAdmission(res coremetrics.AdmissionResult) error {
	idx, hospital := coremetrics.HospitalLabels(res.HospitalIndex, res.Hospital)
	s.admissions.WithLabelValues(idx, hospital, string(res.Outcome)).Inc()
	if res.Outcome == model.OutcomeAdmitted {
		s.distance.WithLabelValues(idx, hospital).Observe(float64(res.Distance))
	}
	if res.WaitTime > 0 {
		s.wait.WithLabelValues(res.Severity.String()).Observe(res.WaitTime.Seconds())
	}
	return nil
}

// RecordOccupancy sets the capacity and occupancy gauges.
func (s *PromSink) RecordOccupancy(samples []coremetrics.OccupancySample) error {
	for _, o := range samples {
		idx, hospital := coremetrics.HospitalLabels(o.HospitalIndex, o.Hospital)
		s.totalBeds.WithLabelValues(idx, hospital).Set(float64(o.TotalBeds))
		s.occupied.WithLabelValues(idx, hospital).Set(float64(o.TotalBeds - o.FreeBeds))
	}
	return nil
}

// AdmissionCounter returns the counter for one hospital and outcome.
func (s *PromSink) AdmissionCounter(index int, hospital string, outcome model.Outcome) prometheus.Counter {
	idx, name := coremetrics.HospitalLabels(index, hospital)
	return s.admissions.WithLabelValues(idx, name, string(outcome))
}
