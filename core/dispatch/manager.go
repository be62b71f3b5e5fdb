// Package dispatch turns patient reports into hospital admissions.
//
// The Manager owns the patient queue for one city network. Reports are
// queued by severity and drained in priority order; each patient is routed
// to the nearest reachable hospital with a free bed and given the first free
// bed there.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/kilianp07/smarthospital/core/city"
	"github.com/kilianp07/smarthospital/core/dispatch/logging"
	"github.com/kilianp07/smarthospital/core/events"
	"github.com/kilianp07/smarthospital/core/logger"
	"github.com/kilianp07/smarthospital/core/metrics"
	"github.com/kilianp07/smarthospital/core/model"
	"github.com/kilianp07/smarthospital/core/monitoring"
	"github.com/kilianp07/smarthospital/core/queue"
	"github.com/kilianp07/smarthospital/core/routing"
	"github.com/kilianp07/smarthospital/internal/eventbus"
)

// ErrInvariantViolation marks a state the dispatch loop should never reach:
// the router picked a hospital with free beds but the allocation failed.
var ErrInvariantViolation = errors.New("dispatch: invariant violation")

// Manager processes patient reports against a city network.
type Manager struct {
	net     *city.Network
	queue   *queue.PatientQueue
	router  *routing.Router
	logger  logger.Logger
	metrics metrics.MetricsSink
	bus     eventbus.EventBus[events.Event]
	store   logging.LogStore
	nextID  int
	history []Admission
	mu      sync.Mutex
}

// NewManager creates a manager over net. A nil sink records nothing and a
// nil bus publishes nothing.
func NewManager(net *city.Network, q *queue.PatientQueue, cfg Config, sink metrics.MetricsSink, bus eventbus.EventBus[events.Event], log logger.Logger) (*Manager, error) {
	if net == nil || q == nil || log == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewManager")
	}
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Manager{
		net:     net,
		queue:   q,
		router:  routing.New(net.Graph(), net),
		logger:  log,
		metrics: sink,
		bus:     bus,
		nextID:  cfg.FirstPatientID,
	}, nil
}

// SetLogStore configures the store used to persist admission records.
func (m *Manager) SetLogStore(store logging.LogStore) {
	m.mu.Lock()
	m.store = store
	m.mu.Unlock()
}

// Network returns the city network the manager dispatches into.
func (m *Manager) Network() *city.Network { return m.net }

// Pending returns the number of queued patients.
func (m *Manager) Pending() int { return m.queue.Len() }

// Report validates and queues a new patient. An empty name becomes
// model.DefaultPatientName and an invalid severity becomes SeverityNormal.
func (m *Manager) Report(area int, name string, sev model.Severity) (*model.Patient, error) {
	if _, err := m.net.Area(area); err != nil {
		return nil, fmt.Errorf("dispatch: report: %w", err)
	}
	if name == "" {
		name = model.DefaultPatientName
	}
	if !sev.Valid() {
		sev = model.SeverityNormal
	}
	p := &model.Patient{
		ID:         m.nextID,
		Name:       name,
		Area:       area,
		Severity:   sev,
		ReportedAt: time.Now(),
	}
	if err := m.queue.Push(p); err != nil {
		return nil, fmt.Errorf("dispatch: report: %w", err)
	}
	m.nextID++
	m.logger.Infow("patient reported", map[string]any{
		"patient_id": p.ID,
		"area":       area,
		"severity":   sev.String(),
	})
	m.publish(events.ReportEvent{Patient: *p, QueueDepth: m.queue.Len()})
	m.recordQueueDepth()
	return p, nil
}

// Drain processes every queued patient in priority order.
func (m *Manager) Drain() []Admission {
	var out []Admission
	for {
		p, ok := m.queue.Pop()
		if !ok {
			break
		}
		out = append(out, m.Process(*p))
		m.recordQueueDepth()
	}
	if len(out) > 0 {
		m.recordOccupancy()
	}
	return out
}

// Process routes one patient and allocates a bed. It never fails: every
// problem is expressed through the returned Admission's Outcome and Err.
func (m *Manager) Process(p model.Patient) Admission {
	start := time.Now()
	adm := m.admit(p)
	adm.ProcessedAt = time.Now()
	routingLatency.WithLabelValues(string(adm.Outcome)).Observe(time.Since(start).Seconds())
	admissionsTotal.WithLabelValues(string(adm.Outcome), p.Severity.String()).Inc()

	switch adm.Outcome {
	case model.OutcomeAdmitted:
		m.logger.Infow("patient admitted", map[string]any{
			"patient_id": p.ID,
			"hospital":   adm.Hospital,
			"bed":        adm.Bed,
			"distance":   adm.Distance,
		})
	case model.OutcomeNoCapacity:
		m.logger.Warnf("patient %d from area %d: all reachable hospitals are full", p.ID, p.Area)
	case model.OutcomeRejected:
		m.logger.Warnf("patient %d rejected: %v", p.ID, adm.Err)
	case model.OutcomeInternalError:
		m.logger.Errorf("patient %d: %v", p.ID, adm.Err)
		monitoring.CaptureException(adm.Err, map[string]string{
			"module":     "dispatch_manager",
			"patient_id": strconv.Itoa(p.ID),
			"hospital":   strconv.Itoa(adm.Hospital),
		})
	}

	m.recordMetrics(adm)
	m.publish(events.AdmissionEvent{
		Patient:  adm.Patient,
		Outcome:  adm.Outcome,
		Hospital: adm.Hospital,
		Bed:      adm.Bed,
		Distance: adm.Distance,
		Err:      adm.Err,
	})
	m.mu.Lock()
	m.history = append(m.history, adm)
	store := m.store
	m.mu.Unlock()
	if store != nil {
		if err := store.Append(context.Background(), m.record(adm)); err != nil {
			m.logger.Errorf("admission log error: %v", err)
		}
	}
	return adm
}

func (m *Manager) admit(p model.Patient) Admission {
	adm := Admission{Patient: p, Hospital: logging.NoHospital}
	sel, err := m.router.SelectHospital(p.Area)
	if errors.Is(err, routing.ErrNoHospitalAvailable) {
		adm.Outcome = model.OutcomeNoCapacity
		adm.Err = err
		return adm
	}
	if err != nil {
		adm.Outcome = model.OutcomeRejected
		adm.Err = err
		return adm
	}
	adm.Hospital = sel.Hospital
	h, err := m.net.Hospital(sel.Hospital)
	if err != nil {
		adm.Outcome = model.OutcomeInternalError
		adm.Err = fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		return adm
	}
	bed, err := h.Beds.Allocate()
	if err != nil {
		adm.Outcome = model.OutcomeInternalError
		adm.Err = fmt.Errorf("%w: hospital %d reported free but allocation failed: %w", ErrInvariantViolation, sel.Hospital, err)
		return adm
	}
	adm.Outcome = model.OutcomeAdmitted
	adm.Bed = bed
	adm.Distance = sel.Distance
	return adm
}

// History returns a copy of every processed admission.
func (m *Manager) History() []Admission {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Admission(nil), m.history...)
}

// Close releases resources held by the manager.
func (m *Manager) Close() error {
	if m.bus != nil {
		m.bus.Close()
	}
	m.mu.Lock()
	store := m.store
	m.store = nil
	m.mu.Unlock()
	var errs []error
	if store != nil {
		errs = append(errs, store.Close())
	}
	if c, ok := m.metrics.(io.Closer); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

func (m *Manager) publish(e events.Event) {
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

func (m *Manager) areaName(a int) string {
	if area, err := m.net.Area(a); err == nil {
		return area.Name
	}
	return ""
}

func (m *Manager) hospitalName(h int) string {
	if hosp, err := m.net.Hospital(h); err == nil {
		return hosp.Name
	}
	return ""
}

func (m *Manager) record(adm Admission) logging.AdmissionRecord {
	rec := logging.NewRecord()
	rec.Timestamp = adm.ProcessedAt.UTC()
	rec.PatientID = adm.Patient.ID
	rec.PatientName = adm.Patient.Name
	rec.Severity = adm.Patient.Severity.String()
	rec.Area = adm.Patient.Area
	rec.AreaName = m.areaName(adm.Patient.Area)
	rec.Outcome = adm.Outcome
	rec.Hospital = adm.Hospital
	rec.HospitalName = m.hospitalName(adm.Hospital)
	rec.Bed = adm.Bed
	rec.Distance = adm.Distance
	if adm.Err != nil {
		rec.Error = adm.Err.Error()
	}
	return rec
}

// recordMetrics forwards the admission to the configured sink.
func (m *Manager) recordMetrics(adm Admission) {
	res := metrics.AdmissionResult{
		PatientID:     adm.Patient.ID,
		Severity:      adm.Patient.Severity,
		Area:          m.areaName(adm.Patient.Area),
		HospitalIndex: adm.Hospital,
		Hospital:      m.hospitalName(adm.Hospital),
		Outcome:       adm.Outcome,
		Distance:      adm.Distance,
		WaitTime:      adm.ProcessedAt.Sub(adm.Patient.ReportedAt),
		ProcessedAt:   adm.ProcessedAt,
	}
	if err := m.metrics.RecordAdmission(res); err != nil {
		m.logger.Errorf("metrics error: %v", err)
	}
}

func (m *Manager) recordQueueDepth() {
	depth := m.queue.Len()
	queueDepth.Set(float64(depth))
	if qr, ok := m.metrics.(metrics.QueueDepthRecorder); ok {
		if err := qr.RecordQueueDepth(depth); err != nil {
			m.logger.Errorf("queue depth metrics error: %v", err)
		}
	}
}

// recordOccupancy publishes the free bed count of every hospital.
func (m *Manager) recordOccupancy() {
	now := time.Now()
	hs := m.net.Hospitals()
	samples := make([]metrics.OccupancySample, 0, len(hs))
	for _, h := range hs {
		free := h.FreeBeds()
		idx, name := metrics.HospitalLabels(h.ID, h.Name)
		freeBeds.WithLabelValues(idx, name).Set(float64(free))
		samples = append(samples, metrics.OccupancySample{
			HospitalIndex: h.ID,
			Hospital:      h.Name,
			TotalBeds:     h.TotalBeds(),
			FreeBeds:      free,
			Time:          now,
		})
	}
	if or, ok := m.metrics.(metrics.OccupancyRecorder); ok {
		if err := or.RecordOccupancy(samples); err != nil {
			m.logger.Errorf("occupancy metrics error: %v", err)
		}
	}
}

// RecordOccupancy publishes the current bed occupancy without processing
// any patient. It is used once at startup.
func (m *Manager) RecordOccupancy() { m.recordOccupancy() }
