package metrics

import (
	"strconv"
	"time"

	"github.com/kilianp07/smarthospital/core/model"
)

// AdmissionResult is one processed patient as seen by metrics sinks.
type AdmissionResult struct {
	PatientID int
	Severity  model.Severity
	Area      string
	// HospitalIndex is -1 when no hospital was selected. Names are not
	// unique, so sinks key hospital series on the index.
	HospitalIndex int
	Hospital      string
	Outcome       model.Outcome
	// Distance is only meaningful when Outcome is OutcomeAdmitted.
	Distance    int
	WaitTime    time.Duration
	ProcessedAt time.Time
}

// HospitalLabels returns the index and name labels of a hospital series.
// A negative index or empty name yields ("-1", "none").
func HospitalLabels(index int, name string) (string, string) {
	if index < 0 || name == "" {
		return "-1", "none"
	}
	return strconv.Itoa(index), name
}

// MetricsSink records admission results for observability purposes.
type MetricsSink interface {
	RecordAdmission(res AdmissionResult) error
}

// OccupancySample is the bed usage of one hospital at a point in time.
type OccupancySample struct {
	HospitalIndex int
	Hospital      string
	TotalBeds     int
	FreeBeds      int
	Time          time.Time
}

// OccupancyRecorder is implemented by sinks able to record bed occupancy.
type OccupancyRecorder interface {
	RecordOccupancy(samples []OccupancySample) error
}

// QueueDepthRecorder is implemented by sinks able to track pending patients.
type QueueDepthRecorder interface {
	RecordQueueDepth(depth int) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordAdmission(AdmissionResult) error   { return nil }
func (NopSink) RecordOccupancy([]OccupancySample) error { return nil }
func (NopSink) RecordQueueDepth(int) error              { return nil }
func (NopSink) Close() error                            { return nil }
