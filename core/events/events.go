package events

import "github.com/kilianp07/smarthospital/core/model"

// Event is implemented by every dispatch event.
type Event interface {
	Kind() string
}

// ReportEvent is published when a patient report is queued.
type ReportEvent struct {
	Patient    model.Patient
	QueueDepth int
}

// Kind implements Event.
func (ReportEvent) Kind() string { return "report" }

// AdmissionEvent is published once per processed patient.
type AdmissionEvent struct {
	Patient  model.Patient
	Outcome  model.Outcome
	Hospital int
	Bed      int
	Distance int
	Err      error
}

// Kind implements Event.
func (AdmissionEvent) Kind() string { return "admission" }
