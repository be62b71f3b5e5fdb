// Package logging persists admission decisions as an append-only audit trail
// and answers filtered queries over it.
package logging

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/smarthospital/core/model"
)

// NoHospital is stored in Hospital when no hospital was chosen.
const NoHospital = -1

// AdmissionRecord captures one processed patient and its outcome.
type AdmissionRecord struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	PatientID    int           `json:"patient_id"`
	PatientName  string        `json:"patient_name"`
	Severity     string        `json:"severity"`
	Area         int           `json:"area"`
	AreaName     string        `json:"area_name"`
	Outcome      model.Outcome `json:"outcome"`
	Hospital     int           `json:"hospital"`
	HospitalName string        `json:"hospital_name,omitempty"`
	Bed          int           `json:"bed,omitempty"`
	Distance     int           `json:"distance,omitempty"`
	Error        string        `json:"error,omitempty"`
}

// NewRecord returns a record with a fresh id and the current timestamp.
func NewRecord() AdmissionRecord {
	return AdmissionRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Hospital:  NoHospital,
	}
}

// LogQuery defines filters for retrieving records. Zero values disable a
// filter; Hospital is a pointer because 0 is a valid index.
type LogQuery struct {
	Start    time.Time
	End      time.Time
	Hospital *int
	Outcome  model.Outcome
	Limit    int
}

// Match reports whether rec satisfies every filter of q.
func (q LogQuery) Match(rec AdmissionRecord) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.Hospital != nil && rec.Hospital != *q.Hospital {
		return false
	}
	if q.Outcome != "" && rec.Outcome != q.Outcome {
		return false
	}
	return true
}

// LogStore persists AdmissionRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec AdmissionRecord) error
	Query(ctx context.Context, q LogQuery) ([]AdmissionRecord, error)
	Close() error
}

func limit(recs []AdmissionRecord, n int) []AdmissionRecord {
	if n > 0 && len(recs) > n {
		return recs[len(recs)-n:]
	}
	return recs
}
