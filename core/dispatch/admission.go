package dispatch

import (
	"time"

	"github.com/kilianp07/smarthospital/core/model"
)

// Admission is the result of processing one patient.
type Admission struct {
	Patient model.Patient
	Outcome model.Outcome
	// Hospital, Bed and Distance are set only for OutcomeAdmitted, except
	// Hospital which is also set for OutcomeInternalError.
	Hospital    int
	Bed         int
	Distance    int
	Err         error
	ProcessedAt time.Time
}

// Admitted reports whether a bed was allocated.
func (a Admission) Admitted() bool { return a.Outcome == model.OutcomeAdmitted }
