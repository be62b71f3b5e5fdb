package model

// Outcome classifies the result of processing one patient.
type Outcome string

const (
	// OutcomeAdmitted means a bed was allocated.
	OutcomeAdmitted Outcome = "admitted"
	// OutcomeNoCapacity means no reachable hospital had a free bed.
	OutcomeNoCapacity Outcome = "no_capacity"
	// OutcomeInternalError means a hospital reported free beds but the
	// allocation failed. It always indicates a bug.
	OutcomeInternalError Outcome = "internal_error"
	// OutcomeRejected means the report itself was invalid.
	OutcomeRejected Outcome = "rejected"
)

// ParseOutcome returns the outcome named s and whether it is known.
func ParseOutcome(s string) (Outcome, bool) {
	switch o := Outcome(s); o {
	case OutcomeAdmitted, OutcomeNoCapacity, OutcomeInternalError, OutcomeRejected:
		return o, true
	default:
		return "", false
	}
}
