package model

import "time"

// DefaultPatientName is used when a report carries no name.
const DefaultPatientName = "Anon"

// Patient is a pending emergency report awaiting admission.
type Patient struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Area       int       `json:"area"`
	Severity   Severity  `json:"severity"`
	ReportedAt time.Time `json:"reported_at"`
}
