package model

import (
	"strconv"
	"strings"
)

// Severity is the urgency level of a patient. Ascending severity value means
// ascending dispatch priority: Critical is served before High, High before
// Normal.
type Severity int

const (
	SeverityCritical Severity = iota + 1
	SeverityHigh
	SeverityNormal
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "critical"
	case SeverityHigh:
		return "high"
	case SeverityNormal:
		return "normal"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined levels.
func (s Severity) Valid() bool {
	return s >= SeverityCritical && s <= SeverityNormal
}

// ParseSeverity accepts either the numeric level ("1".."3") or its name.
// Anything else falls back to SeverityNormal.
func ParseSeverity(v string) Severity {
	v = strings.TrimSpace(strings.ToLower(v))
	if n, err := strconv.Atoi(v); err == nil {
		return SeverityFromInt(n)
	}
	switch v {
	case "critical":
		return SeverityCritical
	case "high":
		return SeverityHigh
	default:
		return SeverityNormal
	}
}

// SeverityFromInt converts a numeric level, defaulting to SeverityNormal when
// out of range.
func SeverityFromInt(n int) Severity {
	s := Severity(n)
	if !s.Valid() {
		return SeverityNormal
	}
	return s
}
