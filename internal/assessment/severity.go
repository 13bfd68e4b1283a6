package assessment

import "strings"

// Severity is the reported severity of a finding.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return true
	default:
		return false
	}
}

func (s Severity) String() string {
	return string(s)
}

// ParseSeverity normalizes a severity string for tallying. Unknown or
// empty values map to info.
func ParseSeverity(s string) Severity {
	norm := Severity(strings.TrimSpace(strings.ToLower(s)))
	if norm.IsValid() {
		return norm
	}
	return SeverityInfo
}

// Bucket maps a severity onto the histogram bucket it is tallied in.
func (s Severity) Bucket() Severity {
	return ParseSeverity(string(s))
}

// AllSeverities returns the valid severities ordered from critical to info.
func AllSeverities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo}
}
