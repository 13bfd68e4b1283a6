package assessment

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"
)

// Type identifies the kind of assessment conducted.
type Type string

const (
	TypeSecurity       Type = "security"
	TypeInfrastructure Type = "infrastructure"
	TypeCompliance     Type = "compliance"
	TypeCapacity       Type = "capacity"
)

const (
	TribeName    = "Verdigris Botanica Tribal Nation"
	Jurisdiction = "Tribal Sovereign Territory"

	// SharedClassification labels shareable results handed to federal partners.
	SharedClassification = "Shared with Federal Partners"

	sourceEntity   = "Tribal Sovereign Entity"
	protectionNote = "Contains Tribal Sovereign Information - Internal Use Only"
)

// Finding is a single assessment observation. Immutable once created.
type Finding struct {
	ID              string          `json:"finding_id"`
	Type            string          `json:"type"`
	Severity        Severity        `json:"severity"`
	Description     string          `json:"description"`
	ProtectionLevel ProtectionLevel `json:"protection_level"`
	Timestamp       string          `json:"timestamp"`
}

// SeveritySummary is the per-bucket tally of finding severities.
type SeveritySummary struct {
	Critical int `json:"critical"`
	High     int `json:"high"`
	Medium   int `json:"medium"`
	Low      int `json:"low"`
	Info     int `json:"info"`
}

// Results is a read view over an assessment: either the full internal
// view or the shareable subset prepared for export.
type Results struct {
	AssessmentID    string            `json:"assessment_id"`
	AssessmentType  Type              `json:"assessment_type"`
	Name            string            `json:"name"`
	Timestamp       string            `json:"timestamp"`
	FindingsCount   int               `json:"findings_count"`
	Findings        []Finding         `json:"findings"`
	SeveritySummary SeveritySummary   `json:"severity_summary"`
	Metadata        map[string]string `json:"metadata"`
	ProtectionNote  string            `json:"protection_note,omitempty"`
}

// Assessment owns an ordered sequence of findings.
type Assessment struct {
	ID        string
	Type      Type
	Name      string
	Timestamp string

	findings []Finding
}

func New(assessmentType Type, name string) *Assessment {
	return &Assessment{
		ID:        newAssessmentID(),
		Type:      assessmentType,
		Name:      name,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
	}
}

// AddFinding appends a finding and returns it. Finding IDs derive from
// the assessment ID and the finding's ordinal, so they are stable for a
// given insertion order.
func (a *Assessment) AddFinding(findingType string, severity Severity, description string, protection ProtectionLevel) Finding {
	f := Finding{
		ID:              newFindingID(a.ID, len(a.findings)),
		Type:            findingType,
		Severity:        severity,
		Description:     description,
		ProtectionLevel: protection,
		Timestamp:       time.Now().UTC().Format(time.RFC3339Nano),
	}
	a.findings = append(a.findings, f)
	return f
}

func (a *Assessment) Findings() []Finding {
	return append([]Finding{}, a.findings...)
}

// ShareableResults returns the view permitted to leave the network.
// Confidential and tribal sovereign findings are always excluded.
func (a *Assessment) ShareableResults() Results {
	shareable := ShareableFindings(a.findings)
	return Results{
		AssessmentID:    a.ID,
		AssessmentType:  a.Type,
		Name:            a.Name,
		Timestamp:       a.Timestamp,
		FindingsCount:   len(shareable),
		Findings:        shareable,
		SeveritySummary: SummarizeSeverities(shareable),
		Metadata: map[string]string{
			"source":         sourceEntity,
			"classification": SharedClassification,
		},
	}
}

// FullResults returns the complete internal view including findings
// that must never leave the network.
func (a *Assessment) FullResults() Results {
	all := a.Findings()
	return Results{
		AssessmentID:    a.ID,
		AssessmentType:  a.Type,
		Name:            a.Name,
		Timestamp:       a.Timestamp,
		FindingsCount:   len(all),
		Findings:        all,
		SeveritySummary: SummarizeSeverities(all),
		Metadata: map[string]string{
			"tribe":        TribeName,
			"jurisdiction": Jurisdiction,
		},
		ProtectionNote: protectionNote,
	}
}

// ShareableFindings filters findings down to the subset whose protection
// level permits export, preserving input order.
func ShareableFindings(findings []Finding) []Finding {
	out := make([]Finding, 0, len(findings))
	for _, f := range findings {
		if f.ProtectionLevel.Shareable() {
			out = append(out, f)
		}
	}
	return out
}

// SummarizeSeverities tallies findings per severity bucket. Unknown
// severities count toward the info bucket.
func SummarizeSeverities(findings []Finding) SeveritySummary {
	var s SeveritySummary
	for _, f := range findings {
		switch f.Severity.Bucket() {
		case SeverityCritical:
			s.Critical++
		case SeverityHigh:
			s.High++
		case SeverityMedium:
			s.Medium++
		case SeverityLow:
			s.Low++
		default:
			s.Info++
		}
	}
	return s
}

func newAssessmentID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	h := sha256.Sum256([]byte(time.Now().UTC().Format(time.RFC3339Nano) + hex.EncodeToString(buf)))
	return hex.EncodeToString(h[:])[:16]
}

func newFindingID(assessmentID string, ordinal int) string {
	h := sha256.Sum256([]byte(assessmentID + strconv.Itoa(ordinal)))
	return hex.EncodeToString(h[:])[:12]
}
