package tracker

import (
	"fmt"
	"os"
	"time"

	"github.com/verdigris-botanica/sovereign-relay/internal/report"
)

// Tracker records every transmission of data leaving the secure network
// and enforces the classification gate before approval.
type Tracker struct {
	logDir  string
	records []*Record
	log     *report.TransmissionLog
}

// Summary aggregates tracked transmissions by status, classification
// and destination.
type Summary struct {
	TotalTransmissions      int                    `json:"total_transmissions"`
	StatusBreakdown         map[Status]int         `json:"status_breakdown"`
	ClassificationBreakdown map[Classification]int `json:"classification_breakdown"`
	DestinationBreakdown    map[string]int         `json:"destination_breakdown"`
	LogFile                 string                 `json:"log_file"`
}

// AuditExport is the complete audit log written for compliance review.
type AuditExport struct {
	ExportTimestamp string   `json:"export_timestamp"`
	Summary         Summary  `json:"summary"`
	Records         []Record `json:"records"`
}

func New(logDir string) (*Tracker, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("log directory create failed: %w", err)
	}
	log, err := report.NewTransmissionLog(report.TransmissionLogPath(logDir))
	if err != nil {
		return nil, fmt.Errorf("transmission log open failed: %w", err)
	}
	return &Tracker{logDir: logDir, log: log}, nil
}

func (t *Tracker) Close() {
	if t == nil {
		return
	}
	t.log.Close()
}

func (t *Tracker) LogPath() string {
	return t.log.Path()
}

// CreateRecord registers a new transmission attempt in PENDING state.
func (t *Tracker) CreateRecord(dataType, destination string, classification Classification, dataSizeBytes int) *Record {
	r := newRecord(dataType, destination, classification, dataSizeBytes)
	t.records = append(t.records, r)
	r.AddAuditEntry(ActionCreated, "Transmission record created")
	return r
}

// ValidateTransmission runs the classification gate over a record.
// Checks apply in fixed precedence: sovereign classification, then
// encryption method, then data hash. Exactly one audit entry is added
// per call. Passing moves the record to APPROVED.
func (t *Tracker) ValidateTransmission(r *Record) bool {
	if r.Classification == ClassificationTribalSovereign {
		r.AddAuditEntry(ActionValidationFailed, "TRIBAL_SOVEREIGN data cannot leave network")
		return false
	}
	if r.EncryptionMethod == "" {
		r.AddAuditEntry(ActionValidationFailed, "No encryption method specified")
		return false
	}
	if r.DataHash == "" {
		r.AddAuditEntry(ActionValidationFailed, "Data hash not calculated")
		return false
	}
	r.AddAuditEntry(ActionValidationPassed, "All validation checks passed")
	r.Status = StatusApproved
	return true
}

// LogTransmission appends the record to the shared JSONL log, writes its
// snapshot file, and moves the record to LOGGED. Logging happens even
// for records that failed validation; the persisted line and snapshot
// carry the status the record had on entry.
func (t *Tracker) LogTransmission(r *Record) error {
	if err := t.log.Append(r); err != nil {
		return fmt.Errorf("transmission log append failed: %w", err)
	}
	if err := report.WriteJSON(report.SnapshotPath(t.logDir, r.ID), r); err != nil {
		return fmt.Errorf("snapshot write failed: %w", err)
	}
	r.Status = StatusLogged
	r.AddAuditEntry(ActionLogged, "Record logged to "+t.LogPath())
	return nil
}

func (t *Tracker) Summary() Summary {
	s := Summary{
		TotalTransmissions:      len(t.records),
		StatusBreakdown:         map[Status]int{},
		ClassificationBreakdown: map[Classification]int{},
		DestinationBreakdown:    map[string]int{},
		LogFile:                 t.LogPath(),
	}
	for _, r := range t.records {
		s.StatusBreakdown[r.Status]++
		s.ClassificationBreakdown[r.Classification]++
		s.DestinationBreakdown[r.Destination]++
	}
	return s
}

func (t *Tracker) Records() []*Record {
	return append([]*Record{}, t.records...)
}

func (t *Tracker) RecordsByDestination(destination string) []*Record {
	out := []*Record{}
	for _, r := range t.records {
		if r.Destination == destination {
			out = append(out, r)
		}
	}
	return out
}

// ExportAuditLog writes the complete audit log for compliance review.
func (t *Tracker) ExportAuditLog(path string) error {
	records := make([]Record, 0, len(t.records))
	for _, r := range t.records {
		records = append(records, *r)
	}
	export := AuditExport{
		ExportTimestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Summary:         t.Summary(),
		Records:         records,
	}
	if err := report.WriteJSON(path, export); err != nil {
		return fmt.Errorf("audit log export failed: %w", err)
	}
	return nil
}
