package relay

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/verdigris-botanica/sovereign-relay/internal/report"
	"github.com/verdigris-botanica/sovereign-relay/internal/tracker"
)

func readLogLines(t *testing.T, path string) []tracker.Record {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()

	var records []tracker.Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var line struct {
			LogTimestamp string         `json:"log_timestamp"`
			Record       tracker.Record `json:"record"`
		}
		if err := json.Unmarshal(scanner.Bytes(), &line); err != nil {
			t.Fatalf("decode log line: %v", err)
		}
		if line.LogTimestamp == "" {
			t.Fatalf("log line missing log_timestamp: %s", scanner.Text())
		}
		records = append(records, line.Record)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan log: %v", err)
	}
	return records
}

func TestRunProducesLoggedTransmissions(t *testing.T) {
	dir := t.TempDir()

	rep, err := Run(Config{OutputDir: dir}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.TotalAssessments != 2 {
		t.Fatalf("TotalAssessments = %d, want 2", rep.TotalAssessments)
	}
	if len(rep.Transmissions) != 2 {
		t.Fatalf("got %d transmissions, want 2", len(rep.Transmissions))
	}
	wantTypes := []string{"security_assessment", "infrastructure_assessment"}
	for i, tx := range rep.Transmissions {
		if tx.DataType != wantTypes[i] {
			t.Fatalf("transmission %d data type = %q, want %q", i, tx.DataType, wantTypes[i])
		}
		if tx.Status != string(tracker.StatusLogged) {
			t.Fatalf("transmission %d status = %q, want LOGGED", i, tx.Status)
		}
		if len(tx.TransmissionID) != 32 {
			t.Fatalf("transmission %d id %q, want 32 hex chars", i, tx.TransmissionID)
		}
		if len(tx.ReceiptID) != 16 {
			t.Fatalf("transmission %d receipt %q, want 16 hex chars", i, tx.ReceiptID)
		}
		if tx.DataSizeBytes <= 0 {
			t.Fatalf("transmission %d has no payload size", i)
		}
	}

	// The security run exposes 2 of its 3 findings; infrastructure both.
	if rep.Transmissions[0].FindingsCount != 2 {
		t.Fatalf("security shareable findings = %d, want 2", rep.Transmissions[0].FindingsCount)
	}
	if rep.Transmissions[1].FindingsCount != 2 {
		t.Fatalf("infrastructure shareable findings = %d, want 2", rep.Transmissions[1].FindingsCount)
	}
	if rep.TotalFindings != 4 {
		t.Fatalf("TotalFindings = %d, want 4 shareable findings", rep.TotalFindings)
	}
	if !rep.TribalIPProtected {
		t.Fatal("report does not flag tribal IP as protected")
	}
}

func TestRunWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()

	rep, err := Run(Config{OutputDir: dir}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for _, path := range []string{rep.LogFile, rep.SummaryFile, rep.AuditExportFile, rep.ChecksumsFile} {
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("missing artifact %s: %v", path, err)
		}
	}
	if rep.LogFile != report.TransmissionLogPath(dir) {
		t.Fatalf("log file at %q, want %q", rep.LogFile, report.TransmissionLogPath(dir))
	}

	records := readLogLines(t, rep.LogFile)
	if len(records) != 2 {
		t.Fatalf("log has %d lines, want 2", len(records))
	}
	for _, rec := range records {
		// The logged line captures the record before its status flips
		// to LOGGED.
		if rec.Status != tracker.StatusTransmitted {
			t.Fatalf("logged record %s status = %q, want TRANSMITTED", rec.ID, rec.Status)
		}
		snapshot := report.SnapshotPath(dir, rec.ID)
		if _, err := os.Stat(snapshot); err != nil {
			t.Fatalf("missing snapshot %s: %v", snapshot, err)
		}
	}

	var summary tracker.Summary
	raw, err := os.ReadFile(rep.SummaryFile)
	if err != nil {
		t.Fatalf("read summary: %v", err)
	}
	if err := json.Unmarshal(raw, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if summary.TotalTransmissions != 2 {
		t.Fatalf("summary total = %d, want 2", summary.TotalTransmissions)
	}
	if summary.StatusBreakdown[tracker.StatusLogged] != 2 {
		t.Fatalf("summary logged count = %d, want 2", summary.StatusBreakdown[tracker.StatusLogged])
	}

	sums, err := os.ReadFile(rep.ChecksumsFile)
	if err != nil {
		t.Fatalf("read checksums: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(sums)), "\n")
	if len(lines) != 4 {
		t.Fatalf("checksums has %d lines, want 4 (summary, audit export, 2 snapshots)", len(lines))
	}
}

func TestRunSovereignDemoRefusesTransmission(t *testing.T) {
	dir := t.TempDir()

	rep, err := Run(Config{OutputDir: dir, SovereignDemo: true}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(rep.Transmissions) != 3 {
		t.Fatalf("got %d transmissions, want 3", len(rep.Transmissions))
	}
	demo := rep.Transmissions[2]
	if demo.DataType != "sovereign_data" {
		t.Fatalf("demo data type = %q", demo.DataType)
	}
	if demo.Status != string(tracker.StatusLogged) {
		t.Fatalf("demo status = %q, want LOGGED (refused records are still logged)", demo.Status)
	}
	if demo.TransmissionID != "" {
		t.Fatal("refused record must not carry a transmission id")
	}

	records := readLogLines(t, rep.LogFile)
	if len(records) != 3 {
		t.Fatalf("log has %d lines, want 3", len(records))
	}
	refused := records[2]
	if refused.Status != tracker.StatusFailed {
		t.Fatalf("refused record logged with status %q, want FAILED", refused.Status)
	}
	var sawRefusal bool
	for _, entry := range refused.AuditTrail {
		if entry.Action == tracker.ActionValidationFailed &&
			strings.Contains(entry.Details, "TRIBAL_SOVEREIGN data cannot leave network") {
			sawRefusal = true
		}
	}
	if !sawRefusal {
		t.Fatal("refused record audit trail does not explain the sovereignty refusal")
	}

	if rep.Summary.StatusBreakdown[tracker.StatusLogged] != 3 {
		t.Fatalf("summary logged count = %d, want 3", rep.Summary.StatusBreakdown[tracker.StatusLogged])
	}
	if rep.Summary.ClassificationBreakdown[tracker.ClassificationTribalSovereign] != 1 {
		t.Fatal("summary does not count the sovereign record")
	}
}

func TestRunWithPassphraseDerivedKey(t *testing.T) {
	dir := t.TempDir()

	rep, err := Run(Config{OutputDir: dir, Passphrase: "wind-river-basket"}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, tx := range rep.Transmissions {
		if tx.Status != string(tracker.StatusLogged) {
			t.Fatalf("transmission %s status = %q", tx.RecordID, tx.Status)
		}
	}
}

func TestRunTraceIsOrdered(t *testing.T) {
	rep, err := Run(Config{OutputDir: t.TempDir()}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.Trace) == 0 {
		t.Fatal("run produced no trace")
	}
	for i, entry := range rep.Trace {
		if entry.Order != i+1 {
			t.Fatalf("trace entry %d has order %d", i, entry.Order)
		}
		if entry.Phase == "" || entry.Result == "" {
			t.Fatalf("trace entry %d incomplete: %+v", i, entry)
		}
	}
}
