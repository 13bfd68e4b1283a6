package report

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Output layout under a log directory. One shared JSONL log, one
// snapshot per record, plus the summary and audit export artifacts.
const (
	TransmissionLogName = "tribal_data_transmission_log.jsonl"
	SummaryName         = "transmission_summary.json"
	AuditExportName     = "complete_audit_log.json"
	ChecksumsName       = "checksums.sha256"

	snapshotPrefix = "transmission_"
)

func TransmissionLogPath(dir string) string {
	return filepath.Join(dir, TransmissionLogName)
}

func SnapshotPath(dir, recordID string) string {
	return filepath.Join(dir, snapshotPrefix+recordID+".json")
}

func SummaryPath(dir string) string {
	return filepath.Join(dir, SummaryName)
}

func AuditExportPath(dir string) string {
	return filepath.Join(dir, AuditExportName)
}

func ChecksumsPath(dir string) string {
	return filepath.Join(dir, ChecksumsName)
}

func WriteJSON(path string, value interface{}) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return err
	}
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
