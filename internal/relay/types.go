package relay

import (
	"github.com/verdigris-botanica/sovereign-relay/internal/assessment"
	"github.com/verdigris-botanica/sovereign-relay/internal/envelope"
	"github.com/verdigris-botanica/sovereign-relay/internal/tracker"
	"go.uber.org/zap"
)

type Config struct {
	// OutputDir receives the transmission log, snapshots, summary,
	// audit export and checksums. Defaults to ./logs.
	OutputDir string

	// Endpoint overrides the simulated intake endpoint.
	Endpoint string

	// Passphrase, when set, derives the envelope key via PBKDF2
	// instead of a random per-run key.
	Passphrase string

	// SovereignDemo adds a TRIBAL_SOVEREIGN record to demonstrate the
	// gate refusing data that must not leave the network.
	SovereignDemo bool
}

// Transmission is the per-assessment outcome row of a run.
type Transmission struct {
	AssessmentID   string `json:"assessment_id"`
	AssessmentType string `json:"assessment_type"`
	DataType       string `json:"data_type"`
	RecordID       string `json:"record_id"`
	TransmissionID string `json:"transmission_id,omitempty"`
	ReceiptID      string `json:"receipt_id,omitempty"`
	Status         string `json:"status"`
	FindingsCount  int    `json:"findings_count"`
	DataSizeBytes  int    `json:"data_size_bytes"`
}

type TraceEntry struct {
	Order   int                    `json:"order"`
	Phase   string                 `json:"phase"`
	Result  string                 `json:"result"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Report summarizes one workflow run.
type Report struct {
	RunID             string          `json:"run_id"`
	StartedAt         string          `json:"started_at"`
	FinishedAt        string          `json:"finished_at"`
	TotalAssessments  int             `json:"total_assessments"`
	TotalFindings     int             `json:"total_findings"`
	TribalIPProtected bool            `json:"tribal_ip_protected"`
	Transmissions     []Transmission  `json:"transmissions"`
	Summary           tracker.Summary `json:"summary"`
	OutputDir         string          `json:"output_dir"`
	LogFile           string          `json:"log_file"`
	SummaryFile       string          `json:"summary_file"`
	AuditExportFile   string          `json:"audit_export_file"`
	ChecksumsFile     string          `json:"checksums_file"`
	Trace             []TraceEntry    `json:"trace"`
}

type runState struct {
	cfg           Config
	log           *zap.SugaredLogger
	system        *assessment.System
	tracker       *tracker.Tracker
	transmitter   *envelope.Transmitter
	transmissions []Transmission
	trace         []TraceEntry
	snapshots     []string
}

func addTrace(state *runState, phase, result string, details map[string]interface{}) {
	state.trace = append(state.trace, TraceEntry{
		Order:   len(state.trace) + 1,
		Phase:   phase,
		Result:  result,
		Details: details,
	})
}
