// Package relay orchestrates the tribal-to-federal reporting workflow:
// run the canned assessments, filter to shareable findings, encrypt and
// simulate transmission to the federal intake, and log every record with
// its full audit trail.
package relay

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/verdigris-botanica/sovereign-relay/internal/assessment"
	"github.com/verdigris-botanica/sovereign-relay/internal/envelope"
	"github.com/verdigris-botanica/sovereign-relay/internal/report"
	"github.com/verdigris-botanica/sovereign-relay/internal/tracker"
	"go.uber.org/zap"
)

const DefaultOutputDir = "./logs"

// Run executes the full workflow and returns its report. A nil logger
// disables logging.
func Run(cfg Config, log *zap.SugaredLogger) (Report, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if strings.TrimSpace(cfg.OutputDir) == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	runID := uuid.New().String()
	startedAt := time.Now().UTC()
	log.Infow("run.start",
		"run_id", runID,
		"output_dir", cfg.OutputDir,
		"sovereign_demo", cfg.SovereignDemo,
	)

	state := runState{cfg: cfg, log: log}
	if err := initState(&state); err != nil {
		return Report{}, err
	}
	defer state.tracker.Close()

	security, infrastructure := runAssessments(&state)

	if err := relayAssessment(&state, security, "security_assessment"); err != nil {
		return Report{}, err
	}
	if err := relayAssessment(&state, infrastructure, "infrastructure_assessment"); err != nil {
		return Report{}, err
	}

	// Shareable findings relayed across both assessments, counted before
	// the demo record so the refusal never inflates the total.
	var totalFindings int
	for _, tx := range state.transmissions {
		totalFindings += tx.FindingsCount
	}

	if cfg.SovereignDemo {
		if err := refuseSovereign(&state, security); err != nil {
			return Report{}, err
		}
	}

	summary, paths, err := writeArtifacts(&state)
	if err != nil {
		return Report{}, err
	}

	finishedAt := time.Now().UTC()
	rep := Report{
		RunID:             runID,
		StartedAt:         startedAt.Format(time.RFC3339Nano),
		FinishedAt:        finishedAt.Format(time.RFC3339Nano),
		TotalAssessments:  2,
		TotalFindings:     totalFindings,
		TribalIPProtected: true,
		Transmissions:     state.transmissions,
		Summary:           summary,
		OutputDir:         cfg.OutputDir,
		LogFile:           state.tracker.LogPath(),
		SummaryFile:       paths.summary,
		AuditExportFile:   paths.auditExport,
		ChecksumsFile:     paths.checksums,
		Trace:             state.trace,
	}
	log.Infow("run.complete",
		"run_id", runID,
		"transmissions", len(rep.Transmissions),
		"log_file", rep.LogFile,
	)
	return rep, nil
}

func initState(state *runState) error {
	tr, err := tracker.New(state.cfg.OutputDir)
	if err != nil {
		return err
	}
	state.tracker = tr

	key, err := envelopeKey(state.cfg)
	if err != nil {
		tr.Close()
		return err
	}
	tx, err := envelope.NewTransmitter(state.cfg.Endpoint, key)
	if err != nil {
		tr.Close()
		return err
	}
	state.transmitter = tx
	state.system = assessment.NewSystem()

	addTrace(state, "init", "ok", map[string]interface{}{
		"output_dir": state.cfg.OutputDir,
		"log_file":   tr.LogPath(),
	})
	return nil
}

func envelopeKey(cfg Config) ([]byte, error) {
	if cfg.Passphrase == "" {
		return nil, nil
	}
	salt, err := envelope.NewSalt()
	if err != nil {
		return nil, err
	}
	return envelope.DeriveKey(cfg.Passphrase, salt), nil
}

func runAssessments(state *runState) (*assessment.Assessment, *assessment.Assessment) {
	security := state.system.RunSecurityAssessment()
	infrastructure := state.system.RunInfrastructureAssessment()

	addTrace(state, "assessments", "ok", map[string]interface{}{
		"security_id":       security.ID,
		"infrastructure_id": infrastructure.ID,
	})
	state.log.Infow("run.assessments",
		"security_id", security.ID,
		"infrastructure_id", infrastructure.ID,
	)
	return security, infrastructure
}

// relayAssessment carries one assessment through the gate: shareable
// payload, tracking record, hash, encryption, validation, simulated
// transmission, and the unconditional final log.
func relayAssessment(state *runState, a *assessment.Assessment, dataType string) error {
	results := a.ShareableResults()
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("shareable payload marshal failed: %w", err)
	}

	rec := state.tracker.CreateRecord(dataType, envelope.DefaultDestination, tracker.ClassificationSensitive, len(payload))
	rec.SetDataHash(payload)
	rec.SetEncryption(envelope.Algorithm)

	tx := Transmission{
		AssessmentID:   results.AssessmentID,
		AssessmentType: string(results.AssessmentType),
		DataType:       dataType,
		RecordID:       rec.ID,
		FindingsCount:  results.FindingsCount,
		DataSizeBytes:  len(payload),
	}

	if state.tracker.ValidateTransmission(rec) {
		result, err := state.transmitter.Transmit(payload, map[string]interface{}{
			"tracking_record_id":    rec.ID,
			"tribal_classification": string(rec.Classification),
			"assessment_type":       string(results.AssessmentType),
			"magnitude":             results.FindingsCount,
		})
		if err != nil {
			rec.MarkFailed(err.Error())
		} else {
			rec.MarkTransmitted()
			tx.TransmissionID = result.TransmissionID
			tx.ReceiptID = result.Response.CISAReceiptID
		}
	} else {
		rec.MarkFailed("validation rejected")
	}

	if err := state.tracker.LogTransmission(rec); err != nil {
		return err
	}
	state.snapshots = append(state.snapshots, report.SnapshotPath(state.cfg.OutputDir, rec.ID))

	tx.Status = string(rec.Status)
	state.transmissions = append(state.transmissions, tx)

	addTrace(state, "transmission", strings.ToLower(tx.Status), map[string]interface{}{
		"data_type":       dataType,
		"record_id":       rec.ID,
		"transmission_id": tx.TransmissionID,
		"receipt_id":      tx.ReceiptID,
	})
	state.log.Infow("run.transmission",
		"data_type", dataType,
		"record_id", rec.ID,
		"status", tx.Status,
		"findings", tx.FindingsCount,
	)
	return nil
}

// refuseSovereign walks a TRIBAL_SOVEREIGN record into the gate so the
// refusal and its audit trail land in the log alongside the real runs.
// The payload is hashed and an encryption method is set, so the only
// check that can fail is the sovereignty check itself.
func refuseSovereign(state *runState, a *assessment.Assessment) error {
	results := a.FullResults()
	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("sovereign payload marshal failed: %w", err)
	}

	rec := state.tracker.CreateRecord("sovereign_data", envelope.DefaultDestination, tracker.ClassificationTribalSovereign, len(payload))
	rec.SetDataHash(payload)
	rec.SetEncryption(envelope.Algorithm)

	if state.tracker.ValidateTransmission(rec) {
		rec.MarkTransmitted()
	} else {
		rec.MarkFailed("validation rejected")
	}
	if err := state.tracker.LogTransmission(rec); err != nil {
		return err
	}
	state.snapshots = append(state.snapshots, report.SnapshotPath(state.cfg.OutputDir, rec.ID))

	state.transmissions = append(state.transmissions, Transmission{
		AssessmentID:   results.AssessmentID,
		AssessmentType: string(results.AssessmentType),
		DataType:       "sovereign_data",
		RecordID:       rec.ID,
		Status:         string(rec.Status),
		FindingsCount:  results.FindingsCount,
		DataSizeBytes:  len(payload),
	})

	addTrace(state, "sovereign_refusal", strings.ToLower(string(rec.Status)), map[string]interface{}{
		"record_id": rec.ID,
	})
	state.log.Infow("run.sovereign_refusal", "record_id", rec.ID, "status", string(rec.Status))
	return nil
}

type artifactPaths struct {
	summary     string
	auditExport string
	checksums   string
}

func writeArtifacts(state *runState) (tracker.Summary, artifactPaths, error) {
	summary := state.tracker.Summary()
	paths := artifactPaths{
		summary:     report.SummaryPath(state.cfg.OutputDir),
		auditExport: report.AuditExportPath(state.cfg.OutputDir),
		checksums:   report.ChecksumsPath(state.cfg.OutputDir),
	}

	if err := report.WriteJSON(paths.summary, summary); err != nil {
		return tracker.Summary{}, artifactPaths{}, err
	}
	if err := state.tracker.ExportAuditLog(paths.auditExport); err != nil {
		return tracker.Summary{}, artifactPaths{}, err
	}

	artifacts := append([]string{paths.summary, paths.auditExport}, state.snapshots...)
	if err := report.WriteChecksums(paths.checksums, artifacts); err != nil {
		return tracker.Summary{}, artifactPaths{}, err
	}

	addTrace(state, "artifacts", "ok", map[string]interface{}{
		"summary":      paths.summary,
		"audit_export": paths.auditExport,
		"checksums":    paths.checksums,
	})
	return summary, paths, nil
}
