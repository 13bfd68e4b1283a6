package tracker

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// AuditEntry is one timestamped action on a record's audit trail.
type AuditEntry struct {
	Timestamp string `json:"timestamp"`
	Action    string `json:"action"`
	Details   string `json:"details"`
}

// Record tracks one transmission attempt of data leaving the network.
// The audit trail is append-only; every state change adds an entry.
type Record struct {
	ID                string         `json:"record_id"`
	DataType          string         `json:"data_type"`
	Destination       string         `json:"destination"`
	Classification    Classification `json:"classification"`
	DataSizeBytes     int            `json:"data_size_bytes"`
	Timestamp         string         `json:"timestamp"`
	Status            Status         `json:"status"`
	DataHash          string         `json:"data_hash"`
	EncryptionMethod  string         `json:"encryption_method"`
	TribalIPProtected bool           `json:"tribal_ip_protected"`
	AuditTrail        []AuditEntry   `json:"audit_trail"`
}

func newRecord(dataType, destination string, classification Classification, dataSizeBytes int) *Record {
	return &Record{
		ID:                newRecordID(),
		DataType:          dataType,
		Destination:       destination,
		Classification:    classification,
		DataSizeBytes:     dataSizeBytes,
		Timestamp:         time.Now().UTC().Format(time.RFC3339Nano),
		Status:            StatusPending,
		TribalIPProtected: true,
	}
}

func (r *Record) AddAuditEntry(action, details string) {
	r.AuditTrail = append(r.AuditTrail, AuditEntry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Action:    action,
		Details:   details,
	})
}

// SetDataHash computes the SHA-256 of the outgoing payload and records it.
func (r *Record) SetDataHash(data []byte) {
	sum := sha256.Sum256(data)
	r.DataHash = hex.EncodeToString(sum[:])
	r.AddAuditEntry(ActionDataHashed, fmt.Sprintf("SHA-256 hash calculated: %s...", r.DataHash[:16]))
}

// SetEncryption records the encryption method applied to the payload.
func (r *Record) SetEncryption(method string) {
	r.EncryptionMethod = method
	r.AddAuditEntry(ActionEncrypted, "Data encrypted using "+method)
}

func (r *Record) MarkTransmitted() {
	r.Status = StatusTransmitted
	r.AddAuditEntry(ActionTransmitted, "Data successfully transmitted to destination")
}

func (r *Record) MarkFailed(reason string) {
	r.Status = StatusFailed
	r.AddAuditEntry(ActionFailed, "Transmission failed: "+reason)
}

func newRecordID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	sum := sha256.Sum256([]byte(time.Now().UTC().Format(time.RFC3339Nano) + hex.EncodeToString(buf)))
	return hex.EncodeToString(sum[:])[:24]
}
