package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// TransmissionLog appends one JSON object per line to the shared
// transmission log. Lines are self-contained, so interleaved writers
// stay readable.
type TransmissionLog struct {
	path string
	file *os.File
	enc  *json.Encoder
}

// LogLine is the shape of one transmission log line.
type LogLine struct {
	LogTimestamp string      `json:"log_timestamp"`
	Record       interface{} `json:"record"`
}

func NewTransmissionLog(path string) (*TransmissionLog, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && dir != "." {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &TransmissionLog{
		path: path,
		file: f,
		enc:  json.NewEncoder(f),
	}, nil
}

func (l *TransmissionLog) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

func (l *TransmissionLog) Close() {
	if l == nil || l.file == nil {
		return
	}
	_ = l.file.Close()
}

// Append writes one {log_timestamp, record} line for the given record.
func (l *TransmissionLog) Append(record interface{}) error {
	if l == nil || l.enc == nil {
		return nil
	}
	return l.enc.Encode(LogLine{
		LogTimestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Record:       record,
	})
}
