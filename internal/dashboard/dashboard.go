// Package dashboard renders the receiving agency's view of a run: the
// magnitude summary built from the transmission log, and the detailed
// audit trail built from the exported audit log.
package dashboard

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/verdigris-botanica/sovereign-relay/internal/envelope"
	"github.com/verdigris-botanica/sovereign-relay/internal/tracker"
)

const rule = 80

type logLine struct {
	LogTimestamp string         `json:"log_timestamp"`
	Record       tracker.Record `json:"record"`
}

func divider(w io.Writer, ch string) {
	fmt.Fprintln(w, strings.Repeat(ch, rule))
}

// RenderMagnitude prints the assessment magnitude dashboard from the
// JSONL transmission log at logPath.
func RenderMagnitude(w io.Writer, logPath string) error {
	divider(w, "=")
	fmt.Fprintln(w, "CISA TRIBAL ASSESSMENT DASHBOARD")
	fmt.Fprintln(w, "Cybersecurity and Infrastructure Security Agency")
	divider(w, "=")
	fmt.Fprintln(w)

	records, err := readTransmissions(logPath)
	if os.IsNotExist(err) {
		fmt.Fprintln(w, "No transmission data found. Run the assessment first.")
		return nil
	}
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "No transmissions recorded yet.")
		return nil
	}

	fmt.Fprintln(w, "MAGNITUDE SUMMARY")
	divider(w, "-")
	fmt.Fprintln(w, "Source: Verdigris Botanica Tribal Nation")
	fmt.Fprintf(w, "Total Data Transmissions: %d\n", len(records))
	fmt.Fprintln(w)

	var dataTransferred int
	for _, rec := range records {
		dataTransferred += rec.DataSizeBytes

		fmt.Fprintf(w, "Transmission ID: %s\n", orNA(rec.ID))
		fmt.Fprintf(w, "   Type: %s\n", orNA(rec.DataType))
		fmt.Fprintf(w, "   Classification: %s\n", orNA(string(rec.Classification)))
		fmt.Fprintf(w, "   Encryption: %s\n", orNA(rec.EncryptionMethod))
		fmt.Fprintf(w, "   Timestamp: %s\n", orNA(rec.Timestamp))
		fmt.Fprintf(w, "   Status: %s\n", orNA(string(rec.Status)))
		fmt.Fprintf(w, "   Data Hash: %s\n", truncateHash(rec.DataHash))
		fmt.Fprintln(w)
	}

	divider(w, "-")
	fmt.Fprintln(w, "CAPACITY INDICATORS")
	divider(w, "-")
	fmt.Fprintln(w, "* Tribal entity demonstrates secure data transmission capability")
	fmt.Fprintf(w, "* Encryption standards: %s (FIPS 140-2 Compliant)\n", envelope.Algorithm)
	fmt.Fprintln(w, "* Data integrity verification: SHA-256 hashing")
	fmt.Fprintln(w, "* Comprehensive audit logging: ENABLED")
	fmt.Fprintln(w, "* Tribal sovereignty protection: ACTIVE")
	fmt.Fprintf(w, "* Total data transferred: %s bytes\n", groupDigits(dataTransferred))
	fmt.Fprintln(w)

	divider(w, "-")
	fmt.Fprintln(w, "FEDERAL CONTINUITY ASSESSMENT")
	divider(w, "-")
	fmt.Fprintln(w, "* Infrastructure Scalability: DEMONSTRATED")
	fmt.Fprintln(w, "* Security Controls: VALIDATED")
	fmt.Fprintln(w, "* Compliance Capability: CONFIRMED")
	fmt.Fprintln(w, "* Federal Partnership Readiness: VERIFIED")
	fmt.Fprintln(w)

	divider(w, "=")
	fmt.Fprintln(w, "Assessment Complete - Tribal Capacity Validated")
	fmt.Fprintln(w, "Systems speak for themselves through demonstrated capability")
	divider(w, "=")
	return nil
}

// RenderAuditTrail prints the exported audit log at auditPath with every
// record's full trail.
func RenderAuditTrail(w io.Writer, auditPath string) error {
	fmt.Fprintln(w)
	divider(w, "=")
	fmt.Fprintln(w, "DETAILED AUDIT TRAIL")
	divider(w, "=")
	fmt.Fprintln(w)

	raw, err := os.ReadFile(auditPath)
	if os.IsNotExist(err) {
		fmt.Fprintln(w, "No audit log found.")
		return nil
	}
	if err != nil {
		return err
	}

	var export tracker.AuditExport
	if err := json.Unmarshal(raw, &export); err != nil {
		return fmt.Errorf("audit log parse failed: %w", err)
	}

	fmt.Fprintf(w, "Audit Log Generated: %s\n", orNA(export.ExportTimestamp))
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Summary:")
	fmt.Fprintf(w, "  - Total Transmissions: %d\n", export.Summary.TotalTransmissions)
	fmt.Fprintf(w, "  - Status Breakdown: %s\n", statusCounts(export.Summary.StatusBreakdown))
	fmt.Fprintf(w, "  - Classifications: %s\n", classificationCounts(export.Summary.ClassificationBreakdown))
	fmt.Fprintf(w, "  - Destinations: %s\n", countLine(export.Summary.DestinationBreakdown))
	fmt.Fprintln(w)

	for i, rec := range export.Records {
		fmt.Fprintf(w, "Record %d:\n", i+1)
		fmt.Fprintf(w, "  ID: %s\n", orNA(rec.ID))
		fmt.Fprintf(w, "  Type: %s\n", orNA(rec.DataType))
		fmt.Fprintf(w, "  Classification: %s\n", orNA(string(rec.Classification)))
		if len(rec.AuditTrail) > 0 {
			fmt.Fprintf(w, "  Audit Trail (%d entries):\n", len(rec.AuditTrail))
			for _, entry := range rec.AuditTrail {
				fmt.Fprintf(w, "    - [%s] %s\n", orNA(entry.Timestamp), orNA(entry.Action))
				if entry.Details != "" {
					fmt.Fprintf(w, "      %s\n", entry.Details)
				}
			}
		}
		fmt.Fprintln(w)
	}
	return nil
}

func readTransmissions(logPath string) ([]tracker.Record, error) {
	f, err := os.Open(logPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []tracker.Record
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var line logLine
		if err := json.Unmarshal([]byte(text), &line); err != nil {
			return nil, fmt.Errorf("transmission log parse failed: %w", err)
		}
		records = append(records, line.Record)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func truncateHash(hash string) string {
	if hash == "" {
		return "N/A"
	}
	if len(hash) > 32 {
		return hash[:32] + "..."
	}
	return hash
}

func statusCounts(counts map[tracker.Status]int) string {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[string(k)] = v
	}
	return countLine(out)
}

func classificationCounts(counts map[tracker.Classification]int) string {
	out := make(map[string]int, len(counts))
	for k, v := range counts {
		out[string(k)] = v
	}
	return countLine(out)
}

func countLine(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, counts[k]))
	}
	return strings.Join(parts, ", ")
}

// groupDigits renders n with thousands separators, e.g. 1234567 ->
// "1,234,567".
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
