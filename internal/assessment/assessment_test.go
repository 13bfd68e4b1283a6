package assessment

import "testing"

func TestShareableFindingsFilterByProtectionLevel(t *testing.T) {
	a := New(TypeSecurity, "Filter Assessment")
	a.AddFinding("public_finding", SeverityHigh, "Public information", ProtectionPublic)
	a.AddFinding("sensitive_finding", SeverityMedium, "Partner-shareable detail", ProtectionSensitive)
	a.AddFinding("confidential_finding", SeverityHigh, "Confidential tribal information", ProtectionConfidential)
	a.AddFinding("sovereign_finding", SeverityLow, "Tribal sovereign data", ProtectionTribalSovereign)

	results := a.ShareableResults()
	if results.FindingsCount != 2 {
		t.Fatalf("expected 2 shareable findings, got %d", results.FindingsCount)
	}
	for _, f := range results.Findings {
		if !f.ProtectionLevel.Shareable() {
			t.Fatalf("non-shareable finding leaked: %s (%s)", f.ID, f.ProtectionLevel)
		}
	}
	if results.Findings[0].Type != "public_finding" || results.Findings[1].Type != "sensitive_finding" {
		t.Fatalf("shareable findings out of input order: %s, %s", results.Findings[0].Type, results.Findings[1].Type)
	}
}

func TestShareableAndFullCountsDiffer(t *testing.T) {
	a := New(TypeSecurity, "Count Assessment")
	a.AddFinding("a", SeverityInfo, "public info finding", ProtectionPublic)
	a.AddFinding("b", SeverityInfo, "sovereign info finding", ProtectionTribalSovereign)

	if got := a.ShareableResults().FindingsCount; got != 1 {
		t.Fatalf("findings_count = %d, want 1", got)
	}
	if got := a.FullResults().FindingsCount; got != 2 {
		t.Fatalf("full findings_count = %d, want 2", got)
	}
}

func TestSummarizeSeveritiesBucketsUnknownAsInfo(t *testing.T) {
	findings := []Finding{
		{Severity: SeverityCritical},
		{Severity: SeverityHigh},
		{Severity: "HIGH"},
		{Severity: "unheard_of"},
		{Severity: ""},
		{Severity: SeverityLow},
	}
	got := SummarizeSeverities(findings)
	want := SeveritySummary{Critical: 1, High: 2, Low: 1, Info: 2}
	if got != want {
		t.Fatalf("severity summary = %+v, want %+v", got, want)
	}
}

func TestSeverityBucket(t *testing.T) {
	cases := []struct {
		in   Severity
		want Severity
	}{
		{SeverityCritical, SeverityCritical},
		{"Medium", SeverityMedium},
		{" low ", SeverityLow},
		{"bogus", SeverityInfo},
		{"", SeverityInfo},
	}
	for _, tc := range cases {
		if got := tc.in.Bucket(); got != tc.want {
			t.Fatalf("Bucket(%q) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestParseSeverity(t *testing.T) {
	if got := ParseSeverity("CRITICAL"); got != SeverityCritical {
		t.Fatalf("ParseSeverity(CRITICAL) = %s", got)
	}
	if got := ParseSeverity("nonsense"); got != SeverityInfo {
		t.Fatalf("unknown severity must parse to info, got %s", got)
	}
}

func TestParseProtectionLevel(t *testing.T) {
	level, ok := ParseProtectionLevel(" Tribal_Sovereign ")
	if !ok || level != ProtectionTribalSovereign {
		t.Fatalf("ParseProtectionLevel = %s, %v", level, ok)
	}
	if _, ok := ParseProtectionLevel("classified"); ok {
		t.Fatalf("unknown protection level must not parse")
	}
}

func TestProtectionLevelShareable(t *testing.T) {
	cases := []struct {
		level ProtectionLevel
		want  bool
	}{
		{ProtectionPublic, true},
		{ProtectionSensitive, true},
		{ProtectionConfidential, false},
		{ProtectionTribalSovereign, false},
	}
	for _, tc := range cases {
		if got := tc.level.Shareable(); got != tc.want {
			t.Fatalf("Shareable(%s) = %v, want %v", tc.level, got, tc.want)
		}
	}
}

func TestResultsViewsCarryDistinctMetadata(t *testing.T) {
	a := New(TypeSecurity, "Metadata Assessment")
	a.AddFinding("check", SeverityInfo, "shareable detail", ProtectionPublic)

	shareable := a.ShareableResults()
	if shareable.Metadata["source"] != "Tribal Sovereign Entity" {
		t.Fatalf("unexpected shareable source: %q", shareable.Metadata["source"])
	}
	if shareable.Metadata["classification"] != SharedClassification {
		t.Fatalf("unexpected shareable classification: %q", shareable.Metadata["classification"])
	}
	if shareable.ProtectionNote != "" {
		t.Fatalf("shareable view must not carry the internal protection note")
	}

	full := a.FullResults()
	if full.Metadata["tribe"] != TribeName || full.Metadata["jurisdiction"] != Jurisdiction {
		t.Fatalf("unexpected full metadata: %v", full.Metadata)
	}
	if full.ProtectionNote == "" {
		t.Fatalf("full view must carry the internal protection note")
	}
}

func TestFindingIDsAreStablePerOrdinal(t *testing.T) {
	a := New(TypeSecurity, "ID Assessment")
	first := a.AddFinding("one", SeverityInfo, "first", ProtectionPublic)
	second := a.AddFinding("two", SeverityInfo, "second", ProtectionPublic)

	if len(first.ID) != 12 || len(second.ID) != 12 {
		t.Fatalf("finding ids must be 12 hex chars, got %q and %q", first.ID, second.ID)
	}
	if first.ID == second.ID {
		t.Fatalf("finding ids must differ per ordinal")
	}
	if first.ID != newFindingID(a.ID, 0) {
		t.Fatalf("finding id not derived from assessment id and ordinal")
	}
	if len(a.ID) != 16 {
		t.Fatalf("assessment id must be 16 hex chars, got %q", a.ID)
	}
}
