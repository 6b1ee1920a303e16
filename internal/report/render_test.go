package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/glasscan/glasscan/internal/types"
)

func sampleResult() types.ScanResult {
	return types.ScanResult{
		ID:        "scan-1",
		Target:    "https://app.shop.io",
		Status:    types.StatusCompleted,
		StartedAt: time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC),
		Findings: []types.Finding{{
			ID:         "f1",
			Type:       types.TypeSecretExposure,
			Severity:   types.SevCritical,
			Title:      "AWS access key in script",
			Location:   types.Location{Kind: types.LocScript, ScriptURL: "https://app.shop.io/main.js", Offset: 14},
			Evidence:   "AKIA…2M5P",
			Confidence: 0.9,
		}},
		Summary: types.Summary{
			Total:      1,
			BySeverity: map[types.Severity]int{types.SevCritical: 1},
			RiskScore:  81,
			Grade:      "F",
		},
	}
}

func TestPrintTable_WithFindings(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, sampleResult(), PrintOptions{NoColor: true})
	out := buf.String()
	if !strings.Contains(out, "SEVERITY") {
		t.Fatalf("expected table header with SEVERITY; got: %q", out)
	}
	if !strings.Contains(out, "secret_exposure") {
		t.Fatalf("expected finding type in table; got: %q", out)
	}
	if !strings.Contains(out, "AKIA…2M5P") {
		t.Fatalf("expected masked evidence in table; got: %q", out)
	}
	if !strings.Contains(out, "Grade: F") {
		t.Fatalf("expected grade in footer; got: %q", out)
	}
}

func TestPrintTable_NoFindings_ShowsFooter(t *testing.T) {
	res := types.ScanResult{Summary: types.Summary{Grade: "A"}}
	var buf bytes.Buffer
	PrintTable(&buf, res, PrintOptions{NoColor: true, Duration: 1200 * time.Millisecond})
	out := buf.String()
	if !strings.Contains(out, "No exposures found") {
		t.Fatalf("expected friendly no-findings message; got: %q", out)
	}
	if !strings.Contains(out, "Scan duration: 1.20s") {
		t.Fatalf("expected footer with duration; got: %q", out)
	}
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMarkdown(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Glasscan report: https://app.shop.io",
		"81.0/100",
		"### [critical] AWS access key in script",
		"`AKIA…2M5P`",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("markdown missing %q; got: %q", want, out)
		}
	}
}

func TestShouldFail(t *testing.T) {
	fs := []types.Finding{
		{Severity: types.SevMedium},
		{Severity: types.SevHigh, FalsePositive: true},
	}
	if ShouldFail(fs, "high") {
		t.Fatal("false positive should not trip the threshold")
	}
	if !ShouldFail(fs, "medium") {
		t.Fatal("medium finding should trip a medium threshold")
	}
	if ShouldFail(nil, "bogus") {
		t.Fatal("empty finding set should never fail")
	}
}

func TestBaselineFiltersKnownFindings(t *testing.T) {
	known := types.Finding{ID: "seen", Severity: types.SevHigh}
	fresh := types.Finding{ID: "new", Severity: types.SevHigh}

	path := t.TempDir() + "/baseline.json"
	if err := SaveBaseline(path, []types.Finding{known}); err != nil {
		t.Fatal(err)
	}
	base, err := LoadBaseline(path)
	if err != nil {
		t.Fatal(err)
	}
	out := FilterNewFindings([]types.Finding{known, fresh}, base)
	if len(out) != 1 || out[0].ID != "new" {
		t.Fatalf("baseline filter kept wrong findings: %+v", out)
	}
}
