package report

import (
	"fmt"
	"io"

	"github.com/glasscan/glasscan/internal/types"
)

// WriteMarkdown renders a scan result as a Markdown report suitable for
// pasting into an issue or a pull request comment.
func WriteMarkdown(w io.Writer, res types.ScanResult) error {
	fmt.Fprintf(w, "# Glasscan report: %s\n\n", res.Target)
	fmt.Fprintf(w, "- Scan ID: `%s`\n", res.ID)
	fmt.Fprintf(w, "- Status: %s\n", res.Status)
	fmt.Fprintf(w, "- Started: %s\n", res.StartedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(w, "- Risk score: **%.1f/100** (grade %s)\n\n", res.Summary.RiskScore, res.Summary.Grade)

	fmt.Fprintln(w, "| Severity | Count |")
	fmt.Fprintln(w, "|---|---|")
	for _, sev := range []types.Severity{types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo} {
		if n := res.Summary.BySeverity[sev]; n > 0 {
			fmt.Fprintf(w, "| %s | %d |\n", sev, n)
		}
	}
	fmt.Fprintln(w)

	if len(res.Findings) == 0 {
		fmt.Fprintln(w, "No exposures found.")
		return nil
	}

	fmt.Fprintln(w, "## Findings")
	fmt.Fprintln(w)
	for _, f := range res.Findings {
		title := f.Title
		if title == "" {
			title = string(f.Type)
		}
		fmt.Fprintf(w, "### [%s] %s\n\n", f.Severity, title)
		if f.Description != "" {
			fmt.Fprintf(w, "%s\n\n", f.Description)
		}
		fmt.Fprintf(w, "- Location: `%s`\n", f.Location.String())
		if f.Evidence != "" {
			fmt.Fprintf(w, "- Evidence: `%s`\n", f.Evidence)
		}
		fmt.Fprintf(w, "- Confidence: %.2f\n", f.Confidence)
		if f.Impact != "" {
			fmt.Fprintf(w, "- Impact: %s\n", f.Impact)
		}
		for _, r := range f.Remediation {
			fmt.Fprintf(w, "- Remediation: %s\n", r)
		}
		fmt.Fprintln(w)
	}
	return nil
}
