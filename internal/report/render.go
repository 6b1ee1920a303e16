package report

import (
	"fmt"
	"io"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/glasscan/glasscan/internal/types"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
}

// PrintTable renders a scan result as a terminal table with a summary
// footer. Findings are expected to arrive pre-sorted by severity.
func PrintTable(w io.Writer, res types.ScanResult, opts PrintOptions) {
	if len(res.Findings) == 0 {
		fmt.Fprintln(w, "No exposures found ✅")
	} else {
		table := tablewriter.NewTable(w)
		table.Header("SEVERITY", "TYPE", "LOCATION", "EVIDENCE", "CONF")
		for _, f := range res.Findings {
			sev := string(f.Severity)
			if !opts.NoColor {
				sev = colorSeverity(f.Severity)
			}
			table.Append([]string{
				sev,
				string(f.Type),
				f.Location.String(),
				f.Evidence,
				fmt.Sprintf("%.2f", f.Confidence),
			})
		}
		_ = table.Render()
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d)\n",
		res.Summary.Total,
		res.Summary.BySeverity[types.SevCritical],
		res.Summary.BySeverity[types.SevHigh],
		res.Summary.BySeverity[types.SevMedium],
		res.Summary.BySeverity[types.SevLow],
	)
	grade := res.Summary.Grade
	if !opts.NoColor {
		grade = colorGrade(grade)
	}
	fmt.Fprintf(w, "Risk score: %.1f/100  Grade: %s\n", res.Summary.RiskScore, grade)
	if opts.Duration > 0 {
		fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
	}
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "\x1b[35mcritical\x1b[0m" // magenta
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m" // red
	case types.SevMedium:
		return "\x1b[33mmedium\x1b[0m" // yellow
	case types.SevLow:
		return "\x1b[36mlow\x1b[0m" // cyan
	default:
		return string(s)
	}
}

func colorGrade(g string) string {
	switch g {
	case "A", "B":
		return "\x1b[32m" + g + "\x1b[0m" // green
	case "C", "D":
		return "\x1b[33m" + g + "\x1b[0m" // yellow
	default:
		return "\x1b[31m" + g + "\x1b[0m" // red
	}
}
