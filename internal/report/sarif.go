package report

import (
	"encoding/json"
	"io"

	"github.com/glasscan/glasscan/internal/types"
)

type sarif struct {
	Version string     `json:"version"`
	Schema  string     `json:"$schema"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool    sarifTool     `json:"tool"`
	Results []sarifResult `json:"results"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type sarifResult struct {
	RuleID    string       `json:"ruleId"`
	Level     string       `json:"level"`
	Message   sarifMessage `json:"message"`
	Locations []sarifLoc   `json:"locations"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLoc struct {
	PhysicalLocation sarifPhys `json:"physicalLocation"`
}

type sarifPhys struct {
	ArtifactLocation sarifArt `json:"artifactLocation"`
}

type sarifArt struct {
	URI string `json:"uri"`
}

func sevToLevel(s types.Severity) string {
	switch s {
	case types.SevCritical, types.SevHigh:
		return "error"
	case types.SevMedium:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes a scan result as SARIF 2.1.0 to the provided writer.
// Evidence stays masked; the message carries the finding title, not the match.
func WriteSARIF(w io.Writer, res types.ScanResult, version string) error {
	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{Name: "glasscan", Version: version}},
	}
	for _, f := range res.Findings {
		msg := f.Title
		if msg == "" {
			msg = string(f.Type) + " detected"
		}
		run.Results = append(run.Results, sarifResult{
			RuleID:  string(f.Type),
			Level:   sevToLevel(f.Severity),
			Message: sarifMessage{Text: msg},
			Locations: []sarifLoc{{
				PhysicalLocation: sarifPhys{
					ArtifactLocation: sarifArt{URI: f.Location.String()},
				},
			}},
		})
	}
	doc := sarif{
		Version: "2.1.0",
		Schema:  "https://json.schemastore.org/sarif-2.1.0.json",
		Runs:    []sarifRun{run},
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
