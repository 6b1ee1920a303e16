package report

import (
	"encoding/json"
	"os"

	"github.com/glasscan/glasscan/internal/types"
)

// Baseline records accepted finding IDs so repeat scans only surface what
// is new. Finding IDs hash (type, location, masked evidence), so a moved or
// changed exposure shows up again.
type Baseline struct {
	Items map[string]bool `json:"items"`
}

func LoadBaseline(path string) (Baseline, error) {
	b := Baseline{Items: map[string]bool{}}
	f, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	_ = json.Unmarshal(f, &b)
	return b, nil
}

func SaveBaseline(path string, findings []types.Finding) error {
	b := Baseline{Items: map[string]bool{}}
	for _, f := range findings {
		b.Items[f.ID] = true
	}
	buf, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, buf, 0644)
}

func FilterNewFindings(findings []types.Finding, base Baseline) []types.Finding {
	var out []types.Finding
	for _, f := range findings {
		if !base.Items[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

// ShouldFail reports whether any finding meets the failOn severity
// threshold. Unknown thresholds default to high.
func ShouldFail(findings []types.Finding, failOn string) bool {
	th := types.Severity(failOn).Rank()
	if th == 0 {
		th = types.SevHigh.Rank()
	}
	for _, f := range findings {
		if f.FalsePositive {
			continue
		}
		if f.Severity.Rank() >= th {
			return true
		}
	}
	return false
}
