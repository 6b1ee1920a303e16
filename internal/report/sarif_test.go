package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/glasscan/glasscan/internal/types"
)

func TestWriteSARIF_Golden(t *testing.T) {
	res := sampleResult()
	res.Findings = append(res.Findings, types.Finding{
		ID:       "f2",
		Type:     types.TypeMissingHeader,
		Severity: types.SevMedium,
		Location: types.Location{Kind: types.LocHeader, HeaderName: "content-security-policy"},
	})

	var buf bytes.Buffer
	if err := WriteSARIF(&buf, res, "1.0.0"); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID  string `json:"ruleId"`
				Level   string `json:"level"`
				Message struct {
					Text string `json:"text"`
				} `json:"message"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("unmarshal: %v; body=%s", err, buf.String())
	}
	if doc.Version != "2.1.0" {
		t.Fatalf("expected SARIF 2.1.0, got %v", doc.Version)
	}
	if len(doc.Runs) != 1 || doc.Runs[0].Tool.Driver.Name != "glasscan" {
		t.Fatalf("unexpected runs: %+v", doc.Runs)
	}
	results := doc.Runs[0].Results
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].RuleID != "secret_exposure" || results[0].Level != "error" {
		t.Fatalf("unexpected first result: %+v", results[0])
	}
	if results[1].Level != "warning" {
		t.Fatalf("medium severity should map to warning: %+v", results[1])
	}
	if results[1].Locations[0].PhysicalLocation.ArtifactLocation.URI != "header:content-security-policy" {
		t.Fatalf("unexpected location URI: %+v", results[1].Locations)
	}
	if results[0].Message.Text != "AWS access key in script" {
		t.Fatalf("message should carry the title: %+v", results[0].Message)
	}
}
