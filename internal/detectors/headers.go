package detectors

import (
	"fmt"
	"strings"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

type requiredHeader struct {
	name     string
	severity types.Severity
	why      string
}

var requiredHeaders = []requiredHeader{
	{"content-security-policy", types.SevHigh, "Without CSP, injected script runs with full page privileges."},
	{"strict-transport-security", types.SevHigh, "Without HSTS, first visits can be downgraded to plaintext HTTP."},
	{"x-content-type-options", types.SevMedium, "Without nosniff, browsers may MIME-sniff responses into executable types."},
	{"x-frame-options", types.SevMedium, "Without frame restrictions the page can be embedded and clickjacked."},
	{"referrer-policy", types.SevLow, "Without a referrer policy, full URLs leak to third-party destinations."},
}

// Headers builds the missing-security-header detector. It inspects the main
// document response; API responses legitimately skip several of these.
func Headers() Detector {
	return Detector{
		ID: "headers",
		Run: func(sc signals.ScanContext) []types.Finding {
			doc, ok := documentResponse(sc)
			if !ok {
				return nil
			}
			present := make(map[string]bool, len(doc.ResponseHeaders))
			for k := range doc.ResponseHeaders {
				present[strings.ToLower(k)] = true
			}
			var out []types.Finding
			for _, h := range requiredHeaders {
				if present[h.name] {
					continue
				}
				loc := types.Location{Kind: types.LocHeader, HeaderName: h.name}
				f := newFinding(sc, types.TypeMissingHeader, h.severity, loc, "")
				f.Title = fmt.Sprintf("Missing %s header", h.name)
				f.Description = h.why
				f.Remediation = []string{fmt.Sprintf("Send %s on the main document response.", h.name)}
				f.Confidence = 1.0
				f.Tags = []string{"header"}
				out = append(out, f)
			}
			return out
		},
	}
}

// documentResponse picks the response whose headers the header checks apply
// to: the record flagged as the document, else the first HTML response.
func documentResponse(sc signals.ScanContext) (signals.NetworkRecord, bool) {
	for _, rec := range sc.Capture.Network {
		if rec.IsDocument {
			return rec, true
		}
	}
	for _, rec := range sc.Capture.Network {
		for k, v := range rec.ResponseHeaders {
			if strings.EqualFold(k, "content-type") && strings.Contains(strings.ToLower(v), "text/html") {
				return rec, true
			}
		}
	}
	return signals.NetworkRecord{}, false
}
