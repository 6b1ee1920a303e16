// Package detectors implements the closed set of scan detectors: the
// secret pattern matcher, the entropy analyzer, the structural token
// analyzer, and the page-hygiene checks (cookies, headers, PII).
//
// A detector is a pure function of an immutable ScanContext. It must not
// block on anything outside the context and must not retain raw secret
// values in the findings it emits.
package detectors

import (
	"time"

	"github.com/glasscan/glasscan/internal/patterns"
	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

// Detector pairs a stable identifier with a run function. The set is known
// at build time; there is no open-ended registration.
type Detector struct {
	ID  string
	Run func(sc signals.ScanContext) []types.Finding
}

// ForDepth returns the detectors enabled for a scan depth, in execution
// order. Quick scans run only the cheap high-signal detectors; deep scans
// add PII extraction over response bodies.
func ForDepth(depth signals.Depth, pats []patterns.Pattern) []Detector {
	base := []Detector{
		Secrets(pats),
		Tokens(),
		Cookies(),
	}
	if depth == signals.DepthQuick {
		return base
	}
	std := append(base, Entropy(), Headers())
	if depth == signals.DepthDeep {
		return append(std, PII())
	}
	return std
}

// IDs lists every detector identifier across all depths.
func IDs() []string {
	return []string{"secrets", "tokens", "cookies", "entropy", "headers", "pii"}
}

// source is one scannable text surface plus a way to locate offsets in it.
type source struct {
	text string
	loc  func(offset int) types.Location
	tags []string
}

// textSources flattens a scan context into the surfaces text detectors walk:
// script bodies, storage values, cookie values, and network bodies.
func textSources(sc signals.ScanContext) []source {
	var out []source
	for _, s := range sc.Capture.Scripts {
		s := s
		out = append(out, source{
			text: s.Content,
			loc: func(off int) types.Location {
				return types.Location{Kind: types.LocScript, ScriptURL: s.SourceURL, Offset: off}
			},
			tags: []string{"script"},
		})
	}
	for _, item := range sc.Capture.Storage {
		item := item
		out = append(out, source{
			text: item.Value,
			loc: func(int) types.Location {
				return types.Location{Kind: types.LocStorage, StorageKey: item.Kind + ":" + item.Key}
			},
			tags: []string{"storage"},
		})
	}
	for _, c := range sc.Capture.Cookies {
		c := c
		out = append(out, source{
			text: c.Value,
			loc: func(int) types.Location {
				return types.Location{Kind: types.LocCookie, CookieName: c.Name}
			},
			tags: []string{"cookie"},
		})
	}
	for _, rec := range sc.Capture.Network {
		rec := rec
		body := rec.RequestBody
		if rec.ResponseBody != "" {
			body = body + "\n" + rec.ResponseBody
		}
		if body == "" {
			continue
		}
		out = append(out, source{
			text: body,
			loc: func(int) types.Location {
				return types.Location{Kind: types.LocNetwork, NetworkURL: rec.URL}
			},
			tags: []string{"network"},
		})
	}
	return out
}

// newFinding fills the fields every detector sets the same way.
func newFinding(sc signals.ScanContext, t types.FindingType, sev types.Severity, loc types.Location, evidence string) types.Finding {
	return types.Finding{
		ID:          types.FindingID(t, loc, evidence),
		Type:        t,
		Severity:    sev,
		Location:    loc,
		Evidence:    evidence,
		Environment: sc.Environment,
		Timestamp:   time.Now().UTC(),
	}
}

// Dedupe collapses findings that agree on (type, masked evidence, location),
// keeping the first occurrence. Detector execution order is deterministic,
// so the survivor is stable across runs.
func Dedupe(findings []types.Finding) []types.Finding {
	seen := make(map[string]bool, len(findings))
	out := make([]types.Finding, 0, len(findings))
	for _, f := range findings {
		key := string(f.Type) + "|" + f.Evidence + "|" + f.Location.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
