package detectors

import (
	"fmt"
	"strings"

	"github.com/glasscan/glasscan/internal/patterns"
	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

// contextWindow is the number of characters inspected on each side of a
// match when evaluating must-include/must-exclude terms and placeholder
// language.
const contextWindow = 100

// placeholderTerms mark sample and template values that must never be
// reported as live secrets.
var placeholderTerms = []string{
	"example", "test", "placeholder", "your-", "your_", "xxx",
	"changeme", "change-me", "sample", "dummy", "fake", "insert",
	"<key>", "todo",
}

// Secrets builds the pattern-matcher detector over the given rule set.
func Secrets(pats []patterns.Pattern) Detector {
	return Detector{
		ID: "secrets",
		Run: func(sc signals.ScanContext) []types.Finding {
			var out []types.Finding
			// One secret reused across locations yields one finding citing
			// the first location, so the seen set spans all sources.
			seen := make(map[string]bool)
			for _, src := range textSources(sc) {
				out = append(out, matchText(sc, src, pats, seen)...)
			}
			return out
		},
	}
}

// matchText runs every pattern against one text surface and converts
// accepted matches into findings.
func matchText(sc signals.ScanContext, src source, pats []patterns.Pattern, seen map[string]bool) []types.Finding {
	var out []types.Finding
	for _, p := range pats {
		idxs := p.Regexp.FindAllStringSubmatchIndex(src.text, -1)
		for _, idx := range idxs {
			start, end := idx[0], idx[1]
			value := src.text[start:end]
			// Patterns with a capture group name the secret inside a wider
			// assignment expression; report only the captured value.
			if p.Regexp.NumSubexp() > 0 && len(idx) >= 4 && idx[2] >= 0 {
				start, end = idx[2], idx[3]
				value = src.text[start:end]
			}
			window := contextAround(src.text, start, end)
			if !contextAccepts(p, window) {
				continue
			}
			if isPlaceholder(value, window) {
				continue
			}
			if p.Validate != nil && !p.Validate(value) {
				continue
			}
			if seen[p.ID+"|"+value] {
				continue
			}
			seen[p.ID+"|"+value] = true

			f := newFinding(sc, types.TypeSecretExposure, p.Severity, src.loc(start), types.Mask(value))
			f.Title = p.Service + " credential exposed"
			f.Description = fmt.Sprintf("A value matching the %s pattern (%s) is present in client-reachable page content.", p.Service, p.ID)
			f.Impact = fmt.Sprintf("Anyone who can load this page can extract the %s credential and use it directly against the service.", p.Service)
			f.AtRiskData = []string{p.Service + " account data"}
			f.Remediation = []string{
				fmt.Sprintf("Revoke the exposed %s credential immediately.", p.Service),
				"Move the secret to a server-side component; clients should call your backend, not the provider.",
				"Audit access logs for use of the credential since it was first deployed.",
			}
			f.Confidence = 0.9
			f.Tags = append(f.Tags, src.tags...)
			f.Tags = append(f.Tags, "pattern:"+p.ID)
			out = append(out, f)
		}
	}
	return out
}

func contextAround(text string, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(text) {
		hi = len(text)
	}
	return strings.ToLower(text[lo:hi])
}

// contextAccepts applies a pattern's must-include/must-exclude terms to the
// lowercased window around a match.
func contextAccepts(p patterns.Pattern, window string) bool {
	for _, term := range p.MustInclude {
		if !strings.Contains(window, strings.ToLower(term)) {
			return false
		}
	}
	for _, term := range p.MustExclude {
		if strings.Contains(window, strings.ToLower(term)) {
			return false
		}
	}
	return true
}

// isPlaceholder drops matches that read like documentation samples, either
// in the value itself or in the surrounding context.
func isPlaceholder(value, window string) bool {
	lower := strings.ToLower(value)
	for _, term := range placeholderTerms {
		if strings.Contains(lower, term) || strings.Contains(window, term) {
			return true
		}
	}
	return false
}
