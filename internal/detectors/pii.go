package detectors

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

var (
	reEmail = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	reSSN   = regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)
	reCard  = regexp.MustCompile(`\b(?:\d[ -]?){13,16}\b`)
)

// PII builds the personal-data detector. Deep scans only; it walks response
// bodies and storage values, which is where bulk personal data leaks show
// up (over-broad API responses cached client-side).
func PII() Detector {
	return Detector{
		ID: "pii",
		Run: func(sc signals.ScanContext) []types.Finding {
			var out []types.Finding
			for _, src := range textSources(sc) {
				out = append(out, piiInSource(sc, src)...)
			}
			return out
		},
	}
}

func piiInSource(sc signals.ScanContext, src source) []types.Finding {
	var out []types.Finding

	if emails := distinctMatches(reEmail, src.text); len(emails) >= 3 {
		loc := src.loc(0)
		f := newFinding(sc, types.TypePIIExposure, types.SevMedium, loc, types.Mask(emails[0]))
		f.Title = fmt.Sprintf("%d distinct email addresses exposed", len(emails))
		f.Description = "Client-reachable content contains a cluster of email addresses, suggesting an over-broad API response or a leaked user list."
		f.AtRiskData = []string{"email addresses"}
		f.Remediation = []string{"Return only the fields the page needs; never ship other users' contact data to the client."}
		f.Confidence = 0.7
		f.Tags = append(f.Tags, src.tags...)
		out = append(out, f)
	}

	for _, m := range reSSN.FindAllStringIndex(src.text, -1) {
		val := src.text[m[0]:m[1]]
		f := newFinding(sc, types.TypePIIExposure, types.SevHigh, src.loc(m[0]), types.Mask(val))
		f.Title = "SSN-formatted value exposed"
		f.Description = "A value formatted like a US Social Security number is present in client-reachable content."
		f.AtRiskData = []string{"government identifiers"}
		f.Remediation = []string{"Remove national identifiers from client-visible responses and storage."}
		f.Confidence = 0.75
		f.Tags = append(f.Tags, src.tags...)
		out = append(out, f)
	}

	for _, m := range reCard.FindAllStringIndex(src.text, -1) {
		val := src.text[m[0]:m[1]]
		digits := digitsOnly(val)
		if len(digits) < 13 || len(digits) > 16 || !luhnValid(digits) {
			continue
		}
		f := newFinding(sc, types.TypePIIExposure, types.SevHigh, src.loc(m[0]), types.Mask(digits))
		f.Title = "Payment-card-formatted number exposed"
		f.Description = "A Luhn-valid card-length number is present in client-reachable content."
		f.AtRiskData = []string{"payment card numbers"}
		f.Remediation = []string{"Never store or echo full card numbers client-side; use your payment provider's tokenization."}
		f.Confidence = 0.7
		f.Tags = append(f.Tags, src.tags...)
		out = append(out, f)
	}

	return out
}

func distinctMatches(re *regexp.Regexp, text string) []string {
	seen := map[string]bool{}
	for _, m := range re.FindAllString(text, -1) {
		seen[strings.ToLower(m)] = true
	}
	out := make([]string, 0, len(seen))
	for m := range seen {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// luhnValid runs the standard checksum used by payment card numbers.
func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
