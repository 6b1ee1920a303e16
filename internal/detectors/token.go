package detectors

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
	"github.com/glasscan/glasscan/internal/validate"
)

// reStructuralToken finds three dot-separated base64url-ish segments.
// Decode is the real gate; the regex just proposes candidates.
var reStructuralToken = regexp.MustCompile(`[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{8,}\.[A-Za-z0-9_-]{4,}`)

var sensitiveClaimTerms = []string{"password", "secret", "credit_card", "ssn"}

// privilegedRoles are role values that bypass normal access checks. A token
// carrying one of these being client-reachable is equivalent to handing out
// backend access.
var privilegedRoles = map[string]bool{
	"admin":           true,
	"administrator":   true,
	"root":            true,
	"superuser":       true,
	"super_admin":     true,
	"service":         true,
	"service_account": true,
	"system":          true,
}

// Tokens builds the structural token detector. Values that do not decode as
// header+payload JSON objects are silently skipped; catching
// malformed-but-suspicious strings is the entropy analyzer's job.
func Tokens() Detector {
	return Detector{
		ID: "tokens",
		Run: func(sc signals.ScanContext) []types.Finding {
			var out []types.Finding
			seen := make(map[string]bool)
			for _, src := range tokenSources(sc) {
				for _, idx := range reStructuralToken.FindAllStringIndex(src.text, -1) {
					raw := src.text[idx[0]:idx[1]]
					if seen[raw] || !validate.IsJWTStructure(raw) {
						continue
					}
					seen[raw] = true
					out = append(out, analyzeToken(sc, src.loc(idx[0]), raw, time.Now())...)
				}
			}
			return out
		},
	}
}

// tokenSources extends the text surfaces with authorization headers, where
// bearer tokens most often appear.
func tokenSources(sc signals.ScanContext) []source {
	out := textSources(sc)
	for _, rec := range sc.Capture.Network {
		rec := rec
		var vals []string
		for k, v := range rec.RequestHeaders {
			if strings.EqualFold(k, "authorization") || strings.EqualFold(k, "x-api-key") {
				vals = append(vals, v)
			}
		}
		if len(vals) == 0 {
			continue
		}
		sort.Strings(vals)
		out = append(out, source{
			text: strings.Join(vals, "\n"),
			loc: func(int) types.Location {
				return types.Location{Kind: types.LocNetwork, NetworkURL: rec.URL}
			},
			tags: []string{"network", "auth-header"},
		})
	}
	return out
}

// analyzeToken decodes one candidate and emits every applicable flag.
func analyzeToken(sc signals.ScanContext, loc types.Location, raw string, now time.Time) []types.Finding {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil
	}
	header, ok := decodeSegment(parts[0])
	if !ok {
		return nil
	}
	payload, ok := decodeSegment(parts[1])
	if !ok {
		return nil
	}

	masked := types.Mask(raw)
	var out []types.Finding

	if alg, _ := header["alg"].(string); strings.EqualFold(alg, "none") {
		f := newFinding(sc, types.TypeJWTNoneAlgorithm, types.SevCritical, loc, masked)
		f.Title = "Signed token declares no signature algorithm"
		f.Description = `The token header carries alg "none": its payload is accepted without any signature check by naive verifiers.`
		f.Impact = "An attacker can forge arbitrary claims and impersonate any user the consuming service trusts this token for."
		f.Remediation = []string{"Reject unsigned tokens at every verifier.", "Reissue tokens signed with a vetted algorithm (e.g. RS256/ES256)."}
		f.Confidence = 0.95
		out = append(out, f)
	}

	exp, hasExp := numericClaim(payload, "exp")
	if !hasExp {
		f := newFinding(sc, types.TypeJWTNoExpiry, types.SevHigh, loc, masked)
		f.Title = "Bearer token never expires"
		f.Description = "The token payload has no exp claim. A non-expiring bearer credential is a standing risk: once leaked it works forever."
		f.Remediation = []string{"Issue short-lived tokens with an exp claim and use refresh flows."}
		f.Confidence = 0.9
		out = append(out, f)
	} else if time.Unix(int64(exp), 0).Before(now) {
		f := newFinding(sc, types.TypeJWTExpired, types.SevLow, loc, masked)
		f.Title = "Expired token still present on page"
		f.Description = "The token expired but is still stored client-side. Hygiene issue rather than a live vulnerability."
		f.Remediation = []string{"Clear expired tokens from storage on logout and expiry."}
		f.Confidence = 0.8
		out = append(out, f)
	}

	if claims := sensitiveClaims(payload); len(claims) > 0 {
		f := newFinding(sc, types.TypeJWTSensitiveClaim, types.SevHigh, loc, masked)
		f.Title = "Token payload carries sensitive data"
		f.Description = fmt.Sprintf("Claims %s embed sensitive data directly in a token any client-side script can read.", strings.Join(claims, ", "))
		f.AtRiskData = claims
		f.Remediation = []string{"Keep sensitive attributes out of token payloads; tokens are readable by anyone who holds them."}
		f.Confidence = 0.9
		out = append(out, f)
	}

	if role, ok := privilegedRole(payload); ok {
		f := newFinding(sc, types.TypeJWTPrivilegedRole, types.SevCritical, loc, masked)
		f.Title = "Privileged-role token reachable from the client"
		f.Description = fmt.Sprintf("The token carries the privileged role %q. A role that bypasses normal access checks must never be visible to page scripts.", role)
		f.Impact = "Whoever extracts this token inherits service-level access to the backend."
		f.Remediation = []string{
			"Revoke this token and rotate the signing key if it may have leaked.",
			"Issue least-privilege tokens to browser clients; privileged identities stay server-side.",
		}
		f.Confidence = 0.95
		out = append(out, f)
	}

	return out
}

// decodeSegment base64url-decodes one segment and requires a JSON object.
func decodeSegment(seg string) (map[string]any, bool) {
	b, err := base64.RawURLEncoding.DecodeString(seg)
	if err != nil {
		return nil, false
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, false
	}
	return m, true
}

func numericClaim(payload map[string]any, name string) (float64, bool) {
	v, ok := payload[name]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

func sensitiveClaims(payload map[string]any) []string {
	var out []string
	for k := range payload {
		lower := strings.ToLower(k)
		for _, term := range sensitiveClaimTerms {
			if strings.Contains(lower, term) {
				out = append(out, k)
				break
			}
		}
	}
	// Map iteration order is random; findings must be deterministic.
	sort.Strings(out)
	return out
}

// privilegedRole inspects the usual role-bearing claims for a privileged
// value, including list-valued claims.
func privilegedRole(payload map[string]any) (string, bool) {
	for _, claim := range []string{"role", "roles", "scope", "scopes", "permissions", "groups"} {
		v, ok := payload[claim]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case string:
			for _, part := range strings.Fields(strings.ReplaceAll(val, ",", " ")) {
				if privilegedRoles[strings.ToLower(part)] {
					return part, true
				}
			}
		case []any:
			for _, item := range val {
				if s, ok := item.(string); ok && privilegedRoles[strings.ToLower(s)] {
					return s, true
				}
			}
		}
	}
	return "", false
}
