package detectors

import (
	"math"
	"regexp"
	"strings"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

// Candidate tokens are contiguous runs of token characters. Anything
// shorter than 16 or longer than 256 characters is never a secret
// candidate by policy.
var reCandidate = regexp.MustCompile(`[A-Za-z0-9_-]{16,256}`)

var reUUID = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

var secretKeywords = []string{"key", "token", "secret", "password", "credential", "auth"}

// libraryPrefixes are identifier prefixes common in bundled frontend code.
// High-entropy chunk names from bundlers are the main entropy false
// positive after hashes.
var libraryPrefixes = []string{
	"webpack", "chunk-", "lodash", "jquery", "react-", "angular",
	"vue-", "polyfill", "moment", "runtime-", "vendors-", "sha256-", "sha384-", "sha512-",
}

// tokenShape classifies a candidate by character-set regularity.
type tokenShape string

const (
	shapeHex          tokenShape = "hex"
	shapeBase64       tokenShape = "base64"
	shapeAlphanumeric tokenShape = "alphanumeric"
	shapeMixed        tokenShape = "mixed"
	shapeUnknown      tokenShape = "unknown"
)

// entropyThreshold returns the minimum Shannon entropy for a shape. Hex
// carries less entropy per character than mixed-case text of the same
// length, so the bar must differ by shape or hex hashes false-positive
// constantly.
func entropyThreshold(shape tokenShape) float64 {
	switch shape {
	case shapeHex:
		return 3.0
	case shapeBase64:
		return 4.0
	case shapeAlphanumeric:
		return 4.5
	case shapeMixed:
		return 4.0
	default:
		return 4.5
	}
}

// Entropy builds the high-entropy token detector. It is deliberately two
// stage: an entropy threshold alone flags every hash, UUID, and minified
// identifier on a modern page, so candidates that clear the threshold still
// need a confidence score of at least 0.6 to be reported.
func Entropy() Detector {
	return Detector{
		ID: "entropy",
		Run: func(sc signals.ScanContext) []types.Finding {
			var out []types.Finding
			seen := make(map[string]bool)
			for _, src := range textSources(sc) {
				for _, idx := range reCandidate.FindAllStringIndex(src.text, -1) {
					token := src.text[idx[0]:idx[1]]
					if seen[token] {
						continue
					}
					seen[token] = true

					shape := classifyShape(token)
					ent := shannonEntropy(token)
					if ent < entropyThreshold(shape) {
						continue
					}
					window := contextAround(src.text, idx[0], idx[1])
					conf := tokenConfidence(token, shape, ent, window)
					if conf < 0.6 {
						continue
					}
					sev := types.SevMedium
					if conf >= 0.8 {
						// Entropy alone is never sufficient evidence for
						// critical; high is the ceiling here.
						sev = types.SevHigh
					}
					f := newFinding(sc, types.TypeHighEntropySecret, sev, src.loc(idx[0]), types.Mask(token))
					f.Title = "High-entropy value looks like a secret"
					f.Description = "A " + string(shape) + "-shaped token with unusually high entropy is present in client-reachable content and sits near secret-related context."
					f.Impact = "If this value is a live credential, anyone loading the page can harvest it."
					f.Remediation = []string{
						"Identify what this value is; rotate it if it is a credential.",
						"Keep secrets out of shipped client code and page storage.",
					}
					f.Confidence = conf
					f.Tags = append(f.Tags, src.tags...)
					f.Tags = append(f.Tags, "shape:"+string(shape))
					out = append(out, f)
				}
			}
			return out
		},
	}
}

// shannonEntropy computes -Σ p·log2(p) over the character distribution.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}
	counts := make(map[byte]int)
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	n := float64(len(s))
	h := 0.0
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

func classifyShape(s string) tokenShape {
	var hexOnly, hasUpper, hasLower, hasDigit, hasSep, alnumOnly bool
	hexOnly = true
	alnumOnly = true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'a' && c <= 'f':
			hasLower = true
		case c >= 'g' && c <= 'z':
			hasLower = true
			hexOnly = false
		case c >= 'A' && c <= 'F':
			hasUpper = true
			hexOnly = false // mixed-case hex is treated as base64-ish below
		case c >= 'G' && c <= 'Z':
			hasUpper = true
			hexOnly = false
		case c == '_' || c == '-':
			hasSep = true
			hexOnly = false
			alnumOnly = false
		default:
			return shapeUnknown
		}
	}
	switch {
	case hexOnly:
		return shapeHex
	case hasUpper && hasLower && hasDigit && !hasSep:
		return shapeBase64
	case alnumOnly:
		return shapeAlphanumeric
	case hasSep:
		return shapeMixed
	default:
		return shapeUnknown
	}
}

// tokenConfidence scores how likely a threshold-clearing candidate is to be
// a real secret. Starts at 0.5 and moves on shape, entropy, and context.
func tokenConfidence(token string, shape tokenShape, ent float64, window string) float64 {
	conf := 0.5
	switch {
	case ent > 5.5:
		conf += 0.2
	case ent > 5.0:
		conf += 0.1
	}
	if shape == shapeBase64 {
		conf += 0.1
	}
	if shape == shapeHex && len(token) == 64 {
		// SHA-256-shaped; in page content these are commonly real secret
		// digests (HMAC keys, signed URLs) rather than content hashes.
		conf += 0.15
	}
	if falsePositiveShape(token, shape) || containsPlaceholder(window) {
		conf -= 0.3
	}
	for _, kw := range secretKeywords {
		if strings.Contains(window, kw) {
			conf += 0.15
			break
		}
	}
	if conf < 0 {
		conf = 0
	}
	if conf > 1 {
		conf = 1
	}
	return conf
}

// falsePositiveShape recognizes token families that look random but are
// almost never secrets: UUIDs, bare MD5/SHA-1 hashes, bundler identifiers.
func falsePositiveShape(token string, shape tokenShape) bool {
	if reUUID.MatchString(token) {
		return true
	}
	if shape == shapeHex && (len(token) == 32 || len(token) == 40) {
		return true
	}
	lower := strings.ToLower(token)
	for _, prefix := range libraryPrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

func containsPlaceholder(window string) bool {
	for _, term := range placeholderTerms {
		if strings.Contains(window, term) {
			return true
		}
	}
	return false
}
