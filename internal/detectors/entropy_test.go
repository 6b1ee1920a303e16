package detectors

import (
	"math"
	"testing"

	"github.com/glasscan/glasscan/internal/types"
)

func TestShannonEntropy(t *testing.T) {
	if e := shannonEntropy("aaaaaaaaaaaaaaaaaaaa"); e != 0 {
		t.Fatalf("uniform repeat should have entropy 0, got %f", e)
	}
	// 16 distinct characters: exactly 4 bits per character.
	if e := shannonEntropy("0123456789abcdef"); math.Abs(e-4.0) > 1e-9 {
		t.Fatalf("16 distinct chars should have entropy 4.0, got %f", e)
	}
	// More uniform distribution never has lower entropy at equal length.
	skewed := shannonEntropy("aaaaaaaaaaaabbcd")
	uniform := shannonEntropy("abcdabcdabcdabcd")
	if uniform < skewed {
		t.Fatalf("uniform (%f) should be >= skewed (%f)", uniform, skewed)
	}
}

func TestClassifyShape(t *testing.T) {
	cases := map[string]tokenShape{
		"deadbeef00112233":                 shapeHex,
		"AbCdEf0123456789XyZk":             shapeBase64,
		"abcdefghijklmnop":                 shapeAlphanumeric,
		"ab_cd-ef01234567":                 shapeMixed,
	}
	for tok, want := range cases {
		if got := classifyShape(tok); got != want {
			t.Errorf("classifyShape(%q) = %s, want %s", tok, got, want)
		}
	}
}

func TestEntropyFlagsRandomTokenNearKeyword(t *testing.T) {
	src := `var apiKey = "AbCdEfGhIjKlMnOpQrStUvWxYz012345";`
	fs := Entropy().Run(scriptContext(src))
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d: %+v", len(fs), fs)
	}
	f := fs[0]
	if f.Type != types.TypeHighEntropySecret {
		t.Fatalf("type = %s", f.Type)
	}
	if f.Severity == types.SevCritical {
		t.Fatalf("entropy findings must never be critical")
	}
	if f.Confidence < 0.6 {
		t.Fatalf("reported finding below confidence floor: %f", f.Confidence)
	}
}

func TestEntropyIgnoresLowEntropy(t *testing.T) {
	src := `var apiKey = "aaaaaaaaaaaaaaaaaaaa";`
	if fs := Entropy().Run(scriptContext(src)); len(fs) != 0 {
		t.Fatalf("zero-entropy token flagged: %+v", fs)
	}
}

func TestEntropyLengthBoundary(t *testing.T) {
	// 15 characters: below the candidate minimum, never flagged.
	short := `var apiKey = "aB3dE5gH7jK9mN1";`
	if fs := Entropy().Run(scriptContext(short)); len(fs) != 0 {
		t.Fatalf("15-char token must not be a candidate: %+v", fs)
	}
	// Same shape at 16 characters is a candidate and clears its threshold.
	long := `var apiKey = "aB3dE5gH7jK9mN1q";`
	if fs := Entropy().Run(scriptContext(long)); len(fs) != 1 {
		t.Fatalf("16-char token should be flagged, got %d", len(fs))
	}
}

func TestEntropySuppressesUUIDAndHashes(t *testing.T) {
	src := `var requestId = "123e4567-e89b-12d3-a456-426614174000";
var etag = "d41d8cd98f00b204e9800998ecf8427e";
var commit = "2fd4e1c67a2d28fced849ee1bb76e7391b93eb12";`
	if fs := Entropy().Run(scriptContext(src)); len(fs) != 0 {
		t.Fatalf("UUID/MD5/SHA-1 shapes should be suppressed: %+v", fs)
	}
}

func TestEntropySha256NearSecretKeyword(t *testing.T) {
	src := `var signingKey = "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08";`
	fs := Entropy().Run(scriptContext(src))
	if len(fs) != 1 {
		t.Fatalf("64-char hex near secret keyword should be flagged, got %d", len(fs))
	}
	if fs[0].Severity != types.SevHigh {
		t.Fatalf("severity = %s, want high", fs[0].Severity)
	}
}

func TestEntropySuppressesPlaceholderContext(t *testing.T) {
	src := `// example configuration
var apiKey = "AbCdEfGhIjKlMnOpQrStUvWxYz012345";`
	if fs := Entropy().Run(scriptContext(src)); len(fs) != 0 {
		t.Fatalf("placeholder context should suppress: %+v", fs)
	}
}
