package types

import (
	"strings"
	"testing"
)

func TestMaskNeverExposesMiddle(t *testing.T) {
	secret := "AKIAIOSFODNN7EXAMPLEKEY"
	m := Mask(secret)
	if strings.Contains(m, secret) {
		t.Fatalf("mask contains raw secret: %q", m)
	}
	if !strings.HasPrefix(m, secret[:4]) || !strings.HasSuffix(m, secret[len(secret)-4:]) {
		t.Fatalf("mask should keep 4 chars on each end, got %q", m)
	}
	// Middle must be gone entirely.
	if strings.Contains(m, secret[4:len(secret)-4]) {
		t.Fatalf("mask leaked middle: %q", m)
	}
}

func TestMaskShortValues(t *testing.T) {
	for _, s := range []string{"", "a", "1234567"} {
		if got := Mask(s); got != "********" {
			t.Fatalf("short value %q should be fully redacted, got %q", s, got)
		}
	}
	// Exactly 8 chars: at most 2 from each end.
	m := Mask("abcdefgh")
	if strings.Contains(m, "cdef") {
		t.Fatalf("8-char mask leaked middle: %q", m)
	}
}

func TestFindingIDStable(t *testing.T) {
	loc := Location{Kind: LocScript, ScriptURL: "https://app.example.com/main.js", Offset: 120}
	a := FindingID(TypeSecretExposure, loc, "AKIA…MPLE")
	b := FindingID(TypeSecretExposure, loc, "AKIA…MPLE")
	if a != b {
		t.Fatalf("same inputs should produce same ID: %s vs %s", a, b)
	}
	c := FindingID(TypeHighEntropySecret, loc, "AKIA…MPLE")
	if a == c {
		t.Fatalf("different type should change ID")
	}
}
