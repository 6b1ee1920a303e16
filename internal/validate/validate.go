// Package validate holds the cheap syntactic checks the pattern table and
// the token detector run on regexp matches before a finding is emitted.
// They confirm a candidate has the exact shape its provider issues; a
// checksum-level verification is out of scope for a page scanner.
package validate

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

const (
	base62     = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	upperAlnum = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// LengthBetween reports whether len(s) falls within [min, max].
func LengthBetween(s string, min, max int) bool {
	return len(s) >= min && len(s) <= max
}

// IsAlphabet reports whether every byte of s belongs to the allowed set.
// Empty strings fail: no provider issues a zero-length credential.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

// IsHex reports whether s is an even-length hex string, either case.
func IsHex(s string) bool {
	if s == "" || len(s)%2 == 1 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// IsBase64URLNoPad reports whether s decodes as unpadded base64url, the
// encoding JWT segments use.
func IsBase64URLNoPad(s string) bool {
	if s == "" {
		return false
	}
	_, err := base64.RawURLEncoding.DecodeString(s)
	return err == nil
}

// githubPrefixes are the token classes GitHub issues: personal, OAuth,
// user-to-server, server-to-server, refresh.
var githubPrefixes = []string{"ghp_", "gho_", "ghu_", "ghs_", "ghr_"}

// LooksLikeGitHubToken checks a known prefix followed by 36 base62 chars.
func LooksLikeGitHubToken(s string) bool {
	for _, p := range githubPrefixes {
		if strings.HasPrefix(s, p) {
			return len(s) == len(p)+36 && IsAlphabet(s[len(p):], base62)
		}
	}
	return false
}

// LooksLikeOpenAIKey checks the sk- prefix and a 40 to 64 char base62 tail.
func LooksLikeOpenAIKey(s string) bool {
	if !strings.HasPrefix(s, "sk-") {
		return false
	}
	tail := s[3:]
	return LengthBetween(tail, 40, 64) && IsAlphabet(tail, base62)
}

// LooksLikeAWSAccessKey checks AKIA or ASIA plus 16 uppercase alnum chars.
func LooksLikeAWSAccessKey(s string) bool {
	if !strings.HasPrefix(s, "AKIA") && !strings.HasPrefix(s, "ASIA") {
		return false
	}
	return len(s) == 20 && IsAlphabet(s[4:], upperAlnum)
}

// LooksLikeAWSSecretKey checks exact length 40 over the base64 alphabet.
// The value is not decoded: real secrets are not always canonical base64.
func LooksLikeAWSSecretKey(s string) bool {
	return len(s) == 40 && IsAlphabet(s, base62+"+/=")
}

// IsJWTStructure checks for three dot-separated segments whose header and
// payload decode as base64url. The signature segment is left opaque so
// detached and unsigned tokens still qualify; the token detector decides
// what to make of them.
func IsJWTStructure(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return false
	}
	return IsBase64URLNoPad(parts[0]) && IsBase64URLNoPad(parts[1])
}
