package signals

import (
	"net/url"
	"strings"

	"github.com/glasscan/glasscan/internal/types"
)

// Depth selects which detectors run for a scan.
type Depth string

const (
	DepthQuick    Depth = "quick"
	DepthStandard Depth = "standard"
	DepthDeep     Depth = "deep"
)

// ParseDepth normalizes a user-supplied depth, defaulting to standard.
func ParseDepth(s string) Depth {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "quick":
		return DepthQuick
	case "deep":
		return DepthDeep
	default:
		return DepthStandard
	}
}

// ParseEnvironment maps a user-supplied environment name onto the closed
// vocabulary. Unrecognized values report false so callers can fall back to
// detection.
func ParseEnvironment(s string) (types.Environment, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "development", "dev":
		return types.EnvDevelopment, true
	case "staging", "stage", "stg":
		return types.EnvStaging, true
	case "production", "prod":
		return types.EnvProduction, true
	}
	return types.EnvUnknown, false
}

// ScanContext is the immutable per-scan input shared by every detector.
// Built once per scan invocation; detectors must not mutate it.
type ScanContext struct {
	Target      string
	Domain      string
	Environment types.Environment
	Depth       Depth
	Capture     PageCapture
}

// NewContext derives domain and environment from the target URL and bundles
// the capture. The capture's own target wins when the caller passed none.
func NewContext(target string, depth Depth, capture PageCapture) ScanContext {
	if target == "" {
		target = capture.TargetURL
	}
	return ScanContext{
		Target:      target,
		Domain:      hostOf(target),
		Environment: DetectEnvironment(target),
		Depth:       depth,
		Capture:     capture,
	}
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Hostname()
}

// DetectEnvironment classifies a target URL by deployment environment.
// Localhost-ish hosts and non-standard ports read as development, staging
// naming conventions as staging, anything else with a real host as
// production.
func DetectEnvironment(target string) types.Environment {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return types.EnvUnknown
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case host == "localhost" || host == "127.0.0.1" || host == "::1" ||
		strings.HasSuffix(host, ".local") || strings.HasSuffix(host, ".localhost"):
		return types.EnvDevelopment
	case strings.HasPrefix(host, "dev.") || strings.Contains(host, ".dev."):
		return types.EnvDevelopment
	case strings.HasPrefix(host, "staging.") || strings.HasPrefix(host, "stg.") ||
		strings.HasPrefix(host, "test.") || strings.HasPrefix(host, "qa.") ||
		strings.Contains(host, ".staging."):
		return types.EnvStaging
	}
	if u.Port() != "" && u.Port() != "80" && u.Port() != "443" {
		return types.EnvDevelopment
	}
	return types.EnvProduction
}
