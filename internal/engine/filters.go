package engine

import (
	"strings"

	doublestar "github.com/bmatcuk/doublestar/v4"

	"github.com/glasscan/glasscan/internal/detectors"
	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

func filterByConfidence(fs []types.Finding, min float64) []types.Finding {
	if min <= 0 {
		return fs
	}
	var out []types.Finding
	for _, f := range fs {
		if f.Confidence >= min {
			out = append(out, f)
		}
	}
	return out
}

// filterDetectors applies the comma-separated enable/disable lists to the
// depth-selected detector set. Enable, if present, is a positive filter;
// disable is subtracted last.
func filterDetectors(dets []detectors.Detector, enable, disable string) []detectors.Detector {
	if enable == "" && disable == "" {
		return dets
	}
	allowed := map[string]bool{}
	if enable != "" {
		for _, id := range strings.Split(enable, ",") {
			allowed[strings.TrimSpace(id)] = true
		}
	}
	blocked := map[string]bool{}
	if disable != "" {
		for _, id := range strings.Split(disable, ",") {
			blocked[strings.TrimSpace(id)] = true
		}
	}
	var out []detectors.Detector
	for _, d := range dets {
		if enable != "" && !allowed[d.ID] {
			continue
		}
		if disable != "" && blocked[d.ID] {
			continue
		}
		out = append(out, d)
	}
	return out
}

// filterScripts drops capture scripts whose source URL falls outside the
// include/exclude glob configuration. Inline scripts are always kept.
// Matching uses forward-slash semantics.
func filterScripts(capture signals.PageCapture, includeGlobs, excludeGlobs string) signals.PageCapture {
	includes := parseGlobsList(includeGlobs)
	excludes := parseGlobsList(excludeGlobs)
	if len(includes) == 0 && len(excludes) == 0 {
		return capture
	}
	kept := make([]signals.ScriptBlock, 0, len(capture.Scripts))
	for _, s := range capture.Scripts {
		if s.Inline || allowedByGlobs(s.SourceURL, includes, excludes) {
			kept = append(kept, s)
		}
	}
	capture.Scripts = kept
	return capture
}

func allowedByGlobs(url string, includes, excludes []string) bool {
	u := strings.ReplaceAll(url, "\\", "/")
	if len(includes) > 0 && !matchAnyGlob(u, includes) {
		return false
	}
	if len(excludes) > 0 && matchAnyGlob(u, excludes) {
		return false
	}
	return true
}

func parseGlobsList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	var out []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func matchAnyGlob(pathToMatch string, globs []string) bool {
	for _, g := range globs {
		if ok, _ := doublestar.Match(g, pathToMatch); ok {
			return true
		}
	}
	return false
}
