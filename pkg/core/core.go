package core

import (
	"context"

	"github.com/glasscan/glasscan/internal/detectors"
	"github.com/glasscan/glasscan/internal/engine"
	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
// We can replace these with decoupled structs later without breaking callers.
type Options = engine.Options
type Request = engine.Request
type Finding = types.Finding
type ScanResult = types.ScanResult
type PageCapture = signals.PageCapture

// Depth values accepted by Request.Depth.
const (
	DepthQuick    = signals.DepthQuick
	DepthStandard = signals.DepthStandard
	DepthDeep     = signals.DepthDeep
)

// LoadCapture reads a page capture JSON file.
func LoadCapture(path string) (PageCapture, error) {
	return signals.LoadCapture(path)
}

// Scan is the stable entrypoint for other programs. Each call uses a fresh
// orchestrator, so concurrent calls do not contend for the in-progress slot.
func Scan(ctx context.Context, opts Options, req Request) (ScanResult, error) {
	return engine.New(opts).Scan(ctx, req)
}

// DetectorIDs returns the list of configured detector IDs.
// This is exposed for convenience to avoid importing internals directly.
func DetectorIDs() []string { return detectors.IDs() }
