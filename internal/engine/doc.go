// Package engine orchestrates scans. It selects detectors for the requested
// depth, runs them sequentially with per-detector timeouts, and assembles the
// deduplicated, scored result. This package is internal; external consumers
// should use the stable facade in pkg/core.
package engine
