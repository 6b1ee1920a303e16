// Package core provides a small, stable facade over Glasscan's internal
// engine for external integrations. It deliberately re-exports a narrow API
// surface so third-party tools can depend on a stable import path without
// exposing internal implementation packages.
//
// Example:
//
//	capture, _ := core.LoadCapture("capture.json")
//	res, err := core.Scan(context.Background(), core.Options{}, core.Request{
//		Target:  "https://app.example.com",
//		Capture: capture,
//	})
//	if err != nil { /* handle */ }
//	_ = core.MarshalResult(os.Stdout, res)
package core
