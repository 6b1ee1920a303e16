package core_test

import (
	"context"
	"fmt"

	"github.com/glasscan/glasscan/pkg/core"
)

// Scan an in-memory capture and inspect the graded summary.
func Example() {
	capture := core.PageCapture{TargetURL: "https://example.com"}

	res, err := core.Scan(context.Background(), core.Options{}, core.Request{
		Target:  "https://example.com",
		Depth:   core.DepthQuick,
		Capture: capture,
	})
	if err != nil {
		fmt.Println("scan failed:", err)
		return
	}
	fmt.Println(res.Summary.Grade)
	// Output: A
}
