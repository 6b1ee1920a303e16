package detectors

import (
	"testing"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

func TestHeadersFlagsMissing(t *testing.T) {
	sc := signals.NewContext("https://app.shop.io/", signals.DepthStandard, signals.PageCapture{
		Network: []signals.NetworkRecord{{
			URL:        "https://app.shop.io/",
			Method:     "GET",
			Status:     200,
			IsDocument: true,
			ResponseHeaders: map[string]string{
				"content-type":              "text/html",
				"content-security-policy":   "default-src 'self'",
				"strict-transport-security": "max-age=63072000",
			},
		}},
	})
	fs := Headers().Run(sc)
	if len(fs) != 3 {
		t.Fatalf("expected 3 missing-header findings, got %d: %+v", len(fs), fs)
	}
	for _, f := range fs {
		if f.Type != types.TypeMissingHeader {
			t.Fatalf("type = %s", f.Type)
		}
		if f.Location.Kind != types.LocHeader {
			t.Fatalf("location = %+v", f.Location)
		}
	}
}

func TestHeadersNoDocumentResponse(t *testing.T) {
	sc := signals.NewContext("https://app.shop.io/", signals.DepthStandard, signals.PageCapture{
		Network: []signals.NetworkRecord{{
			URL: "https://api.shop.io/v1/items", Method: "GET", Status: 200,
			ResponseHeaders: map[string]string{"content-type": "application/json"},
		}},
	})
	if fs := Headers().Run(sc); len(fs) != 0 {
		t.Fatalf("no document response should mean nothing to check: %+v", fs)
	}
}

func TestHeadersFallsBackToHTMLResponse(t *testing.T) {
	sc := signals.NewContext("https://app.shop.io/", signals.DepthStandard, signals.PageCapture{
		Network: []signals.NetworkRecord{{
			URL: "https://app.shop.io/index", Method: "GET", Status: 200,
			ResponseHeaders: map[string]string{"Content-Type": "text/html; charset=utf-8"},
		}},
	})
	fs := Headers().Run(sc)
	if len(fs) != len(requiredHeaders) {
		t.Fatalf("expected all %d headers flagged, got %d", len(requiredHeaders), len(fs))
	}
}
