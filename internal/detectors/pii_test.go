package detectors

import (
	"strings"
	"testing"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

func TestPIIEmailCluster(t *testing.T) {
	body := `{"users":[{"email":"alice@shop.io"},{"email":"bob@shop.io"},{"email":"carol@shop.io"}]}`
	sc := signals.NewContext("https://app.shop.io/", signals.DepthDeep, signals.PageCapture{
		Network: []signals.NetworkRecord{{URL: "https://api.shop.io/v1/users", Method: "GET", ResponseBody: body}},
	})
	fs := PII().Run(sc)
	if len(fs) != 1 || fs[0].Type != types.TypePIIExposure {
		t.Fatalf("expected email-cluster finding, got %+v", fs)
	}
}

func TestPIITwoEmailsIsFine(t *testing.T) {
	body := `contact us: support@shop.io or billing@shop.io`
	sc := signals.NewContext("https://app.shop.io/", signals.DepthDeep, signals.PageCapture{
		Network: []signals.NetworkRecord{{URL: "https://app.shop.io/about", ResponseBody: body}},
	})
	if fs := PII().Run(sc); len(fs) != 0 {
		t.Fatalf("two emails should not flag: %+v", fs)
	}
}

func TestPIICardNumberLuhn(t *testing.T) {
	// 4111111111111111 passes Luhn; 4111111111111112 does not.
	sc := signals.NewContext("https://app.shop.io/", signals.DepthDeep, signals.PageCapture{
		Storage: []signals.StorageItem{
			{Kind: "local", Key: "saved_card", Value: "4111111111111111"},
			{Kind: "local", Key: "not_a_card", Value: "4111111111111112"},
		},
	})
	fs := PII().Run(sc)
	if len(fs) != 1 {
		t.Fatalf("expected exactly the Luhn-valid number, got %d: %+v", len(fs), fs)
	}
	if strings.Contains(fs[0].Evidence, "111111111111") {
		t.Fatalf("evidence leaked card middle: %q", fs[0].Evidence)
	}
}

func TestPIISSN(t *testing.T) {
	sc := signals.NewContext("https://app.shop.io/", signals.DepthDeep, signals.PageCapture{
		Storage: []signals.StorageItem{{Kind: "session", Key: "profile", Value: `{"ssn":"078-05-1120"}`}},
	})
	fs := PII().Run(sc)
	if len(fs) != 1 || fs[0].Severity != types.SevHigh {
		t.Fatalf("expected high SSN finding, got %+v", fs)
	}
}

func TestDedupe(t *testing.T) {
	loc := types.Location{Kind: types.LocScript, ScriptURL: "https://a/js", Offset: 1}
	a := types.Finding{Type: types.TypeSecretExposure, Evidence: "AKIA…2M5P", Location: loc}
	b := types.Finding{Type: types.TypeSecretExposure, Evidence: "AKIA…2M5P", Location: loc}
	c := types.Finding{Type: types.TypeHighEntropySecret, Evidence: "AKIA…2M5P", Location: loc}
	out := Dedupe([]types.Finding{a, b, c})
	if len(out) != 2 {
		t.Fatalf("expected 2 after dedupe, got %d", len(out))
	}
}
