package detectors

import (
	"testing"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

func cookieContext(cookies ...signals.CookieRecord) signals.ScanContext {
	return signals.NewContext("https://app.shop.io/", signals.DepthStandard, signals.PageCapture{Cookies: cookies})
}

func TestCookiesFlagsMissingAttributes(t *testing.T) {
	fs := Cookies().Run(cookieContext(signals.CookieRecord{Name: "session_id", Value: "abc"}))
	if len(fs) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(fs))
	}
	f := fs[0]
	if f.Type != types.TypeInsecureCookie || f.Severity != types.SevHigh {
		t.Fatalf("session cookie should be high: %+v", f)
	}
	if f.Location.CookieName != "session_id" {
		t.Fatalf("location = %+v", f.Location)
	}
}

func TestCookiesWellConfiguredIsClean(t *testing.T) {
	fs := Cookies().Run(cookieContext(signals.CookieRecord{
		Name: "session_id", Value: "abc", Secure: true, HTTPOnly: true, SameSite: "Lax",
	}))
	if len(fs) != 0 {
		t.Fatalf("well-configured cookie flagged: %+v", fs)
	}
}

func TestCookiesNonSessionIsMedium(t *testing.T) {
	fs := Cookies().Run(cookieContext(signals.CookieRecord{Name: "locale", Value: "en"}))
	if len(fs) != 1 || fs[0].Severity != types.SevMedium {
		t.Fatalf("non-session cookie should be medium: %+v", fs)
	}
}

func TestCookiesSameSiteNoneCounts(t *testing.T) {
	fs := Cookies().Run(cookieContext(signals.CookieRecord{
		Name: "auth", Value: "x", Secure: true, HTTPOnly: true, SameSite: "None",
	}))
	if len(fs) != 1 {
		t.Fatalf("SameSite=None should flag, got %d", len(fs))
	}
}
