package detectors

import (
	"fmt"
	"strings"

	"github.com/glasscan/glasscan/internal/signals"
	"github.com/glasscan/glasscan/internal/types"
)

// sessionNameHints mark cookies that likely carry authentication state and
// therefore deserve the stricter attribute checks.
var sessionNameHints = []string{"session", "sess", "token", "auth", "sid", "jwt", "login", "remember"}

// Cookies builds the insecure-cookie detector.
func Cookies() Detector {
	return Detector{
		ID: "cookies",
		Run: func(sc signals.ScanContext) []types.Finding {
			var out []types.Finding
			for _, c := range sc.Capture.Cookies {
				missing := missingAttributes(c)
				if len(missing) == 0 {
					continue
				}
				sev := types.SevMedium
				if sessionLike(c.Name) {
					sev = types.SevHigh
				}
				loc := types.Location{Kind: types.LocCookie, CookieName: c.Name}
				f := newFinding(sc, types.TypeInsecureCookie, sev, loc, "")
				f.Title = fmt.Sprintf("Cookie %q missing %s", c.Name, strings.Join(missing, ", "))
				f.Description = fmt.Sprintf("The cookie lacks %s. Without these attributes it can be read by page scripts or sent over plaintext connections.", strings.Join(missing, " and "))
				f.Remediation = []string{
					"Set Secure so the cookie is only sent over HTTPS.",
					"Set HttpOnly so page scripts cannot read it.",
					"Set SameSite=Lax or Strict to limit cross-site sends.",
				}
				f.Confidence = 1.0
				f.Tags = []string{"cookie"}
				out = append(out, f)
			}
			return out
		},
	}
}

func missingAttributes(c signals.CookieRecord) []string {
	var missing []string
	if !c.Secure {
		missing = append(missing, "Secure")
	}
	if !c.HTTPOnly {
		missing = append(missing, "HttpOnly")
	}
	ss := strings.ToLower(c.SameSite)
	if ss == "" || ss == "none" {
		missing = append(missing, "SameSite")
	}
	return missing
}

func sessionLike(name string) bool {
	lower := strings.ToLower(name)
	for _, hint := range sessionNameHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}
