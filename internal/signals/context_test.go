package signals

import (
	"testing"

	"github.com/glasscan/glasscan/internal/types"
)

func TestDetectEnvironment(t *testing.T) {
	cases := map[string]types.Environment{
		"http://localhost:3000/app":      types.EnvDevelopment,
		"http://127.0.0.1/":              types.EnvDevelopment,
		"https://app.myshop.local/":      types.EnvDevelopment,
		"https://staging.myshop.com/":    types.EnvStaging,
		"https://stg.myshop.com/":        types.EnvStaging,
		"https://qa.myshop.com/":         types.EnvStaging,
		"https://myshop.com/checkout":    types.EnvProduction,
		"https://app.myshop.com:8080/":   types.EnvDevelopment,
		"not a url at all":               types.EnvUnknown,
	}
	for target, want := range cases {
		if got := DetectEnvironment(target); got != want {
			t.Errorf("DetectEnvironment(%q) = %s, want %s", target, got, want)
		}
	}
}

func TestParseEnvironment(t *testing.T) {
	for in, want := range map[string]types.Environment{
		"prod":        types.EnvProduction,
		"Production":  types.EnvProduction,
		"stg":         types.EnvStaging,
		"dev":         types.EnvDevelopment,
		" staging  ":  types.EnvStaging,
		"development": types.EnvDevelopment,
	} {
		got, ok := ParseEnvironment(in)
		if !ok || got != want {
			t.Errorf("ParseEnvironment(%q) = %s, %v", in, got, ok)
		}
	}
	if _, ok := ParseEnvironment("mars"); ok {
		t.Fatal("expected unrecognized environment to report false")
	}
}

func TestNewContextDerivesDomain(t *testing.T) {
	sc := NewContext("https://app.myshop.com/checkout", DepthStandard, PageCapture{})
	if sc.Domain != "app.myshop.com" {
		t.Fatalf("domain = %q", sc.Domain)
	}
	if sc.Environment != types.EnvProduction {
		t.Fatalf("environment = %s", sc.Environment)
	}
}

func TestNewContextFallsBackToCaptureTarget(t *testing.T) {
	sc := NewContext("", DepthQuick, PageCapture{TargetURL: "https://myshop.com/"})
	if sc.Target != "https://myshop.com/" {
		t.Fatalf("target = %q", sc.Target)
	}
}
