package patterns

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/glasscan/glasscan/internal/types"
)

// filePattern is the on-disk YAML shape for a custom rule.
type filePattern struct {
	ID          string   `yaml:"id"`
	Service     string   `yaml:"service"`
	Regex       string   `yaml:"regex"`
	Severity    string   `yaml:"severity"`
	MustInclude []string `yaml:"must_include"`
	MustExclude []string `yaml:"must_exclude"`
}

type fileLibrary struct {
	Patterns []filePattern `yaml:"patterns"`
}

// LoadCustom reads additional patterns from a YAML file. A malformed rule
// fails the whole load; silently skipping a rule the user wrote would hide
// coverage gaps.
func LoadCustom(path string) ([]Pattern, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read patterns file: %w", err)
	}
	var lib fileLibrary
	if err := yaml.Unmarshal(b, &lib); err != nil {
		return nil, fmt.Errorf("parse patterns file %s: %w", path, err)
	}
	out := make([]Pattern, 0, len(lib.Patterns))
	for _, fp := range lib.Patterns {
		if fp.ID == "" || fp.Regex == "" {
			return nil, fmt.Errorf("pattern missing id or regex in %s", path)
		}
		re, err := regexp.Compile(fp.Regex)
		if err != nil {
			return nil, fmt.Errorf("pattern %s: %w", fp.ID, err)
		}
		sev := types.Severity(fp.Severity)
		switch sev {
		case types.SevCritical, types.SevHigh, types.SevMedium, types.SevLow, types.SevInfo:
		case "":
			sev = types.SevMedium
		default:
			return nil, fmt.Errorf("pattern %s: unknown severity %q", fp.ID, fp.Severity)
		}
		out = append(out, Pattern{
			ID:          fp.ID,
			Service:     fp.Service,
			Regexp:      re,
			Severity:    sev,
			MustInclude: fp.MustInclude,
			MustExclude: fp.MustExclude,
		})
	}
	return out, nil
}
