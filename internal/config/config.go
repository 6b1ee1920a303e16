package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for Glasscan. Fields
// are pointers so the precedence logic in cmd can tell "unset" apart from
// an explicit zero value.
type FileConfig struct {
	Depth            *string  `yaml:"depth"`
	Environment      *string  `yaml:"environment"`
	Include          *string  `yaml:"include"`
	Exclude          *string  `yaml:"exclude"`
	Enable           *string  `yaml:"enable"`
	Disable          *string  `yaml:"disable"`
	MinConfidence    *float64 `yaml:"min_confidence"`
	DetectorTimeout  *string  `yaml:"detector_timeout"`
	ScanTimeout      *string  `yaml:"scan_timeout"`
	NoColor          *bool    `yaml:"no_color"`
	PatternsFile     *string  `yaml:"patterns_file"`
	FailOn           *string  `yaml:"fail_on"`
	KeepResults      *int     `yaml:"keep_results"`
	DataDir          *string  `yaml:"data_dir"`
	NoUpdateCheck    *bool    `yaml:"no_update_check"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a project-local config file in the given directory.
// It supports .glasscan.yml/.yaml and glasscan.yml/.yaml.
func LoadLocal(dir string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".glasscan.yml", ".glasscan.yaml", "glasscan.yml", "glasscan.yaml"} {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "glasscan", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
