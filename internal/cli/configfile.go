package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig holds user defaults loaded from the YAML config file.
// Location: $LINEGREP_CONFIG, or ~/.linegrep.yaml.
type FileConfig struct {
	Color         string `yaml:"color"`
	Before        int    `yaml:"before"`
	After         int    `yaml:"after"`
	LineNumbers   bool   `yaml:"line_numbers"`
	Hidden        bool   `yaml:"hidden"`
	NoIgnore      bool   `yaml:"no_ignore"`
	SmartCase     bool   `yaml:"smart_case"`
	Workers       int    `yaml:"workers"`
	MmapThreshold int64  `yaml:"mmap_threshold"`
}

// LoadFileConfig reads the user's config file. A missing file is not an
// error and returns nil.
func LoadFileConfig() (*FileConfig, error) {
	path := os.Getenv("LINEGREP_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(home, ".linegrep.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &fc, nil
}

// apply copies file defaults into cfg for every flag the user did not
// set on the command line. changed reports whether a flag was given
// explicitly.
func (fc *FileConfig) apply(cfg *Config, changed func(name string) bool) error {
	if fc == nil {
		return nil
	}
	if fc.Color != "" && !changed("color") {
		mode, err := ParseColorMode(fc.Color)
		if err != nil {
			return err
		}
		cfg.Color = mode
	}
	if fc.Before > 0 && !changed("before-context") {
		cfg.ContextBefore = fc.Before
	}
	if fc.After > 0 && !changed("after-context") {
		cfg.ContextAfter = fc.After
	}
	if fc.LineNumbers && !changed("line-number") {
		cfg.LineNumbers = true
	}
	if fc.Hidden && !changed("hidden") {
		cfg.Hidden = true
	}
	if fc.NoIgnore && !changed("no-ignore") {
		cfg.NoIgnore = true
	}
	if fc.SmartCase && !changed("smart-case") {
		cfg.SmartCase = true
	}
	if fc.Workers > 0 && !changed("workers") {
		cfg.Workers = fc.Workers
	}
	if fc.MmapThreshold > 0 && !changed("mmap-threshold") {
		cfg.MmapThreshold = fc.MmapThreshold
	}
	return nil
}
