package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeduden/tidylabel/internal/rule"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the config file searched for by Discover.
const FileName = ".tidylabel.yml"

// Load reads, validates and parses a config file at the given path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := Validate(data); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.ExplicitRules = make(map[string]bool, len(cfg.Rules))
	for name := range cfg.Rules {
		cfg.ExplicitRules[name] = true
	}

	return &cfg, nil
}

// Discover walks up the directory tree from startDir looking for a
// .tidylabel.yml config file. It stops searching when it encounters a
// .git directory (the repository root) or reaches the filesystem root.
// Returns the path to the config file, or "" if none was found.
func Discover(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolving absolute path: %w", err)
	}

	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		gitDir := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
			return "", nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// Defaults returns a Config with all built-in rules enabled
// with default settings (no custom settings).
func Defaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		enabled := true
		if d, ok := r.(rule.Defaultable); ok {
			enabled = d.EnabledByDefault()
		}
		rules[r.Name()] = RuleCfg{Enabled: enabled}
	}
	return &Config{
		Rules: rules,
	}
}

// DumpDefaults returns a Config with all registered rules enabled and
// their default settings populated, along with the default dataset
// layout. This is consumed by `tidylabel init`.
func DumpDefaults() *Config {
	all := rule.All()
	rules := make(map[string]RuleCfg, len(all))
	for _, r := range all {
		rc := RuleCfg{Enabled: true}
		if c, ok := r.(rule.Configurable); ok {
			rc.Settings = c.DefaultSettings()
		}
		rules[r.Name()] = rc
	}

	categories := make(map[string]bool, len(ValidCategories))
	for _, cat := range ValidCategories {
		categories[cat] = true
	}

	val, test := DefaultValPercent, DefaultTestPercent
	return &Config{
		Images:          "images",
		Labels:          "labels",
		ImageExtensions: append([]string(nil), DefaultImageExtensions...),
		Ignore:          []string{"classes.txt"},
		Split: Split{
			Out:          "split",
			ValPercent:   &val,
			TestPercent:  &test,
			GroupPattern: DefaultGroupPattern,
		},
		Rules:      rules,
		Categories: categories,
	}
}
