package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ValidCategories lists the rule categories that can be toggled.
var ValidCategories = []string{"records", "pairing"}

// Default values used when the config leaves a field unset.
const (
	DefaultValPercent   = 20.0
	DefaultTestPercent  = 10.0
	DefaultGroupPattern = `^(.+)_\d+`
)

// DefaultImageExtensions is the image probe order.
var DefaultImageExtensions = []string{".jpg", ".png", ".jpeg"}

// Config is the top-level configuration.
type Config struct {
	Images          string             `yaml:"images,omitempty"`
	Labels          string             `yaml:"labels,omitempty"`
	ImageExtensions []string           `yaml:"image-extensions,omitempty"`
	Classes         []int              `yaml:"classes,omitempty"`
	Ignore          []string           `yaml:"ignore,omitempty"`
	Split           Split              `yaml:"split,omitempty"`
	Rules           map[string]RuleCfg `yaml:"rules"`
	Categories      map[string]bool    `yaml:"categories,omitempty"`
	Overrides       []Override         `yaml:"overrides,omitempty"`

	// ExplicitRules records rule names set in the user's config, so that
	// a disabled category does not override an explicit rule entry.
	ExplicitRules map[string]bool `yaml:"-"`
}

// Split configures the partitioning command.
type Split struct {
	Out          string   `yaml:"out,omitempty"`
	ValPercent   *float64 `yaml:"val-percent,omitempty"`
	TestPercent  *float64 `yaml:"test-percent,omitempty"`
	GroupPattern string   `yaml:"group-pattern,omitempty"`
}

// Override applies rule settings to datasets whose labels directory
// matches one of the glob patterns, e.g. "**/test/labels".
type Override struct {
	Datasets []string           `yaml:"datasets"`
	Rules    map[string]RuleCfg `yaml:"rules"`
}

// RuleCfg is a YAML union: can be bool (enable/disable) or map[string]any (settings).
type RuleCfg struct {
	Enabled  bool
	Settings map[string]any
}

// UnmarshalYAML implements custom YAML unmarshalling for RuleCfg.
// It handles three forms:
//   - false -> Enabled=false, Settings=nil
//   - true  -> Enabled=true,  Settings=nil
//   - {key: val, ...} -> Enabled=true, Settings={key: val, ...}
func (r *RuleCfg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var b bool
		if err := value.Decode(&b); err == nil {
			r.Enabled = b
			r.Settings = nil
			return nil
		}
	}

	if value.Kind == yaml.MappingNode {
		var m map[string]any
		if err := value.Decode(&m); err != nil {
			return fmt.Errorf("invalid rule config: %w", err)
		}
		r.Enabled = true
		r.Settings = m
		return nil
	}

	return fmt.Errorf("rule config must be a bool or a mapping, got %v", value.Kind)
}

// MarshalYAML writes a RuleCfg back in its shortest form: the settings
// map when present, otherwise the enabled flag.
func (r RuleCfg) MarshalYAML() (any, error) {
	if r.Enabled && len(r.Settings) > 0 {
		return r.Settings, nil
	}
	return r.Enabled, nil
}

// ValPercentOrDefault returns the configured validation percentage or
// its default.
func (s Split) ValPercentOrDefault() float64 {
	if s.ValPercent == nil {
		return DefaultValPercent
	}
	return *s.ValPercent
}

// TestPercentOrDefault returns the configured test percentage or its
// default.
func (s Split) TestPercentOrDefault() float64 {
	if s.TestPercent == nil {
		return DefaultTestPercent
	}
	return *s.TestPercent
}

// GroupPatternOrDefault returns the configured group pattern or its
// default.
func (s Split) GroupPatternOrDefault() string {
	if s.GroupPattern == "" {
		return DefaultGroupPattern
	}
	return s.GroupPattern
}

// ImageExts returns the configured image extensions or the defaults.
func (c *Config) ImageExts() []string {
	if len(c.ImageExtensions) == 0 {
		return DefaultImageExtensions
	}
	return c.ImageExtensions
}

// ClassSet returns Classes as a set, or nil when no classes are
// configured.
func (c *Config) ClassSet() map[int]bool {
	if len(c.Classes) == 0 {
		return nil
	}
	set := make(map[int]bool, len(c.Classes))
	for _, cl := range c.Classes {
		set[cl] = true
	}
	return set
}
