package config

import (
	"github.com/gobwas/glob"
)

// Merge merges a loaded config on top of defaults. The loaded config's rules
// override the defaults; any rule not mentioned in loaded keeps its default
// value. Dataset settings, Ignore and Overrides come from the loaded config.
func Merge(defaults, loaded *Config) *Config {
	rules := make(map[string]RuleCfg, len(defaults.Rules))
	for k, v := range defaults.Rules {
		rules[k] = v
	}

	if loaded == nil {
		return &Config{Rules: rules, Categories: defaults.Categories}
	}

	for k, v := range loaded.Rules {
		rules[k] = v
	}

	categories := make(map[string]bool)
	for k, v := range defaults.Categories {
		categories[k] = v
	}
	for k, v := range loaded.Categories {
		categories[k] = v
	}

	explicit := make(map[string]bool, len(loaded.ExplicitRules))
	for k, v := range loaded.ExplicitRules {
		explicit[k] = v
	}

	return &Config{
		Images:          loaded.Images,
		Labels:          loaded.Labels,
		ImageExtensions: loaded.ImageExtensions,
		Classes:         loaded.Classes,
		Ignore:          loaded.Ignore,
		Split:           loaded.Split,
		Rules:           rules,
		Categories:      categories,
		Overrides:       loaded.Overrides,
		ExplicitRules:   explicit,
	}
}

// Effective returns the effective rule configuration for a dataset whose
// labels directory is labelsDir. It starts with the top-level rules and
// then applies each override whose patterns match, in order. Later
// overrides take precedence.
func Effective(cfg *Config, labelsDir string) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(cfg.Rules))
	for k, v := range cfg.Rules {
		result[k] = v
	}

	for _, o := range cfg.Overrides {
		if matchesAny(o.Datasets, labelsDir) {
			for k, v := range o.Rules {
				result[k] = v
			}
		}
	}

	return result
}

// EffectiveExplicitRules returns the rule names set explicitly for a
// dataset, either at top level or in a matching override.
func EffectiveExplicitRules(cfg *Config, labelsDir string) map[string]bool {
	result := make(map[string]bool, len(cfg.ExplicitRules))
	for k, v := range cfg.ExplicitRules {
		result[k] = v
	}
	for _, o := range cfg.Overrides {
		if matchesAny(o.Datasets, labelsDir) {
			for k := range o.Rules {
				result[k] = true
			}
		}
	}
	return result
}

// ApplyCategories disables rules whose category is set to false, unless
// the rule was set explicitly. ruleCategory maps a rule name to its
// category.
func ApplyCategories(
	rules map[string]RuleCfg,
	categories map[string]bool,
	ruleCategory func(string) string,
	explicit map[string]bool,
) map[string]RuleCfg {
	result := make(map[string]RuleCfg, len(rules))
	for name, rc := range rules {
		if !explicit[name] {
			if enabled, ok := categories[ruleCategory(name)]; ok && !enabled {
				rc.Enabled = false
			}
		}
		result[name] = rc
	}
	return result
}

// matchesAny returns true if path matches any of the given glob patterns.
func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			continue
		}
		if g.Match(path) {
			return true
		}
	}
	return false
}
