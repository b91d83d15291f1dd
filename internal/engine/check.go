package engine

import (
	"fmt"
	"sort"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/rule"
)

// Decide is asked, once per check that produced findings, whether the
// check's remediation should run.
type Decide func(r rule.Rule, diags []lint.Diagnostic) bool

// Always returns a Decide that answers proceed for every check.
func Always(proceed bool) Decide {
	return func(rule.Rule, []lint.Diagnostic) bool { return proceed }
}

// ConfigureRule clones a rule and applies settings from cfg if the rule
// implements Configurable and cfg has settings. Returns the configured
// rule (or the original if no settings apply) and any error from
// ApplySettings.
func ConfigureRule(rl rule.Rule, cfg config.RuleCfg) (rule.Rule, error) {
	if cfg.Settings == nil {
		return rl, nil
	}
	if _, ok := rl.(rule.Configurable); !ok {
		return rl, nil
	}
	clone := rule.CloneRule(rl)
	if c, ok := clone.(rule.Configurable); ok {
		if err := c.ApplySettings(cfg.Settings); err != nil {
			return nil, fmt.Errorf("applying settings for %s: %w", rl.Name(), err)
		}
	}
	return clone, nil
}

// EnabledRules returns the rules enabled for the dataset rooted at
// labelsDir, configured with their effective settings and sorted by ID.
// Rule categories and per-dataset overrides are applied.
func EnabledRules(cfg *config.Config, rules []rule.Rule, labelsDir string) ([]rule.Rule, []error) {
	effective := config.Effective(cfg, labelsDir)
	if len(cfg.Categories) > 0 {
		categoryOf := make(map[string]string, len(rules))
		for _, rl := range rules {
			categoryOf[rl.Name()] = rl.Category()
		}
		effective = config.ApplyCategories(
			effective,
			cfg.Categories,
			func(name string) string { return categoryOf[name] },
			config.EffectiveExplicitRules(cfg, labelsDir),
		)
	}

	var enabled []rule.Rule
	var errs []error
	for _, rl := range rules {
		rc, ok := effective[rl.Name()]
		if !ok || !rc.Enabled {
			continue
		}
		configured, err := ConfigureRule(rl, rc)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		enabled = append(enabled, configured)
	}

	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].ID() < enabled[j].ID()
	})
	return enabled, errs
}
