package engine

import (
	"fmt"

	"github.com/jeduden/tidylabel/internal/config"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/log"
	"github.com/jeduden/tidylabel/internal/rule"
)

// Runner drives the validation pipeline. Enabled rules run one at a time
// in ID order. Before each check the dataset is read again from disk, so
// a check sees what the previous remediation left behind. After a check
// with findings, Confirm decides whether the rule's remediation runs.
type Runner struct {
	Config *config.Config
	Rules  []rule.Rule
	// Confirm is consulted for fixable checks with findings. Nil never
	// remediates.
	Confirm Decide
	// OnCheck, when set, is called after each check and its remediation.
	OnCheck func(CheckResult)
	Logger  *log.Logger
}

// CheckResult is the outcome of one check.
type CheckResult struct {
	RuleID      string
	RuleName    string
	Subject     string
	Diagnostics []lint.Diagnostic
	// Fixable reports whether the rule has a remediation.
	Fixable bool
	// Confirmed reports whether the remediation was approved.
	Confirmed bool
	// Changed lists the files rewritten or removed by the remediation.
	Changed []string
}

// Remediated reports whether the check's findings were acted upon.
func (c CheckResult) Remediated() bool {
	return c.Confirmed && c.Fixable
}

// Result holds the output of a validation run.
type Result struct {
	Checks []CheckResult
	Errors []error
}

// Remaining returns the diagnostics of checks that were not remediated.
func (r *Result) Remaining() []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, c := range r.Checks {
		if c.Remediated() {
			continue
		}
		out = append(out, c.Diagnostics...)
	}
	return out
}

// Diagnostics returns every diagnostic reported during the run.
func (r *Result) Diagnostics() []lint.Diagnostic {
	var out []lint.Diagnostic
	for _, c := range r.Checks {
		out = append(out, c.Diagnostics...)
	}
	return out
}

// Run validates the dataset described by src. A dataset that cannot be
// listed is a fatal error; per-file and remediation errors are collected
// in Result.Errors.
func (r *Runner) Run(src lint.Source) (*Result, error) {
	res := &Result{}

	cfg := r.Config
	if cfg == nil {
		cfg = config.Defaults()
	}
	rules, errs := EnabledRules(cfg, r.Rules, src.LabelsDir)
	res.Errors = append(res.Errors, errs...)

	for i, rl := range rules {
		ds, err := lint.LoadDataset(src)
		if err != nil {
			return res, err
		}
		if i == 0 {
			res.Errors = append(res.Errors, ds.Errors...)
		}

		diags := rl.Check(ds)
		lint.SortDiagnostics(diags)
		fr, fixable := rl.(rule.FixableRule)
		cr := CheckResult{
			RuleID:      rl.ID(),
			RuleName:    rl.Name(),
			Subject:     rule.Subject(rl),
			Diagnostics: diags,
			Fixable:     fixable,
		}
		r.Logger.Printf("%s %s: %d finding(s)", rl.ID(), rl.Name(), len(diags))

		if len(diags) > 0 && fixable && r.Confirm != nil && r.Confirm(rl, diags) {
			cr.Confirmed = true
			changed, err := fr.Fix(ds, diags)
			cr.Changed = changed
			if err != nil {
				cr.Confirmed = false
				res.Errors = append(res.Errors, fmt.Errorf("%s: %w", rl.Name(), err))
			}
			r.Logger.Printf("%s %s: %d file(s) changed", rl.ID(), rl.Name(), len(changed))
		}

		if r.OnCheck != nil {
			r.OnCheck(cr)
		}
		res.Checks = append(res.Checks, cr)
	}

	return res, nil
}
