package emptydetection

import (
	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/rule"
	"github.com/jeduden/tidylabel/internal/yolo"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags label files without a single five-field line. A file made
// only of blank or malformed lines counts as empty.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LBL005" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "empty-detection" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "records" }

// Subject implements rule.Describer.
func (r *Rule) Subject() string { return "labels without detections" }

// Check implements rule.Rule.
func (r *Rule) Check(ds *lint.Dataset) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, f := range ds.Labels {
		if hasDetection(f) {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			File:     f.Path,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Error,
			Message:  "no detections",
		})
	}
	return diags
}

func hasDetection(f *yolo.File) bool {
	for i := range f.Lines {
		if yolo.WellFormed(f.Text(i)) {
			return true
		}
	}
	return false
}

// Fix implements rule.FixableRule by deleting the flagged labels.
func (r *Rule) Fix(_ *lint.Dataset, diags []lint.Diagnostic) ([]string, error) {
	return fix.RemovePaths(lint.Files(diags))
}

var _ rule.FixableRule = (*Rule)(nil)
