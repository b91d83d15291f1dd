package orphanimage

import (
	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/rule"
	"github.com/jeduden/tidylabel/internal/yolo"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags image files that have no label file with the same stem.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LBL002" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "orphan-image" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "pairing" }

// Subject implements rule.Describer.
func (r *Rule) Subject() string { return "images without labels" }

// Check implements rule.Rule.
func (r *Rule) Check(ds *lint.Dataset) []lint.Diagnostic {
	labels := ds.LabelStems()
	var diags []lint.Diagnostic
	for _, name := range ds.Images {
		if labels[yolo.Stem(name)] {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			File:     ds.ImagePath(name),
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Error,
			Message:  "no label file " + yolo.LabelName(yolo.Stem(name)),
		})
	}
	return diags
}

// Fix implements rule.FixableRule by deleting the flagged images.
func (r *Rule) Fix(_ *lint.Dataset, diags []lint.Diagnostic) ([]string, error) {
	return fix.RemovePaths(lint.Files(diags))
}

var _ rule.FixableRule = (*Rule)(nil)
