package orphanlabel

import (
	"fmt"
	"strings"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/rule"
	"github.com/jeduden/tidylabel/internal/yolo"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags label files with no image of the same stem. Image names are
// probed in the images directory for each configured extension in turn.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LBL003" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "orphan-label" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "pairing" }

// Subject implements rule.Describer.
func (r *Rule) Subject() string { return "labels without images" }

// Check implements rule.Rule.
func (r *Rule) Check(ds *lint.Dataset) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, f := range ds.Labels {
		if _, ok := yolo.FindImage(ds.ImagesDir, f.Stem(), ds.ImageExts); ok {
			continue
		}
		diags = append(diags, lint.Diagnostic{
			File:     f.Path,
			RuleID:   r.ID(),
			RuleName: r.Name(),
			Severity: lint.Error,
			Message: fmt.Sprintf("no image %s{%s}",
				f.Stem(), strings.Join(ds.ImageExts, ",")),
		})
	}
	return diags
}

// Fix implements rule.FixableRule by deleting the flagged labels.
func (r *Rule) Fix(_ *lint.Dataset, diags []lint.Diagnostic) ([]string, error) {
	return fix.RemovePaths(lint.Files(diags))
}

var _ rule.FixableRule = (*Rule)(nil)
