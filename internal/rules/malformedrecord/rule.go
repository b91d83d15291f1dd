package malformedrecord

import (
	"fmt"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/rule"
	"github.com/jeduden/tidylabel/internal/yolo"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags label files containing a line that does not have exactly
// five fields. Only the first such line of a file is reported.
type Rule struct{}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LBL004" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "malformed-record" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "records" }

// Subject implements rule.Describer.
func (r *Rule) Subject() string { return "non-YOLO format labels" }

// Check implements rule.Rule.
func (r *Rule) Check(ds *lint.Dataset) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, f := range ds.Labels {
		for i := range f.Lines {
			n := len(yolo.Fields(f.Text(i)))
			if n == yolo.FieldCount {
				continue
			}
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     i + 1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Error,
				Message:  fmt.Sprintf("expected %d fields, got %d", yolo.FieldCount, n),
			})
			break
		}
	}
	return diags
}

// Fix implements rule.FixableRule by deleting the flagged labels.
func (r *Rule) Fix(_ *lint.Dataset, diags []lint.Diagnostic) ([]string, error) {
	return fix.RemovePaths(lint.Files(diags))
}

var _ rule.FixableRule = (*Rule)(nil)
