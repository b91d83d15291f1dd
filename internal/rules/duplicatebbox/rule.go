package duplicatebbox

import (
	"fmt"
	"strings"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/lint"
	"github.com/jeduden/tidylabel/internal/rule"
)

func init() {
	rule.Register(&Rule{})
}

// Rule flags lines that repeat an earlier line of the same label file.
// By default lines are compared exactly, without their terminator.
// NormalizeWhitespace trims surrounding whitespace before comparing.
type Rule struct {
	NormalizeWhitespace bool
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LBL001" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "duplicate-bbox" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "records" }

// Subject implements rule.Describer.
func (r *Rule) Subject() string { return "duplicate bounding boxes" }

// Check implements rule.Rule.
func (r *Rule) Check(ds *lint.Dataset) []lint.Diagnostic {
	var diags []lint.Diagnostic
	for _, f := range ds.Labels {
		seen := make(map[string]int, len(f.Lines))
		for i := range f.Lines {
			key := f.Text(i)
			if r.NormalizeWhitespace {
				key = strings.TrimSpace(key)
			}
			first, dup := seen[key]
			if !dup {
				seen[key] = i
				continue
			}
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     i + 1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Warning,
				Message:  fmt.Sprintf("duplicate of line %d", first+1),
			})
		}
	}
	return diags
}

// Fix implements rule.FixableRule. Each file is rewritten without the
// flagged lines; indices refer to the file as it was checked.
func (r *Rule) Fix(ds *lint.Dataset, diags []lint.Diagnostic) ([]string, error) {
	byFile := lint.LineIndices(diags)
	var changed []string
	for _, path := range lint.Files(diags) {
		f := ds.Label(path)
		if f == nil {
			continue
		}
		indices := byFile[path]
		if len(indices) == 0 {
			continue
		}
		if err := fix.Rewrite(path, f.Omit(indices)); err != nil {
			return changed, err
		}
		changed = append(changed, path)
	}
	return changed, nil
}

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "normalize-whitespace":
			b, ok := v.(bool)
			if !ok {
				return fmt.Errorf("duplicate-bbox: normalize-whitespace must be a bool, got %T", v)
			}
			r.NormalizeWhitespace = b
		default:
			return fmt.Errorf("duplicate-bbox: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"normalize-whitespace": false,
	}
}

var (
	_ rule.FixableRule  = (*Rule)(nil)
	_ rule.Configurable = (*Rule)(nil)
)
