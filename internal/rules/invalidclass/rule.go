package invalidclass

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

// Rule flags label files whose well-formed lines use a class outside the
// valid set. Classes, when set, overrides the dataset's class set. With
// neither set the rule reports nothing.
type Rule struct {
	Classes []int
}

// ID implements rule.Rule.
func (r *Rule) ID() string { return "LBL006" }

// Name implements rule.Rule.
func (r *Rule) Name() string { return "invalid-class" }

// Category implements rule.Rule.
func (r *Rule) Category() string { return "records" }

// Subject implements rule.Describer.
func (r *Rule) Subject() string { return "incorrect class labels" }

func (r *Rule) validSet(ds *lint.Dataset) map[int]bool {
	if len(r.Classes) == 0 {
		return ds.ValidClasses
	}
	set := make(map[int]bool, len(r.Classes))
	for _, c := range r.Classes {
		set[c] = true
	}
	return set
}

// Check implements rule.Rule.
func (r *Rule) Check(ds *lint.Dataset) []lint.Diagnostic {
	valid := r.validSet(ds)
	if len(valid) == 0 {
		return nil
	}
	var diags []lint.Diagnostic
	for _, f := range ds.Labels {
		for i := range f.Lines {
			line := f.Text(i)
			if !yolo.WellFormed(line) {
				continue
			}
			var msg string
			class, err := yolo.ParseClassID(line)
			switch {
			case err != nil:
				msg = fmt.Sprintf("class token %q is not an integer", yolo.Fields(line)[0])
			case !valid[class]:
				msg = fmt.Sprintf("class %d is not in the valid set", class)
			default:
				continue
			}
			diags = append(diags, lint.Diagnostic{
				File:     f.Path,
				Line:     i + 1,
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Severity: lint.Error,
				Message:  msg,
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

// ApplySettings implements rule.Configurable.
func (r *Rule) ApplySettings(settings map[string]any) error {
	for k, v := range settings {
		switch k {
		case "classes":
			list, ok := toIntSlice(v)
			if !ok {
				return fmt.Errorf("invalid-class: classes must be a list of integers, got %T", v)
			}
			r.Classes = list
		default:
			return fmt.Errorf("invalid-class: unknown setting %q", k)
		}
	}
	return nil
}

// DefaultSettings implements rule.Configurable.
func (r *Rule) DefaultSettings() map[string]any {
	return map[string]any{
		"classes": []int{},
	}
}

func toIntSlice(v any) ([]int, bool) {
	switch vals := v.(type) {
	case []int:
		return vals, true
	case []any:
		out := make([]int, 0, len(vals))
		for _, item := range vals {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case float64:
				if n != float64(int(n)) {
					return nil, false
				}
				out = append(out, int(n))
			default:
				return nil, false
			}
		}
		return out, true
	}
	return nil, false
}

var (
	_ rule.FixableRule  = (*Rule)(nil)
	_ rule.Configurable = (*Rule)(nil)
)
