package rule

import "github.com/jeduden/tidylabel/internal/lint"

// Rule is a single validation rule that inspects a labelled dataset.
type Rule interface {
	ID() string
	Name() string
	Category() string
	Check(ds *lint.Dataset) []lint.Diagnostic
}

// FixableRule is a Rule that can also remediate its findings. Fix acts
// only on the files named by diags and returns the paths it changed or
// removed.
type FixableRule interface {
	Rule
	Fix(ds *lint.Dataset, diags []lint.Diagnostic) ([]string, error)
}

// Configurable is implemented by rules that have user-tunable settings.
type Configurable interface {
	ApplySettings(settings map[string]any) error
	DefaultSettings() map[string]any
}

// Defaultable is implemented by rules that override the default enabled
// state in generated/runtime configs.
type Defaultable interface {
	EnabledByDefault() bool
}

// Describer is implemented by rules that name what they flag in plain
// words, e.g. "images without labels". Prompts and summaries use it.
type Describer interface {
	Subject() string
}

// Subject returns r's subject, falling back to its name.
func Subject(r Rule) string {
	if d, ok := r.(Describer); ok {
		return d.Subject()
	}
	return r.Name()
}
