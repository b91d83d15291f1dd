package lint

import "sort"

// Severity indicates the severity level of a diagnostic.
type Severity string

// Severity levels.
const (
	Error   Severity = "error"
	Warning Severity = "warning"
)

// Diagnostic represents a single finding against a dataset file.
// Line is 1-based; zero means the finding applies to the whole file.
type Diagnostic struct {
	File     string
	Line     int
	RuleID   string
	RuleName string
	Severity Severity
	Message  string
}

// LineIndices groups line-level diagnostics by file and returns the
// 0-based line indices for each file, sorted ascending.
func LineIndices(diags []Diagnostic) map[string][]int {
	out := make(map[string][]int)
	for _, d := range diags {
		if d.Line <= 0 {
			continue
		}
		out[d.File] = append(out[d.File], d.Line-1)
	}
	for f := range out {
		sort.Ints(out[f])
	}
	return out
}

// Files returns the distinct file names referenced by diags, in first
// seen order.
func Files(diags []Diagnostic) []string {
	seen := make(map[string]bool)
	var files []string
	for _, d := range diags {
		if !seen[d.File] {
			seen[d.File] = true
			files = append(files, d.File)
		}
	}
	return files
}

// SortDiagnostics orders diagnostics by rule, file and line.
func SortDiagnostics(diags []Diagnostic) {
	sort.SliceStable(diags, func(i, j int) bool {
		di, dj := diags[i], diags[j]
		if di.RuleID != dj.RuleID {
			return di.RuleID < dj.RuleID
		}
		if di.File != dj.File {
			return di.File < dj.File
		}
		return di.Line < dj.Line
	})
}
