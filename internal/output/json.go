package output

import (
	"encoding/json"
	"io"
	"path/filepath"
	"strings"

	"github.com/jeduden/tidylabel/internal/lint"
)

// JSONFormatter outputs diagnostics as a JSON array.
type JSONFormatter struct{}

type jsonDiagnostic struct {
	File string `json:"file"`
	// Kind is "label" for .txt annotation files and "image" otherwise.
	Kind string `json:"kind"`
	Line int    `json:"line,omitempty"`
	// Index is the 0-based line index used by remediation; absent for
	// whole-file findings.
	Index    *int   `json:"index,omitempty"`
	Rule     string `json:"rule"`
	Name     string `json:"name"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

func fileKind(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".txt") {
		return "label"
	}
	return "image"
}

// Format writes diagnostics as an indented JSON array, [] when empty.
func (f *JSONFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	items := make([]jsonDiagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		item := jsonDiagnostic{
			File:     d.File,
			Kind:     fileKind(d.File),
			Line:     d.Line,
			Rule:     d.RuleID,
			Name:     d.RuleName,
			Severity: string(d.Severity),
			Message:  d.Message,
		}
		if d.Line > 0 {
			idx := d.Line - 1
			item.Index = &idx
		}
		items = append(items, item)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
