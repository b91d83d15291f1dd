package output

import (
	"fmt"
	"io"

	"github.com/jeduden/tidylabel/internal/lint"
)

// TextFormatter outputs diagnostics in human-readable text format.
// When Color is true, the file location is printed in cyan and the rule ID in yellow.
type TextFormatter struct {
	Color bool
}

// Format writes each diagnostic as a single line in the pattern
// "file:line rule message". Whole-file diagnostics omit the line.
func (f *TextFormatter) Format(w io.Writer, diagnostics []lint.Diagnostic) error {
	for _, d := range diagnostics {
		loc := d.File
		if d.Line > 0 {
			loc = fmt.Sprintf("%s:%d", d.File, d.Line)
		}
		var err error
		if f.Color {
			_, err = fmt.Fprintf(w, "\033[36m%s\033[0m \033[33m%s\033[0m %s\n",
				loc, d.RuleID, d.Message)
		} else {
			_, err = fmt.Fprintf(w, "%s %s %s\n", loc, d.RuleID, d.Message)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
