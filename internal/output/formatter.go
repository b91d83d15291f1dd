package output

import (
	"fmt"
	"io"

	"github.com/jeduden/tidylabel/internal/lint"
)

// Formatter defines the interface for outputting diagnostics.
type Formatter interface {
	Format(w io.Writer, diagnostics []lint.Diagnostic) error
}

// New returns the formatter for a --format value.
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return &TextFormatter{Color: color}, nil
	case "json":
		return &JSONFormatter{}, nil
	}
	return nil, fmt.Errorf("unknown format %q (valid: text, json)", format)
}
