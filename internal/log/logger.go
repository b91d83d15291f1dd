package log

import (
	"fmt"
	"io"
)

// Logger writes verbose progress messages when Enabled is true.
// Output goes to W, normally stderr. A nil *Logger is valid and
// discards everything.
type Logger struct {
	Enabled bool
	W       io.Writer
	// Scope, when set, prefixes every line as "scope: ".
	Scope string
}

// With returns a logger sharing l's writer and state whose lines are
// prefixed with scope. Nested scopes are joined with "/".
func (l *Logger) With(scope string) *Logger {
	if l == nil {
		return nil
	}
	if l.Scope != "" {
		scope = l.Scope + "/" + scope
	}
	return &Logger{Enabled: l.Enabled, W: l.W, Scope: scope}
}

// Printf writes one formatted line to W. It does nothing when the
// logger is nil or disabled.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil || !l.Enabled || l.W == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if l.Scope != "" {
		msg = l.Scope + ": " + msg
	}
	_, _ = fmt.Fprintln(l.W, msg)
}
