package log

import (
	"bytes"
	"testing"
)

func TestPrintf_Enabled(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Enabled: true, W: &buf}

	l.Printf("config: %s", ".tidylabel.yml")

	want := "config: .tidylabel.yml\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestPrintf_Disabled(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Enabled: false, W: &buf}

	l.Printf("config: %s", ".tidylabel.yml")

	if got := buf.String(); got != "" {
		t.Errorf("expected no output, got %q", got)
	}
}

func TestPrintf_NilLogger(t *testing.T) {
	var l *Logger
	l.Printf("group: %s", "brandA")
}

func TestPrintf_MultipleMessages(t *testing.T) {
	var buf bytes.Buffer
	l := &Logger{Enabled: true, W: &buf}

	l.Printf("labels: %s", "data/labels")
	l.Printf("rule: %s %s", "LBL001", "duplicate-bbox")

	want := "labels: data/labels\nrule: LBL001 duplicate-bbox\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWith_PrefixesLines(t *testing.T) {
	var buf bytes.Buffer
	root := &Logger{Enabled: true, W: &buf}

	root.With("split").Printf("group %s", "vidA")
	root.With("check").With("LBL001").Printf("2 findings")
	root.Printf("done")

	want := "split: group vidA\ncheck/LBL001: 2 findings\ndone\n"
	if got := buf.String(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWith_NilAndDisabled(t *testing.T) {
	var nilLogger *Logger
	if nilLogger.With("split") != nil {
		t.Error("With on nil logger should return nil")
	}

	var buf bytes.Buffer
	off := &Logger{Enabled: false, W: &buf}
	off.With("split").Printf("hidden")
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}
