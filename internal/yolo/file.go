package yolo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// LabelExt is the extension of label files.
const LabelExt = ".txt"

// File holds a label file and its raw lines.
type File struct {
	Name   string
	Path   string
	Source []byte
	// Lines keeps each line with its terminator so a file can be
	// rewritten byte-for-byte minus selected lines.
	Lines [][]byte
}

// NewFile splits source into lines.
func NewFile(path string, source []byte) *File {
	return &File{
		Name:   filepath.Base(path),
		Path:   path,
		Source: source,
		Lines:  SplitLines(source),
	}
}

// ReadFile reads and splits the label file at path.
func ReadFile(path string) (*File, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return NewFile(path, source), nil
}

// SplitLines splits source after each newline. A trailing newline does
// not produce an empty final line.
func SplitLines(source []byte) [][]byte {
	if len(source) == 0 {
		return nil
	}
	lines := bytes.SplitAfter(source, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Text returns line i without its terminator.
func (f *File) Text(i int) string {
	line := f.Lines[i]
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	return string(line)
}

// Stem returns the file name without its extension.
func (f *File) Stem() string {
	return Stem(f.Name)
}

// Omit returns the file contents without the lines at the given
// 0-based indices. Indices refer to the original line numbering.
func (f *File) Omit(indices []int) []byte {
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}
	var out []byte
	for i, line := range f.Lines {
		if drop[i] {
			continue
		}
		out = append(out, line...)
	}
	return out
}
