package curate

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// RemapResult reports what Remap did.
type RemapResult struct {
	Rewritten []string `json:"rewritten"`
	Unchanged int      `json:"unchanged"`
	// RemappedLines counts lines whose class token changed.
	RemappedLines int `json:"remapped_lines"`
}

// Remap rewrites the class of every line whose class is a key of
// mapping. Only the class token is replaced; the rest of each line is
// kept byte for byte. Files are written only when they change, so an
// identity mapping touches nothing.
func Remap(labelsDir string, mapping map[int]int) (RemapResult, error) {
	var res RemapResult
	files, err := loadLabels(labelsDir)
	if err != nil {
		return res, err
	}

	for _, f := range files {
		var out []byte
		changed := 0
		for _, line := range f.Lines {
			newLine, ok := remapLine(line, mapping)
			if ok {
				changed++
			}
			out = append(out, newLine...)
		}
		if changed == 0 {
			res.Unchanged++
			continue
		}
		if err := fix.Rewrite(f.Path, out); err != nil {
			return res, err
		}
		res.Rewritten = append(res.Rewritten, f.Name)
		res.RemappedLines += changed
	}
	return res, nil
}

// remapLine replaces the leading class token of line. It reports false
// when the line is left as is.
func remapLine(line []byte, mapping map[int]int) ([]byte, bool) {
	start := 0
	for start < len(line) && isSpace(line[start]) {
		start++
	}
	end := start
	for end < len(line) && !isSpace(line[end]) {
		end++
	}
	if start == end {
		return line, false
	}

	class, err := strconv.Atoi(string(line[start:end]))
	if err != nil {
		return line, false
	}
	to, ok := mapping[class]
	if !ok || to == class {
		return line, false
	}

	var b bytes.Buffer
	b.Write(line[:start])
	b.WriteString(strconv.Itoa(to))
	b.Write(line[end:])
	return b.Bytes(), true
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// UniqueClasses returns the sorted set of classes used across the label
// files of dirs.
func UniqueClasses(dirs ...string) ([]int, error) {
	seen := make(map[int]bool)
	for _, dir := range dirs {
		files, err := loadLabels(dir)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			for class := range classesOf(f) {
				seen[class] = true
			}
		}
	}
	classes := make([]int, 0, len(seen))
	for class := range seen {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	return classes, nil
}

// ContiguousMapping maps the sorted unique classes of dirs onto 0..n-1.
func ContiguousMapping(dirs ...string) (map[int]int, error) {
	classes, err := UniqueClasses(dirs...)
	if err != nil {
		return nil, err
	}
	mapping := make(map[int]int, len(classes))
	for i, class := range classes {
		mapping[class] = i
	}
	return mapping, nil
}

// ParseMapping parses "old:new" pairs separated by commas, for example
// "21:0,24:1". Each old class may appear once.
func ParseMapping(s string) (map[int]int, error) {
	mapping := make(map[int]int)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		oldStr, newStr, ok := strings.Cut(pair, ":")
		if !ok {
			return nil, fmt.Errorf("invalid mapping %q: want old:new", pair)
		}
		from, err := strconv.Atoi(strings.TrimSpace(oldStr))
		if err != nil {
			return nil, fmt.Errorf("invalid class %q in mapping: %w", oldStr, err)
		}
		to, err := strconv.Atoi(strings.TrimSpace(newStr))
		if err != nil {
			return nil, fmt.Errorf("invalid class %q in mapping: %w", newStr, err)
		}
		if _, dup := mapping[from]; dup {
			return nil, fmt.Errorf("class %d mapped twice", from)
		}
		mapping[from] = to
	}
	if len(mapping) == 0 {
		return nil, fmt.Errorf("empty mapping")
	}
	return mapping, nil
}

// ParseClasses parses a comma-separated class list such as "0,3,7".
func ParseClasses(s string) (map[int]bool, error) {
	classes := make(map[int]bool)
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		class, err := yolo.ParseClassID(field)
		if err != nil {
			return nil, err
		}
		classes[class] = true
	}
	if len(classes) == 0 {
		return nil, fmt.Errorf("no classes given")
	}
	return classes, nil
}
