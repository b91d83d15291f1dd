// Package split partitions a labelled dataset into train, validation and
// test sets. Files are grouped by source video so that frames of one
// video never straddle partitions, and whole groups are assigned
// greedily against per-class target counts.
package split

import (
	"fmt"
	"regexp"
)

// DefaultGroupPattern takes everything before the last "_<digits>" run,
// so "brandA_0037.txt" belongs to group "brandA".
const DefaultGroupPattern = `^(.+)_\d+`

// PrefixGroupPattern takes everything before the first underscore.
const PrefixGroupPattern = `^(.+?)_`

// GroupExtractor derives a group key from a file name.
type GroupExtractor struct {
	re *regexp.Regexp
}

// NewGroupExtractor compiles pattern. The first capture group of a match
// against the full file name is the group key.
func NewGroupExtractor(pattern string) (*GroupExtractor, error) {
	if pattern == "" {
		pattern = DefaultGroupPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling group pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("group pattern %q has no capture group", pattern)
	}
	return &GroupExtractor{re: re}, nil
}

// Pattern returns the source of the compiled pattern.
func (g *GroupExtractor) Pattern() string {
	return g.re.String()
}

// Group returns the group key of name. It reports false when the name
// does not follow the grouping convention.
func (g *GroupExtractor) Group(name string) (string, bool) {
	m := g.re.FindStringSubmatch(name)
	if m == nil || m[1] == "" {
		return "", false
	}
	return m[1], true
}
