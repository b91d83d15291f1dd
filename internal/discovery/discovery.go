// Package discovery lists dataset files by expanding glob patterns
// against a directory.
package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// Options controls how file discovery behaves.
type Options struct {
	// Patterns is the list of doublestar patterns, relative to BaseDir,
	// that a file must match. An empty list discovers nothing.
	Patterns []string

	// BaseDir is the directory to walk. Defaults to "." if empty.
	BaseDir string

	// Ignore lists gobwas/glob patterns matched against the file's base
	// name and its slash-separated relative path.
	Ignore []string

	// Recursive descends into subdirectories. Dataset directories are
	// flat, so the default only lists BaseDir itself.
	Recursive bool

	// FoldCase matches patterns case-insensitively.
	FoldCase bool
}

// Discover walks BaseDir and returns the paths of files matching any of
// the configured patterns and none of the ignore patterns. Results are
// deduplicated and sorted.
func Discover(opts Options) ([]string, error) {
	if len(opts.Patterns) == 0 {
		return nil, nil
	}

	baseDir := opts.BaseDir
	if baseDir == "" {
		baseDir = "."
	}

	info, err := os.Stat(baseDir)
	if err != nil {
		return nil, fmt.Errorf("cannot access %q: %w", baseDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", baseDir)
	}

	w := &walker{
		base:      baseDir,
		patterns:  validatePatterns(opts.Patterns, opts.FoldCase),
		ignore:    compileIgnore(opts.Ignore),
		recursive: opts.Recursive,
		foldCase:  opts.FoldCase,
		seen:      make(map[string]bool),
	}
	if len(w.patterns) == 0 {
		return nil, nil
	}

	if err := filepath.WalkDir(baseDir, w.visit); err != nil {
		return nil, fmt.Errorf("walking directory %q: %w", baseDir, err)
	}

	sort.Strings(w.result)
	return w.result, nil
}

// Names is like Discover but returns base names.
func Names(opts Options) ([]string, error) {
	paths, err := Discover(opts)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	sort.Strings(names)
	return names, nil
}

// validatePatterns returns patterns that are syntactically valid.
func validatePatterns(patterns []string, foldCase bool) []string {
	valid := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if foldCase {
			p = strings.ToLower(p)
		}
		if doublestar.ValidatePattern(p) {
			valid = append(valid, p)
		}
	}
	return valid
}

// compileIgnore compiles ignore patterns, skipping invalid ones.
func compileIgnore(patterns []string) []glob.Glob {
	var globs []glob.Glob
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

// walker holds state for the directory walk.
type walker struct {
	base      string
	patterns  []string
	ignore    []glob.Glob
	recursive bool
	foldCase  bool
	seen      map[string]bool
	result    []string
}

// visit is the filepath.WalkDirFunc callback.
func (w *walker) visit(path string, d os.DirEntry, walkErr error) error {
	if walkErr != nil {
		return walkErr
	}

	rel, err := filepath.Rel(w.base, path)
	if err != nil || rel == "." {
		return nil
	}
	rel = filepath.ToSlash(rel)

	if d.IsDir() {
		if !w.recursive {
			return filepath.SkipDir
		}
		return nil
	}

	if w.isIgnored(rel) {
		return nil
	}
	if w.matchesAny(rel) {
		w.addFile(path)
	}
	return nil
}

// isIgnored returns true if rel or its base name matches an ignore pattern.
func (w *walker) isIgnored(rel string) bool {
	base := filepath.Base(rel)
	for _, g := range w.ignore {
		if g.Match(rel) || g.Match(base) {
			return true
		}
	}
	return false
}

// matchesAny returns true if rel matches any of the configured patterns.
func (w *walker) matchesAny(rel string) bool {
	if w.foldCase {
		rel = strings.ToLower(rel)
	}
	for _, p := range w.patterns {
		matched, err := doublestar.Match(p, rel)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// addFile adds a file to the result set if not already seen.
func (w *walker) addFile(path string) {
	if !w.seen[path] {
		w.seen[path] = true
		w.result = append(w.result, path)
	}
}

// ExtPatterns turns extensions such as ".png" into "*.png" patterns.
func ExtPatterns(exts []string) []string {
	patterns := make([]string, 0, len(exts))
	for _, ext := range exts {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		patterns = append(patterns, "*"+ext)
	}
	return patterns
}
