package split

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jeduden/tidylabel/internal/log"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// ClassCounts maps a class id to a number of bounding boxes.
type ClassCounts map[int]int

// Classes returns the class ids in ascending order.
func (c ClassCounts) Classes() []int {
	classes := make([]int, 0, len(c))
	for class := range c {
		classes = append(classes, class)
	}
	sort.Ints(classes)
	return classes
}

// Total returns the sum over all classes.
func (c ClassCounts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// Add adds other into c.
func (c ClassCounts) Add(other ClassCounts) {
	for class, n := range other {
		c[class] += n
	}
}

// Counts is the result of aggregating a labels directory. It is built
// once and read-only afterwards.
type Counts struct {
	// Order lists group keys in the order they were first observed.
	Order []string
	// ByGroup holds per-group class counts.
	ByGroup map[string]ClassCounts
	// Totals holds class counts over every grouped file.
	Totals ClassCounts
	// Files lists the label file names of each group, in listing order.
	Files map[string][]string
	// Ungrouped lists label file names that matched no group.
	Ungrouped []string
	// SkippedLines counts lines whose class id could not be parsed.
	SkippedLines int
}

// FileCount returns the number of grouped label files.
func (c *Counts) FileCount() int {
	n := 0
	for _, files := range c.Files {
		n += len(files)
	}
	return n
}

// Aggregate reads every label file in labelsDir and counts bounding
// boxes per group and per class. Files are visited in name order, which
// fixes the group order. Only the leading token of each line is parsed;
// lines where that fails are skipped.
func Aggregate(labelsDir string, extractor *GroupExtractor, logger *log.Logger) (*Counts, error) {
	entries, err := os.ReadDir(labelsDir)
	if err != nil {
		return nil, fmt.Errorf("reading labels directory: %w", err)
	}

	counts := &Counts{
		ByGroup: make(map[string]ClassCounts),
		Totals:  make(ClassCounts),
		Files:   make(map[string][]string),
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !yolo.IsLabel(name) {
			continue
		}
		group, ok := extractor.Group(name)
		if !ok {
			logger.Printf("skipping %s: no group in file name", name)
			counts.Ungrouped = append(counts.Ungrouped, name)
			continue
		}

		f, err := yolo.ReadFile(filepath.Join(labelsDir, name))
		if err != nil {
			return nil, err
		}

		groupCounts, seen := counts.ByGroup[group]
		if !seen {
			groupCounts = make(ClassCounts)
			counts.ByGroup[group] = groupCounts
			counts.Order = append(counts.Order, group)
		}
		counts.Files[group] = append(counts.Files[group], name)

		for i := range f.Lines {
			class, err := yolo.ParseClassID(f.Text(i))
			if err != nil {
				counts.SkippedLines++
				continue
			}
			groupCounts[class]++
			counts.Totals[class]++
		}
	}

	logger.Printf("aggregated %d group(s), %d box(es), %d skipped line(s)",
		len(counts.Order), counts.Totals.Total(), counts.SkippedLines)
	return counts, nil
}
