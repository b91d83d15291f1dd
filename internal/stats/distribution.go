// Package stats computes class statistics over label directories: the
// per-class distribution of boxes and files, its bar chart, and the
// train/validation report.
package stats

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/jeduden/tidylabel/internal/discovery"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// ClassStat counts the boxes of one class and the files it appears in.
type ClassStat struct {
	Class int `json:"class"`
	Boxes int `json:"boxes"`
	Files int `json:"files"`
}

// Dist is a class distribution ordered by descending file count, then
// ascending class.
type Dist []ClassStat

// Distribution counts boxes and files per class over the label files of
// labelsDir. Lines whose class cannot be read are skipped.
func Distribution(labelsDir string) (Dist, error) {
	names, err := discovery.Names(discovery.Options{
		Patterns: []string{"*" + yolo.LabelExt},
		BaseDir:  labelsDir,
		FoldCase: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}

	byClass := make(map[int]*ClassStat)
	for _, name := range names {
		f, err := yolo.ReadFile(filepath.Join(labelsDir, name))
		if err != nil {
			return nil, err
		}
		seen := make(map[int]bool)
		for i := range f.Lines {
			class, err := yolo.ParseClassID(f.Text(i))
			if err != nil {
				continue
			}
			s, ok := byClass[class]
			if !ok {
				s = &ClassStat{Class: class}
				byClass[class] = s
			}
			s.Boxes++
			if !seen[class] {
				seen[class] = true
				s.Files++
			}
		}
	}

	d := make(Dist, 0, len(byClass))
	for _, s := range byClass {
		d = append(d, *s)
	}
	sort.Slice(d, func(i, j int) bool {
		if d[i].Files != d[j].Files {
			return d[i].Files > d[j].Files
		}
		return d[i].Class < d[j].Class
	})
	return d, nil
}

// Boxes returns the total number of boxes in d.
func (d Dist) Boxes() int {
	n := 0
	for _, s := range d {
		n += s.Boxes
	}
	return n
}
