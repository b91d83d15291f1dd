// Package curate holds the directory-wide label transforms used to
// prepare a dataset before it is split: class filtering and remapping,
// image/label matching and exclusive-class thinning.
//
// Every function works on flat directories. Files are rewritten through
// fix.WriteFileAtomic and only when their content changes.
package curate

import (
	"fmt"
	"path/filepath"

	"github.com/jeduden/tidylabel/internal/discovery"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// labelNames lists the label files of dir, sorted.
func labelNames(dir string) ([]string, error) {
	names, err := discovery.Names(discovery.Options{
		Patterns: []string{"*" + yolo.LabelExt},
		BaseDir:  dir,
		FoldCase: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	return names, nil
}

// imageNames lists the image files of dir with one of exts, sorted.
func imageNames(dir string, exts []string) ([]string, error) {
	if len(exts) == 0 {
		exts = yolo.DefaultImageExts
	}
	names, err := discovery.Names(discovery.Options{
		Patterns: discovery.ExtPatterns(exts),
		BaseDir:  dir,
		FoldCase: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	return names, nil
}

func stemSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[yolo.Stem(name)] = true
	}
	return set
}

// readLabels reads each named label file of dir.
func readLabels(dir string, names []string) ([]*yolo.File, error) {
	files := make([]*yolo.File, 0, len(names))
	for _, name := range names {
		f, err := yolo.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

// loadLabels lists and reads every label file of dir.
func loadLabels(dir string) ([]*yolo.File, error) {
	names, err := labelNames(dir)
	if err != nil {
		return nil, err
	}
	return readLabels(dir, names)
}

// classesOf returns the distinct classes named by f's lines. Lines
// whose leading token is not an integer are skipped.
func classesOf(f *yolo.File) map[int]bool {
	classes := make(map[int]bool)
	for i := range f.Lines {
		class, err := yolo.ParseClassID(f.Text(i))
		if err != nil {
			continue
		}
		classes[class] = true
	}
	return classes
}
