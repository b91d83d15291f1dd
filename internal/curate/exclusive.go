package curate

import (
	"math/rand/v2"
	"path/filepath"
	"sort"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// Exclusivity counts, for one class, the label files where it is the
// only class and the files it shares with other classes.
type Exclusivity struct {
	Class     int `json:"class"`
	Exclusive int `json:"exclusive"`
	Shared    int `json:"shared"`
}

// ExclusiveFile names a label file whose only class is Class.
type ExclusiveFile struct {
	Class int    `json:"class"`
	File  string `json:"file"`
}

// AnalyzeExclusive returns one Exclusivity per class found in
// labelsDir, sorted by class.
func AnalyzeExclusive(labelsDir string) ([]Exclusivity, error) {
	files, err := loadLabels(labelsDir)
	if err != nil {
		return nil, err
	}

	byClass := make(map[int]*Exclusivity)
	for _, f := range files {
		classes := classesOf(f)
		for class := range classes {
			e, ok := byClass[class]
			if !ok {
				e = &Exclusivity{Class: class}
				byClass[class] = e
			}
			if len(classes) == 1 {
				e.Exclusive++
			} else {
				e.Shared++
			}
		}
	}

	out := make([]Exclusivity, 0, len(byClass))
	for _, e := range byClass {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out, nil
}

// ExclusiveFiles lists every label file of labelsDir that holds a
// single class, sorted by class and then file name.
func ExclusiveFiles(labelsDir string) ([]ExclusiveFile, error) {
	files, err := loadLabels(labelsDir)
	if err != nil {
		return nil, err
	}
	var out []ExclusiveFile
	for _, f := range files {
		classes := classesOf(f)
		if len(classes) != 1 {
			continue
		}
		for class := range classes {
			out = append(out, ExclusiveFile{Class: class, File: f.Name})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].File < out[j].File
	})
	return out, nil
}

// PickExclusive chooses up to n label files whose only class is class,
// shuffled with a PCG source seeded by seed. The same seed over the
// same directory always picks the same files.
func PickExclusive(labelsDir string, class, n int, seed uint64) ([]string, error) {
	all, err := ExclusiveFiles(labelsDir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, ef := range all {
		if ef.Class == class {
			names = append(names, ef.File)
		}
	}

	r := rand.New(rand.NewPCG(seed, seed))
	r.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })
	if n < len(names) {
		names = names[:n]
	}
	sort.Strings(names)
	return names, nil
}

// ThinResult lists the files Thin removed.
type ThinResult struct {
	Labels []string `json:"labels"`
	Images []string `json:"images"`
}

// Thin deletes up to n label files whose only class is class, chosen by
// PickExclusive, together with every image of the same stem in
// imagesDir.
func Thin(imagesDir, labelsDir string, class, n int, exts []string, seed uint64) (ThinResult, error) {
	var res ThinResult
	names, err := PickExclusive(labelsDir, class, n, seed)
	if err != nil {
		return res, err
	}
	if len(exts) == 0 {
		exts = yolo.DefaultImageExts
	}

	var images []string
	for _, name := range names {
		stem := yolo.Stem(name)
		for _, ext := range exts {
			images = append(images, filepath.Join(imagesDir, stem+ext))
		}
	}

	res.Labels, err = fix.RemoveFiles(labelsDir, names)
	if err != nil {
		return res, err
	}
	res.Images, err = fix.RemovePaths(images)
	return res, err
}
