package lint

import (
	"fmt"
	"path/filepath"

	"github.com/jeduden/tidylabel/internal/discovery"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// Source describes where a dataset lives on disk.
type Source struct {
	LabelsDir string
	ImagesDir string
	// ImageExts lists the recognized image extensions, in probe order.
	ImageExts []string
	// ValidClasses is the allowed class set. Nil disables class checks.
	ValidClasses map[int]bool
	// Ignore lists glob patterns for file names to leave out.
	Ignore []string
}

// Dataset is a snapshot of a label directory and its image directory.
// Rules inspect a Dataset; it is re-read before each check so that a
// remediation applied by one rule is visible to the next.
type Dataset struct {
	LabelsDir    string
	ImagesDir    string
	ImageExts    []string
	ValidClasses map[int]bool

	// Labels holds every label file, sorted by name.
	Labels []*yolo.File
	// Images holds image file names, sorted.
	Images []string

	// Errors collects per-file read failures. A file that cannot be read
	// is skipped but does not abort loading.
	Errors []error
}

// LoadDataset lists and reads the label and image directories of src.
func LoadDataset(src Source) (*Dataset, error) {
	exts := src.ImageExts
	if len(exts) == 0 {
		exts = yolo.DefaultImageExts
	}

	ds := &Dataset{
		LabelsDir:    src.LabelsDir,
		ImagesDir:    src.ImagesDir,
		ImageExts:    exts,
		ValidClasses: src.ValidClasses,
	}

	labelPaths, err := discovery.Discover(discovery.Options{
		Patterns: []string{"*" + yolo.LabelExt},
		BaseDir:  src.LabelsDir,
		Ignore:   src.Ignore,
	})
	if err != nil {
		return nil, fmt.Errorf("listing labels: %w", err)
	}
	for _, p := range labelPaths {
		f, err := yolo.ReadFile(p)
		if err != nil {
			ds.Errors = append(ds.Errors, err)
			continue
		}
		ds.Labels = append(ds.Labels, f)
	}

	images, err := discovery.Names(discovery.Options{
		Patterns: discovery.ExtPatterns(exts),
		BaseDir:  src.ImagesDir,
		Ignore:   src.Ignore,
		FoldCase: true,
	})
	if err != nil {
		return nil, fmt.Errorf("listing images: %w", err)
	}
	ds.Images = images

	return ds, nil
}

// LabelPath returns the path of the label file with the given name.
func (ds *Dataset) LabelPath(name string) string {
	return filepath.Join(ds.LabelsDir, name)
}

// ImagePath returns the path of the image file with the given name.
func (ds *Dataset) ImagePath(name string) string {
	return filepath.Join(ds.ImagesDir, name)
}

// LabelStems returns the set of label file stems.
func (ds *Dataset) LabelStems() map[string]bool {
	stems := make(map[string]bool, len(ds.Labels))
	for _, f := range ds.Labels {
		stems[f.Stem()] = true
	}
	return stems
}

// ImageStems returns the set of image file stems.
func (ds *Dataset) ImageStems() map[string]bool {
	stems := make(map[string]bool, len(ds.Images))
	for _, name := range ds.Images {
		stems[yolo.Stem(name)] = true
	}
	return stems
}

// Label returns the label file whose path is path, or nil.
func (ds *Dataset) Label(path string) *yolo.File {
	for _, f := range ds.Labels {
		if f.Path == path {
			return f
		}
	}
	return nil
}
