package curate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// Pairs describes how the images and labels of two directories pair up
// by stem.
type Pairs struct {
	// Images lists image names that have a label.
	Images []string
	// Labels lists label names that have an image.
	Labels []string
	// ExtraImages lists image names without a label.
	ExtraImages []string
	// ExtraLabels lists label names without an image.
	ExtraLabels []string
}

// Match pairs the images of imagesDir (with one of exts) against the
// label files of labelsDir. All lists are sorted.
func Match(imagesDir, labelsDir string, exts []string) (Pairs, error) {
	var p Pairs
	images, err := imageNames(imagesDir, exts)
	if err != nil {
		return p, err
	}
	labels, err := labelNames(labelsDir)
	if err != nil {
		return p, err
	}

	labelStems := stemSet(labels)
	imageStems := stemSet(images)
	for _, name := range images {
		if labelStems[yolo.Stem(name)] {
			p.Images = append(p.Images, name)
		} else {
			p.ExtraImages = append(p.ExtraImages, name)
		}
	}
	for _, name := range labels {
		if imageStems[yolo.Stem(name)] {
			p.Labels = append(p.Labels, name)
		} else {
			p.ExtraLabels = append(p.ExtraLabels, name)
		}
	}
	return p, nil
}

// CopyMatchingImages copies the images of imagesDir that have a label
// in labelsDir into dstDir, creating it if needed. It returns the copied
// names.
func CopyMatchingImages(imagesDir, labelsDir, dstDir string, exts []string) ([]string, error) {
	p, err := Match(imagesDir, labelsDir, exts)
	if err != nil {
		return nil, err
	}
	return copyNames(imagesDir, dstDir, p.Images)
}

// CopyMatchingLabels copies the labels of labelsDir that have an image
// in imagesDir into dstDir, creating it if needed. It returns the
// copied names.
func CopyMatchingLabels(imagesDir, labelsDir, dstDir string, exts []string) ([]string, error) {
	p, err := Match(imagesDir, labelsDir, exts)
	if err != nil {
		return nil, err
	}
	return copyNames(labelsDir, dstDir, p.Labels)
}

// RemoveExtraImages deletes the images of imagesDir that have no label
// in labelsDir and returns the removed paths.
func RemoveExtraImages(imagesDir, labelsDir string, exts []string) ([]string, error) {
	p, err := Match(imagesDir, labelsDir, exts)
	if err != nil {
		return nil, err
	}
	return fix.RemoveFiles(imagesDir, p.ExtraImages)
}

// RemoveExtraLabels deletes the labels of labelsDir that have no image
// in imagesDir and returns the removed paths.
func RemoveExtraLabels(imagesDir, labelsDir string, exts []string) ([]string, error) {
	p, err := Match(imagesDir, labelsDir, exts)
	if err != nil {
		return nil, err
	}
	return fix.RemoveFiles(labelsDir, p.ExtraLabels)
}

func copyNames(srcDir, dstDir string, names []string) ([]string, error) {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return nil, fmt.Errorf("create directory %s: %w", dstDir, err)
	}
	copied := make([]string, 0, len(names))
	for _, name := range names {
		if err := fix.CopyFile(filepath.Join(srcDir, name), filepath.Join(dstDir, name)); err != nil {
			return copied, err
		}
		copied = append(copied, name)
	}
	return copied, nil
}
