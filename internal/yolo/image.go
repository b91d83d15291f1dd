package yolo

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultImageExts lists the image extensions probed when pairing a
// label with its image, in probe order.
var DefaultImageExts = []string{".jpg", ".png", ".jpeg"}

// Stem returns name without its extension.
func Stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// LabelName returns the label file name for an image or label stem.
func LabelName(stem string) string {
	return stem + LabelExt
}

// IsLabel reports whether name has the label extension.
func IsLabel(name string) bool {
	return strings.EqualFold(filepath.Ext(name), LabelExt)
}

// IsImage reports whether name has one of exts, ignoring case.
func IsImage(name string, exts []string) bool {
	ext := filepath.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// FindImage probes dir for stem+ext for each ext in order and returns
// the first existing file name.
func FindImage(dir, stem string, exts []string) (string, bool) {
	for _, ext := range exts {
		name := stem + ext
		info, err := os.Stat(filepath.Join(dir, name))
		if err == nil && !info.IsDir() {
			return name, true
		}
	}
	return "", false
}
