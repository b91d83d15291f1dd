package curate

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// FilterResult reports what FilterClasses did.
type FilterResult struct {
	// Rewritten lists label files that lost at least one line.
	Rewritten []string `json:"rewritten"`
	// Deleted lists label files left with no kept line.
	Deleted []string `json:"deleted"`
	// Unchanged counts files whose lines were all kept.
	Unchanged int `json:"unchanged"`
	// DroppedLines counts well-formed lines of classes outside keep.
	DroppedLines int `json:"dropped_lines"`
	// UnparseableLines counts non-blank lines whose class could not be
	// read. They are dropped.
	UnparseableLines int `json:"unparseable_lines"`
}

// FilterClasses keeps only the lines of each label file in labelsDir
// whose class is in keep. A file with no kept lines is deleted.
func FilterClasses(labelsDir string, keep map[int]bool) (FilterResult, error) {
	var res FilterResult
	files, err := loadLabels(labelsDir)
	if err != nil {
		return res, err
	}

	for _, f := range files {
		var kept []byte
		keptLines := 0
		for i, line := range f.Lines {
			text := f.Text(i)
			class, err := yolo.ParseClassID(text)
			switch {
			case err != nil:
				if strings.TrimSpace(text) != "" {
					res.UnparseableLines++
				}
			case keep[class]:
				kept = append(kept, line...)
				keptLines++
			default:
				res.DroppedLines++
			}
		}

		switch {
		case keptLines == 0:
			if err := os.Remove(f.Path); err != nil {
				return res, err
			}
			res.Deleted = append(res.Deleted, f.Name)
		case keptLines == len(f.Lines):
			res.Unchanged++
		default:
			if err := fix.Rewrite(f.Path, kept); err != nil {
				return res, err
			}
			res.Rewritten = append(res.Rewritten, f.Name)
		}
	}
	return res, nil
}

// DeleteNamed removes the named files from dir, such as the class-name
// lists annotation tools leave next to the labels. Missing files are
// ignored. It returns the removed paths.
func DeleteNamed(dir string, names []string) ([]string, error) {
	return fix.RemoveFiles(dir, names)
}

// RemoveEmpty deletes the zero-byte label files of dir and returns the
// removed paths.
func RemoveEmpty(dir string) ([]string, error) {
	names, err := labelNames(dir)
	if err != nil {
		return nil, err
	}
	var empty []string
	for _, name := range names {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if info.Size() == 0 {
			empty = append(empty, name)
		}
	}
	sort.Strings(empty)
	return fix.RemoveFiles(dir, empty)
}
