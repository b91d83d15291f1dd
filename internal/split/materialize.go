package split

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jeduden/tidylabel/internal/fix"
	"github.com/jeduden/tidylabel/internal/log"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// Sub-directory names inside each partition directory.
const (
	ImagesDir = "images"
	LabelsDir = "labels"
)

// Materializer copies image and label pairs into the partition layout
// {BaseDir}/{train,valid,test}/{images,labels}.
type Materializer struct {
	BaseDir string
	// ImageExts is the image probe order. Empty means
	// yolo.DefaultImageExts.
	ImageExts []string
	Logger    *log.Logger
}

// MaterializeStats counts what Materialize did.
type MaterializeStats struct {
	// Copied is the number of pairs copied per partition.
	Copied map[Partition]int `json:"copied"`
	// MissingImages counts label files skipped for lack of an image.
	MissingImages int `json:"missing_images"`
}

// PartitionDir returns {base}/{p}/{sub}.
func PartitionDir(base string, p Partition, sub string) string {
	return filepath.Join(base, p.Dir(), sub)
}

// Materialize creates all six partition directories, then, for each
// group in order and each of its label files, copies the label and its
// image into the group's partition. A label whose image is missing is
// skipped. Sources are left in place.
func (m *Materializer) Materialize(counts *Counts, a *Assignment, labelsDir, imagesDir string) (MaterializeStats, error) {
	stats := MaterializeStats{Copied: make(map[Partition]int, len(Partitions))}

	for _, p := range Partitions {
		for _, sub := range []string{ImagesDir, LabelsDir} {
			dir := PartitionDir(m.BaseDir, p, sub)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return stats, fmt.Errorf("create directory %s: %w", dir, err)
			}
		}
	}

	exts := m.ImageExts
	if len(exts) == 0 {
		exts = yolo.DefaultImageExts
	}

	for _, g := range counts.Order {
		p := a.Of(g)
		for _, name := range counts.Files[g] {
			stem := yolo.Stem(name)
			imageName, ok := yolo.FindImage(imagesDir, stem, exts)
			if !ok {
				m.Logger.Printf("skipping %s: no image", name)
				stats.MissingImages++
				continue
			}

			dstLabel := filepath.Join(PartitionDir(m.BaseDir, p, LabelsDir), name)
			if err := fix.CopyFile(filepath.Join(labelsDir, name), dstLabel); err != nil {
				return stats, err
			}
			dstImage := filepath.Join(PartitionDir(m.BaseDir, p, ImagesDir), imageName)
			if err := fix.CopyFile(filepath.Join(imagesDir, imageName), dstImage); err != nil {
				return stats, err
			}
			stats.Copied[p]++
		}
	}

	m.Logger.Printf("copied %d/%d/%d pair(s) to train/valid/test",
		stats.Copied[Train], stats.Copied[Validation], stats.Copied[Test])
	return stats, nil
}
