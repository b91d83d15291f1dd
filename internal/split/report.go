package split

import (
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Output file names written next to the partition directories.
const (
	ReportFileName      = "split-report.json"
	AssignmentsFileName = "assignments.jsonl"
)

// PartitionSummary describes one partition of a split.
type PartitionSummary struct {
	Groups int         `json:"groups"`
	Files  int         `json:"files"`
	Copied int         `json:"copied"`
	Counts ClassCounts `json:"counts"`
}

// Report captures the parameters and outcome of one split run.
type Report struct {
	RunID         string                         `json:"run_id"`
	CreatedAt     string                         `json:"created_at"`
	LabelsDir     string                         `json:"labels_dir"`
	ImagesDir     string                         `json:"images_dir"`
	GroupPattern  string                         `json:"group_pattern"`
	ValPercent    float64                        `json:"val_percent"`
	TestPercent   float64                        `json:"test_percent"`
	Groups        int                            `json:"groups"`
	Ungrouped     []string                       `json:"ungrouped,omitempty"`
	SkippedLines  int                            `json:"skipped_lines"`
	MissingImages int                            `json:"missing_images"`
	Totals        ClassCounts                    `json:"totals"`
	ValidTargets  ClassCounts                    `json:"validation_targets"`
	TestTargets   ClassCounts                    `json:"test_targets"`
	Partitions    map[Partition]PartitionSummary `json:"partitions"`
}

// Run bundles the inputs of a split.
type Run struct {
	LabelsDir   string
	ImagesDir   string
	Extractor   *GroupExtractor
	ValPercent  float64
	TestPercent float64
}

// NewReport summarizes a split. stats may be zero when nothing was
// materialized.
func NewReport(run Run, counts *Counts, a *Assignment, stats MaterializeStats, now time.Time) Report {
	realized := Realized(counts, a)
	partitions := make(map[Partition]PartitionSummary, len(Partitions))
	for _, p := range Partitions {
		groups := a.Groups(p)
		files := 0
		for _, g := range groups {
			files += len(counts.Files[g])
		}
		partitions[p] = PartitionSummary{
			Groups: len(groups),
			Files:  files,
			Copied: stats.Copied[p],
			Counts: realized[p],
		}
	}

	return Report{
		RunID:         uuid.NewString(),
		CreatedAt:     now.UTC().Format(time.RFC3339),
		LabelsDir:     run.LabelsDir,
		ImagesDir:     run.ImagesDir,
		GroupPattern:  run.Extractor.Pattern(),
		ValPercent:    run.ValPercent,
		TestPercent:   run.TestPercent,
		Groups:        len(counts.Order),
		Ungrouped:     counts.Ungrouped,
		SkippedLines:  counts.SkippedLines,
		MissingImages: stats.MissingImages,
		Totals:        counts.Totals,
		ValidTargets:  Targets(counts.Totals, run.ValPercent),
		TestTargets:   Targets(counts.Totals, run.TestPercent),
		Partitions:    partitions,
	}
}

// WriteOutputs writes the report and the assignments manifest into
// baseDir.
func WriteOutputs(baseDir string, report Report, rows []AssignmentRow) error {
	if err := WriteJSON(filepath.Join(baseDir, ReportFileName), report); err != nil {
		return err
	}
	return WriteAssignments(filepath.Join(baseDir, AssignmentsFileName), rows)
}
