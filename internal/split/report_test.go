package split

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewReport(t *testing.T) {
	counts := countsOf(
		[]string{"g1", "g2", "g3"},
		map[string]ClassCounts{
			"g1": {0: 1},
			"g2": {0: 1},
			"g3": {0: 8},
		},
	)
	counts.Ungrouped = []string{"x.txt"}
	run := Run{
		LabelsDir:   "labels",
		ImagesDir:   "images",
		Extractor:   mustExtractor(t),
		ValPercent:  10,
		TestPercent: 10,
	}
	a := Plan(counts, run.ValPercent, run.TestPercent)
	stats := MaterializeStats{Copied: map[Partition]int{Train: 1, Validation: 1, Test: 1}, MissingImages: 0}
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	report := NewReport(run, counts, a, stats, now)

	_, err := uuid.Parse(report.RunID)
	require.NoError(t, err)
	require.Equal(t, "2026-01-02T03:04:05Z", report.CreatedAt)
	require.Equal(t, DefaultGroupPattern, report.GroupPattern)
	require.Equal(t, 3, report.Groups)
	require.Equal(t, []string{"x.txt"}, report.Ungrouped)
	require.Equal(t, ClassCounts{0: 1}, report.TestTargets)

	want := map[Partition]PartitionSummary{
		Test:       {Groups: 1, Files: 1, Copied: 1, Counts: ClassCounts{0: 1}},
		Validation: {Groups: 1, Files: 1, Copied: 1, Counts: ClassCounts{0: 1}},
		Train:      {Groups: 1, Files: 1, Copied: 1, Counts: ClassCounts{0: 8}},
	}
	if diff := cmp.Diff(want, report.Partitions); diff != "" {
		t.Errorf("Partitions mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteOutputs_RoundTrip(t *testing.T) {
	base := filepath.Join(t.TempDir(), "split")
	counts := countsOf([]string{"g1", "g2"}, map[string]ClassCounts{
		"g1": {0: 1},
		"g2": {1: 2},
	})
	a := NewAssignment(counts.Order)
	a.Set("g2", Validation)

	run := Run{Extractor: mustExtractor(t), ValPercent: 20, TestPercent: 10}
	report := NewReport(run, counts, a, MaterializeStats{}, time.Now())
	rows := AssignmentRows(counts, a)

	require.NoError(t, WriteOutputs(base, report, rows))

	gotReport, err := ReadReport(filepath.Join(base, ReportFileName))
	require.NoError(t, err)
	require.Equal(t, report.RunID, gotReport.RunID)
	require.Equal(t, report.Partitions[Validation].Counts, gotReport.Partitions[Validation].Counts)

	gotRows, err := ReadAssignments(filepath.Join(base, AssignmentsFileName))
	require.NoError(t, err)
	if diff := cmp.Diff(rows, gotRows); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, Validation, gotRows[1].Partition)
}
