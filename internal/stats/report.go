package stats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/jeduden/tidylabel/internal/discovery"
	"github.com/jeduden/tidylabel/internal/split"
	"github.com/jeduden/tidylabel/internal/yolo"
)

// SummaryRow compares one class across the train and validation sets.
type SummaryRow struct {
	Class           int
	TrainCount      int
	ValidationCount int
	TotalCount      int
	TrainPct        float64
	ValidationPct   float64
}

// DetailRow is the number of boxes one video contributes to a class.
type DetailRow struct {
	Class int
	Video string
	Count int
}

// Report holds the summary table and the per-video detail of each set.
type Report struct {
	Summary    []SummaryRow
	Train      []DetailRow
	Validation []DetailRow
}

// CSV file names written by Report.Write.
const (
	SummaryFileName = "summary.csv"
	DetailFileName  = "detail.csv"
)

type setCounts struct {
	byVideo map[string]split.ClassCounts
	totals  split.ClassCounts
}

// BuildReport counts boxes per class and per video in the label
// directories of a train and a validation set. Files whose name yields
// no group are left out.
func BuildReport(trainDir, validDir string, extractor *split.GroupExtractor) (*Report, error) {
	train, err := countSet(trainDir, extractor)
	if err != nil {
		return nil, fmt.Errorf("train set: %w", err)
	}
	valid, err := countSet(validDir, extractor)
	if err != nil {
		return nil, fmt.Errorf("validation set: %w", err)
	}

	totals := make(split.ClassCounts)
	totals.Add(train.totals)
	totals.Add(valid.totals)

	r := &Report{
		Train:      detailRows(train),
		Validation: detailRows(valid),
	}
	for _, class := range totals.Classes() {
		total := totals[class]
		row := SummaryRow{
			Class:           class,
			TrainCount:      train.totals[class],
			ValidationCount: valid.totals[class],
			TotalCount:      total,
		}
		if total > 0 {
			row.TrainPct = float64(row.TrainCount) / float64(total) * 100
			row.ValidationPct = float64(row.ValidationCount) / float64(total) * 100
		}
		r.Summary = append(r.Summary, row)
	}
	return r, nil
}

func countSet(dir string, extractor *split.GroupExtractor) (setCounts, error) {
	sc := setCounts{
		byVideo: make(map[string]split.ClassCounts),
		totals:  make(split.ClassCounts),
	}
	names, err := discovery.Names(discovery.Options{
		Patterns: []string{"*" + yolo.LabelExt},
		BaseDir:  dir,
		FoldCase: true,
	})
	if err != nil {
		return sc, err
	}
	for _, name := range names {
		video, ok := extractor.Group(name)
		if !ok {
			continue
		}
		f, err := yolo.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return sc, err
		}
		counts, ok := sc.byVideo[video]
		if !ok {
			counts = make(split.ClassCounts)
			sc.byVideo[video] = counts
		}
		for i := range f.Lines {
			class, err := yolo.ParseClassID(f.Text(i))
			if err != nil {
				continue
			}
			counts[class]++
			sc.totals[class]++
		}
	}
	return sc, nil
}

func detailRows(sc setCounts) []DetailRow {
	videos := make([]string, 0, len(sc.byVideo))
	for v := range sc.byVideo {
		videos = append(videos, v)
	}
	sort.Strings(videos)

	var rows []DetailRow
	for _, v := range videos {
		counts := sc.byVideo[v]
		for _, class := range counts.Classes() {
			rows = append(rows, DetailRow{Class: class, Video: v, Count: counts[class]})
		}
	}
	return rows
}

// Write writes the summary and detail tables as CSV files into dir.
// The detail file carries a Set column naming train or validation.
func (r *Report) Write(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}

	summary := [][]string{{
		"Logo", "Train Count", "Validation Count", "Total Count",
		"Train Percentage", "Validation Percentage",
	}}
	for _, row := range r.Summary {
		summary = append(summary, []string{
			strconv.Itoa(row.Class),
			strconv.Itoa(row.TrainCount),
			strconv.Itoa(row.ValidationCount),
			strconv.Itoa(row.TotalCount),
			strconv.FormatFloat(row.TrainPct, 'f', 2, 64),
			strconv.FormatFloat(row.ValidationPct, 'f', 2, 64),
		})
	}
	if err := writeCSV(filepath.Join(dir, SummaryFileName), summary); err != nil {
		return err
	}

	detail := [][]string{{"Set", "Logo", "Video", "Count"}}
	for _, set := range []struct {
		name string
		rows []DetailRow
	}{
		{split.Train.String(), r.Train},
		{split.Validation.String(), r.Validation},
	} {
		for _, row := range set.rows {
			detail = append(detail, []string{
				set.name, strconv.Itoa(row.Class), row.Video, strconv.Itoa(row.Count),
			})
		}
	}
	return writeCSV(filepath.Join(dir, DetailFileName), detail)
}

func writeCSV(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		_ = file.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
