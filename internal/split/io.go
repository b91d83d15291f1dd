package split

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// AssignmentRow is one line of the assignments manifest.
type AssignmentRow struct {
	Group     string      `json:"group"`
	Partition Partition   `json:"partition"`
	Files     []string    `json:"files"`
	Counts    ClassCounts `json:"counts"`
}

// AssignmentRows lists a in group order with each group's files and
// counts.
func AssignmentRows(counts *Counts, a *Assignment) []AssignmentRow {
	rows := make([]AssignmentRow, 0, len(counts.Order))
	for _, g := range counts.Order {
		rows = append(rows, AssignmentRow{
			Group:     g,
			Partition: a.Of(g),
			Files:     counts.Files[g],
			Counts:    counts.ByGroup[g],
		})
	}
	return rows
}

// WriteAssignments writes assignment rows as JSONL.
func WriteAssignments(path string, rows []AssignmentRow) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create assignments: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := bufio.NewWriter(file)
	encoder := json.NewEncoder(writer)
	for _, row := range rows {
		if err := encoder.Encode(row); err != nil {
			return fmt.Errorf("encode assignment row: %w", err)
		}
	}
	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush assignments: %w", err)
	}
	return nil
}

// ReadAssignments reads a JSONL assignments manifest.
func ReadAssignments(path string) ([]AssignmentRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open assignments: %w", err)
	}
	defer func() { _ = file.Close() }()

	var rows []AssignmentRow
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var row AssignmentRow
		if err := decoder.Decode(&row); err != nil {
			return nil, fmt.Errorf("parse assignment row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// WriteJSON writes an indented JSON document.
func WriteJSON(path string, value any) error {
	if err := ensureParentDir(path); err != nil {
		return err
	}
	content, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	content = append(content, '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

// ReadReport reads a split report JSON document.
func ReadReport(path string) (Report, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Report{}, fmt.Errorf("read split report: %w", err)
	}
	var report Report
	if err := json.Unmarshal(content, &report); err != nil {
		return Report{}, fmt.Errorf("parse split report json: %w", err)
	}
	return report, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	return nil
}
