// Package yolo models YOLO bounding-box label files: one text file per
// image, one "<class> <cx> <cy> <w> <h>" record per line.
package yolo

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// FieldCount is the number of whitespace-separated fields in a
// well-formed record.
const FieldCount = 5

// Parse errors. ParseLine wraps these so callers can match with errors.Is.
var (
	ErrFieldCount = errors.New("wrong field count")
	ErrClassID    = errors.New("class id is not an integer")
	ErrCoordinate = errors.New("coordinate is not a number")
)

// Record is one bounding box. Coordinates are fractions of the image
// size; they are not range-checked.
type Record struct {
	ClassID int
	CenterX float64
	CenterY float64
	Width   float64
	Height  float64
}

// String formats r the way annotation tools write it.
func (r Record) String() string {
	return fmt.Sprintf("%d %g %g %g %g", r.ClassID, r.CenterX, r.CenterY, r.Width, r.Height)
}

// Fields splits a line on whitespace.
func Fields(line string) []string {
	return strings.Fields(line)
}

// WellFormed reports whether line has exactly FieldCount fields.
func WellFormed(line string) bool {
	return len(Fields(line)) == FieldCount
}

// ParseLine parses a full record.
func ParseLine(line string) (Record, error) {
	fields := Fields(line)
	if len(fields) != FieldCount {
		return Record{}, fmt.Errorf("%w: got %d, want %d", ErrFieldCount, len(fields), FieldCount)
	}
	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %q", ErrClassID, fields[0])
	}
	var coords [4]float64
	for i, field := range fields[1:] {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return Record{}, fmt.Errorf("%w: %q", ErrCoordinate, field)
		}
		coords[i] = v
	}
	return Record{
		ClassID: class,
		CenterX: coords[0],
		CenterY: coords[1],
		Width:   coords[2],
		Height:  coords[3],
	}, nil
}

// ParseClassID parses only the leading token of line. The rest of the
// line is not inspected.
func ParseClassID(line string) (int, error) {
	fields := Fields(line)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: empty line", ErrFieldCount)
	}
	class, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrClassID, fields[0])
	}
	return class, nil
}
