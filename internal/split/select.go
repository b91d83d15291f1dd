package split

import (
	"fmt"
	"math"
)

// Partition is one of the three dataset partitions.
type Partition int

// Partitions. Train is the zero value: an unassigned group is in train.
const (
	Train Partition = iota
	Validation
	Test
)

// Partitions lists every partition in directory order.
var Partitions = []Partition{Train, Validation, Test}

// String returns the partition name.
func (p Partition) String() string {
	switch p {
	case Train:
		return "train"
	case Validation:
		return "validation"
	case Test:
		return "test"
	}
	return fmt.Sprintf("Partition(%d)", int(p))
}

// Dir returns the directory name used on disk.
func (p Partition) Dir() string {
	if p == Validation {
		return "valid"
	}
	return p.String()
}

// MarshalText implements encoding.TextMarshaler.
func (p Partition) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Partition) UnmarshalText(text []byte) error {
	switch string(text) {
	case "train":
		*p = Train
	case "validation", "valid":
		*p = Validation
	case "test":
		*p = Test
	default:
		return fmt.Errorf("unknown partition %q", text)
	}
	return nil
}

// Assignment maps every group to a partition.
type Assignment struct {
	// Order is the group order the assignment was computed in.
	Order   []string
	byGroup map[string]Partition
}

// NewAssignment returns an assignment with every group in train.
func NewAssignment(order []string) *Assignment {
	a := &Assignment{
		Order:   append([]string(nil), order...),
		byGroup: make(map[string]Partition, len(order)),
	}
	for _, g := range order {
		a.byGroup[g] = Train
	}
	return a
}

// Of returns the partition of group. Unknown groups are in train.
func (a *Assignment) Of(group string) Partition {
	return a.byGroup[group]
}

// Set assigns group to p.
func (a *Assignment) Set(group string, p Partition) {
	if _, ok := a.byGroup[group]; !ok {
		a.Order = append(a.Order, group)
	}
	a.byGroup[group] = p
}

// Groups returns the groups assigned to p, in assignment order.
func (a *Assignment) Groups(p Partition) []string {
	var groups []string
	for _, g := range a.Order {
		if a.byGroup[g] == p {
			groups = append(groups, g)
		}
	}
	return groups
}

// Targets returns, per class, floor(percent/100 * total). The product
// is computed in float64 in that order, so 29% of 100 gives 28.
func Targets(totals ClassCounts, percent float64) ClassCounts {
	targets := make(ClassCounts, len(totals))
	for class, total := range totals {
		targets[class] = int(math.Floor(percent / 100 * float64(total)))
	}
	return targets
}

// fits reports whether adding group to current keeps every class at or
// under its target. A class with no target has target zero.
func fits(group, current, target ClassCounts) bool {
	for class, n := range group {
		if current[class]+n > target[class] {
			return false
		}
	}
	return true
}

// Select assigns groups first-fit in counts.Order: a test pass against
// testTargets, then a validation pass over the groups not taken by test
// against validTargets. Everything else stays in train. There is no
// backtracking.
func Select(counts *Counts, validTargets, testTargets ClassCounts) *Assignment {
	a := NewAssignment(counts.Order)

	testCounts := make(ClassCounts)
	for _, g := range counts.Order {
		if fits(counts.ByGroup[g], testCounts, testTargets) {
			a.Set(g, Test)
			testCounts.Add(counts.ByGroup[g])
		}
	}

	validCounts := make(ClassCounts)
	for _, g := range counts.Order {
		if a.Of(g) == Test {
			continue
		}
		if fits(counts.ByGroup[g], validCounts, validTargets) {
			a.Set(g, Validation)
			validCounts.Add(counts.ByGroup[g])
		}
	}

	return a
}

// Plan computes targets from counts.Totals and selects partitions.
func Plan(counts *Counts, valPercent, testPercent float64) *Assignment {
	return Select(counts, Targets(counts.Totals, valPercent), Targets(counts.Totals, testPercent))
}

// Realized sums class counts per partition under a.
func Realized(counts *Counts, a *Assignment) map[Partition]ClassCounts {
	out := make(map[Partition]ClassCounts, len(Partitions))
	for _, p := range Partitions {
		out[p] = make(ClassCounts)
	}
	for _, g := range counts.Order {
		out[a.Of(g)].Add(counts.ByGroup[g])
	}
	return out
}

// ValidatePercents rejects percentages outside [0, 100] or summing past
// 100.
func ValidatePercents(valPercent, testPercent float64) error {
	if valPercent < 0 || valPercent > 100 {
		return fmt.Errorf("validation percent %v out of range [0, 100]", valPercent)
	}
	if testPercent < 0 || testPercent > 100 {
		return fmt.Errorf("test percent %v out of range [0, 100]", testPercent)
	}
	if valPercent+testPercent > 100 {
		return fmt.Errorf("validation and test percents sum to %v, over 100", valPercent+testPercent)
	}
	return nil
}
