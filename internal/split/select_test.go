package split

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTargets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		totals  ClassCounts
		percent float64
		want    ClassCounts
	}{
		{"floor", ClassCounts{0: 10, 1: 4}, 10, ClassCounts{0: 1, 1: 0}},
		{"float product", ClassCounts{0: 100}, 29, ClassCounts{0: 28}},
		{"zero total", ClassCounts{5: 0}, 50, ClassCounts{5: 0}},
		{"zero percent", ClassCounts{0: 9}, 0, ClassCounts{0: 0}},
		{"fractional percent", ClassCounts{0: 200}, 5.5, ClassCounts{0: 11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if diff := cmp.Diff(tt.want, Targets(tt.totals, tt.percent)); diff != "" {
				t.Errorf("Targets mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelect_VidAExceedsTargetLandsInTrain(t *testing.T) {
	t.Parallel()

	counts := countsOf(
		[]string{"vidA", "vidB"},
		map[string]ClassCounts{
			"vidA": {0: 2, 1: 1},
			"vidB": {0: 8, 1: 3},
		},
	)
	valid := Targets(counts.Totals, 10)
	if diff := cmp.Diff(ClassCounts{0: 1, 1: 0}, valid); diff != "" {
		t.Fatalf("targets mismatch (-want +got):\n%s", diff)
	}

	a := Select(counts, valid, ClassCounts{})
	if got := a.Of("vidA"); got != Train {
		t.Errorf("vidA in %v, want train", got)
	}
}

func TestSelect_TestBeforeValidation(t *testing.T) {
	t.Parallel()

	counts := countsOf(
		[]string{"g1", "g2", "g3"},
		map[string]ClassCounts{
			"g1": {0: 1},
			"g2": {0: 1},
			"g3": {0: 1},
		},
	)
	a := Select(counts, ClassCounts{0: 1}, ClassCounts{0: 1})
	want := map[string]Partition{"g1": Test, "g2": Validation, "g3": Train}
	for g, p := range want {
		if a.Of(g) != p {
			t.Errorf("%s in %v, want %v", g, a.Of(g), p)
		}
	}
}

func TestSelect_FirstFitNoBacktracking(t *testing.T) {
	t.Parallel()

	// g1 uses up the class-0 budget; g2 would have fit better but is not
	// considered once g1 is committed.
	counts := countsOf(
		[]string{"g1", "g2"},
		map[string]ClassCounts{
			"g1": {0: 2},
			"g2": {0: 3},
		},
	)
	a := Select(counts, ClassCounts{}, ClassCounts{0: 3})
	if a.Of("g1") != Test || a.Of("g2") != Train {
		t.Errorf("got g1=%v g2=%v, want test/train", a.Of("g1"), a.Of("g2"))
	}
}

func TestSelect_EmptyGroupPassesEveryCheck(t *testing.T) {
	t.Parallel()

	counts := countsOf([]string{"empty"}, map[string]ClassCounts{"empty": {}})
	a := Select(counts, ClassCounts{}, ClassCounts{})
	if a.Of("empty") != Test {
		t.Errorf("empty group in %v, want test", a.Of("empty"))
	}
}

func TestSelect_ClassMissingFromTargetsHasZeroTarget(t *testing.T) {
	t.Parallel()

	counts := countsOf([]string{"g"}, map[string]ClassCounts{"g": {9: 1}})
	a := Select(counts, ClassCounts{0: 100}, ClassCounts{0: 100})
	if a.Of("g") != Train {
		t.Errorf("g in %v, want train", a.Of("g"))
	}
}

func TestPlan_Properties(t *testing.T) {
	t.Parallel()

	for seed := uint64(1); seed <= 25; seed++ {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			t.Parallel()
			counts := randomCounts(seed)
			val, test := 20.0, 10.0
			a := Plan(counts, val, test)

			// Exhaustiveness: every group is assigned exactly once.
			seen := 0
			for _, p := range Partitions {
				seen += len(a.Groups(p))
			}
			if seen != len(counts.Order) {
				t.Fatalf("assigned %d groups, want %d", seen, len(counts.Order))
			}

			// Target non-violation.
			realized := Realized(counts, a)
			for p, pct := range map[Partition]float64{Validation: val, Test: test} {
				targets := Targets(counts.Totals, pct)
				for class, n := range realized[p] {
					if n > targets[class] {
						t.Errorf("%v class %d: %d > target %d", p, class, n, targets[class])
					}
				}
			}

			// Determinism.
			b := Plan(counts, val, test)
			for _, g := range counts.Order {
				if a.Of(g) != b.Of(g) {
					t.Errorf("group %s assigned %v then %v", g, a.Of(g), b.Of(g))
				}
			}
		})
	}
}

func randomCounts(seed uint64) *Counts {
	r := rand.New(rand.NewPCG(seed, seed))
	n := 5 + r.IntN(30)
	order := make([]string, n)
	byGroup := make(map[string]ClassCounts, n)
	for i := range order {
		g := fmt.Sprintf("vid%02d", i)
		order[i] = g
		cc := make(ClassCounts)
		for c := 0; c < 4; c++ {
			if r.IntN(2) == 0 {
				cc[c] = r.IntN(10)
			}
		}
		byGroup[g] = cc
	}
	return countsOf(order, byGroup)
}

func TestPartition_Names(t *testing.T) {
	t.Parallel()

	tests := []struct {
		p    Partition
		name string
		dir  string
	}{
		{Train, "train", "train"},
		{Validation, "validation", "valid"},
		{Test, "test", "test"},
	}
	for _, tt := range tests {
		if tt.p.String() != tt.name || tt.p.Dir() != tt.dir {
			t.Errorf("%d: got %q/%q", tt.p, tt.p.String(), tt.p.Dir())
		}
	}
}

func TestPartition_JSONMapKeys(t *testing.T) {
	t.Parallel()

	in := map[Partition]int{Train: 1, Validation: 2, Test: 3}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"test":3,"train":1,"validation":2}` {
		t.Errorf("got %s", data)
	}
	var out map[Partition]int
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestValidatePercents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		val, test float64
		wantErr   bool
	}{
		{20, 10, false},
		{0, 0, false},
		{-1, 10, true},
		{20, 101, true},
		{60, 50, true},
	}
	for _, tt := range tests {
		err := ValidatePercents(tt.val, tt.test)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePercents(%v, %v) error = %v, wantErr %v", tt.val, tt.test, err, tt.wantErr)
		}
	}
}
