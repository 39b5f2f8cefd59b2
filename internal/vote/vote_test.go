package vote

import (
	"errors"
	"math"
	"testing"

	"github.com/go-sod/knn2d/internal/neighbor"
)

func result(pairs ...[2]float64) neighbor.Result {
	r := make(neighbor.Result, len(pairs))
	for i, p := range pairs {
		r[i] = neighbor.Neighbor{Index: i, Distance: p[0], Label: int(p[1])}
	}
	return r
}

func TestVote(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		neighbors neighbor.Result
		mode      Mode
		expected  int
		err       error
	}{
		{
			name:      "simple majority",
			neighbors: result([2]float64{0.1, 0}, [2]float64{0.2, 0}, [2]float64{0.3, 1}),
			mode:      ModeSimple,
			expected:  0,
		},
		{
			name:      "simple tie smallest label",
			neighbors: result([2]float64{0.1, 1}, [2]float64{0.2, 0}),
			mode:      ModeSimple,
			expected:  0,
		},
		{
			name:      "simple three way tie",
			neighbors: result([2]float64{0.1, 5}, [2]float64{0.2, 3}, [2]float64{0.3, 4}),
			mode:      ModeSimple,
			expected:  3,
		},
		{
			name:      "simple majority despite distance",
			neighbors: result([2]float64{0.01, 2}, [2]float64{0.5, 1}, [2]float64{0.6, 1}),
			mode:      ModeSimple,
			expected:  1,
		},
		{
			name:      "weighted",
			neighbors: result([2]float64{1, 0}, [2]float64{2, 1}),
			mode:      ModeWeighted,
			expected:  0,
		},
		{
			name:      "weighted closer minority wins",
			neighbors: result([2]float64{0.1, 2}, [2]float64{0.5, 1}, [2]float64{0.6, 1}),
			mode:      ModeWeighted,
			expected:  2,
		},
		{
			name:      "weighted tie smallest label",
			neighbors: result([2]float64{0.5, 7}, [2]float64{0.5, 3}),
			mode:      ModeWeighted,
			expected:  3,
		},
		{
			name:      "weighted exact match",
			neighbors: result([2]float64{0, 4}, [2]float64{0.1, 1}, [2]float64{0.1, 1}, [2]float64{0.2, 1}),
			mode:      ModeWeighted,
			expected:  4,
		},
		{
			name:      "weighted first exact match",
			neighbors: result([2]float64{0, 6}, [2]float64{0, 2}),
			mode:      ModeWeighted,
			expected:  6,
		},
		{
			name:      "weighted overflowing weights nearest wins",
			neighbors: result([2]float64{1e-170, 1}, [2]float64{1e-160, 0}),
			mode:      ModeWeighted,
			expected:  1,
		},
		{
			name:      "weighted overflowing weight beats finite",
			neighbors: result([2]float64{1e-200, 5}, [2]float64{0.01, 2}, [2]float64{0.01, 2}),
			mode:      ModeWeighted,
			expected:  5,
		},
		{name: "simple empty", mode: ModeSimple, err: ErrNoNeighbors},
		{name: "weighted empty", mode: ModeWeighted, err: ErrNoNeighbors},
		{
			name:      "unknown mode",
			neighbors: result([2]float64{0.1, 0}),
			mode:      Mode("RANKED"),
			err:       ErrUnknownMode,
		},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := Vote(test.neighbors, test.mode)
			if !errors.Is(err, test.err) {
				t.Fatalf("unexpected error got: %v, expected: %v", err, test.err)
			}
			if err == nil && got != test.expected {
				t.Errorf("predicted label got: %d, expected: %d", got, test.expected)
			}
		})
	}
}

func TestWeight(t *testing.T) {
	if _, err := Weight(0); !errors.Is(err, ErrZeroDistance) {
		t.Errorf("zero distance must return ErrZeroDistance, got: %v", err)
	}
	if _, err := Weight(1e-170); !errors.Is(err, ErrZeroDistance) {
		t.Errorf("overflowing weight must return ErrZeroDistance, got: %v", err)
	}
	w, err := Weight(2)
	if err != nil || w != 0.25 {
		t.Errorf("weight of 2 got: %v, %v, expected: 0.25", w, err)
	}
	if w, err := Weight(1e-150); err != nil || math.IsInf(w, 0) {
		t.Errorf("weight of 1e-150 got: %v, %v, expected a finite weight", w, err)
	}
}

func TestSimple_Deterministic(t *testing.T) {
	neighbors := result([2]float64{0.1, 9}, [2]float64{0.2, 1}, [2]float64{0.3, 9}, [2]float64{0.4, 1})
	for i := 0; i < 100; i++ {
		got, err := Simple(neighbors)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != 1 {
			t.Fatalf("tie must always resolve to the smallest label, got: %d", got)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in       string
		expected Mode
		err      error
	}{
		{in: "simple", expected: ModeSimple},
		{in: "Weighted", expected: ModeWeighted},
		{in: "majority", err: ErrUnknownMode},
	}
	for _, test := range tests {
		got, err := ParseMode(test.in)
		if !errors.Is(err, test.err) || got != test.expected {
			t.Errorf("ParseMode(%q) = %v, %v, want %v, %v", test.in, got, err, test.expected, test.err)
		}
	}
}
