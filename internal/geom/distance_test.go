package geom

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-12

func TestEuclideanDistance(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected float64
	}{
		{name: "positive", p: Point{1.2, 2.0}, p1: Point{2.0, 3.0}, expected: 1.2806248474865698},
		{name: "positive", p: Point{10, 2.0}, p1: Point{5, 3.0}, expected: 5.0990195135927845},
		{name: "pythagorean", p: Point{0, 0}, p1: Point{3, 4}, expected: 5},
		{name: "same point", p: Point{0.3, 0.7}, p1: Point{0.3, 0.7}, expected: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := EuclideanDistance(test.p, test.p1)
			if math.Abs(got-test.expected) > eps {
				t.Errorf(
					"the distance obtained does not correspond to the expected distance, got %f, expected %f",
					got, test.expected)
			}
		})
	}
}

func TestManhattanDistance(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected float64
	}{
		{name: "positive", p: Point{1.2, 2.0}, p1: Point{2.0, 3.0}, expected: 1.8},
		{name: "positive", p: Point{10, 2.0}, p1: Point{5, 3.0}, expected: 6},
		{name: "same point", p: Point{0.3, 0.7}, p1: Point{0.3, 0.7}, expected: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ManhattanDistance(test.p, test.p1)
			if math.Abs(got-test.expected) > eps {
				t.Errorf(
					"the distance obtained does not correspond to the expected distance, got %f, expected %f",
					got, test.expected)
			}
		})
	}
}

func TestChebyshevDistance(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		p1       Point
		expected float64
	}{
		{name: "positive", p: Point{1.2, 2.0}, p1: Point{2.0, 3.0}, expected: 1},
		{name: "positive", p: Point{10, 2.0}, p1: Point{5, 3.0}, expected: 5},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := ChebyshevDistance(test.p, test.p1)
			if math.Abs(got-test.expected) > eps {
				t.Errorf(
					"the distance obtained does not correspond to the expected distance, got %f, expected %f",
					got, test.expected)
			}
		})
	}
}

func TestMetric_Symmetry(t *testing.T) {
	t.Parallel()
	points := []Point{{0, 0}, {1, 1}, {0.25, 0.9}, {-3.5, 12}, {0.1, 0.1}}
	metrics := map[string]Metric{"euclidean": Euclidean, "manhattan": Manhattan, "chebyshev": Chebyshev}
	for name, m := range metrics {
		for _, p := range points {
			if d := m.Distance(p, p); d != 0 {
				t.Errorf("%s: distance(p, p) got: %v, expected: 0", name, d)
			}
			for _, p1 := range points {
				d, d1 := m.Distance(p, p1), m.Distance(p1, p)
				if d != d1 {
					t.Errorf("%s: distance is not symmetric for %v, %v: %v != %v", name, p, p1, d, d1)
				}
				if d < 0 {
					t.Errorf("%s: negative distance %v for %v, %v", name, d, p, p1)
				}
			}
		}
	}
}

func TestParseMetricType(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		in       string
		expected MetricType
		err      error
	}{
		{name: "lower", in: "euclidean", expected: MetricTypeEuclidean},
		{name: "upper", in: "MANHATTAN", expected: MetricTypeManhattan},
		{name: "padded", in: " chebyshev ", expected: MetricTypeChebyshev},
		{name: "unknown", in: "cosine", err: ErrUnknownMetric},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseMetricType(test.in)
			if !errors.Is(err, test.err) {
				t.Fatalf("unexpected error got: %v, expected: %v", err, test.err)
			}
			if got != test.expected {
				t.Errorf("metric type got: %v, expected: %v", got, test.expected)
			}
		})
	}
}

func TestPoint_Finite(t *testing.T) {
	tests := []struct {
		name     string
		p        Point
		expected bool
	}{
		{name: "positive", p: Point{0.5, 0.5}, expected: true},
		{name: "nan", p: Point{math.NaN(), 0}, expected: false},
		{name: "inf", p: Point{0, math.Inf(-1)}, expected: false},
	}
	for _, test := range tests {
		if test.p.Finite() != test.expected {
			t.Errorf("%s: finite got: %v, expected: %v", test.name, test.p.Finite(), test.expected)
		}
	}
}
