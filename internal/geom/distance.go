package geom

import (
	"fmt"
	"math"
	"strings"
)

type MetricType string

const (
	MetricTypeEuclidean MetricType = "EUCLIDEAN"
	MetricTypeManhattan MetricType = "MANHATTAN"
	MetricTypeChebyshev MetricType = "CHEBYSHEV"
)

var ErrUnknownMetric = fmt.Errorf("unknown distance metric")

// Metric computes a non-negative, symmetric distance between two points.
type Metric interface {
	Distance(p, p1 Point) float64
}

// DistanceFunc adapts an ordinary function to the Metric interface.
type DistanceFunc func(p, p1 Point) float64

func (f DistanceFunc) Distance(p, p1 Point) float64 {
	return f(p, p1)
}

var (
	Euclidean Metric = DistanceFunc(EuclideanDistance)
	Manhattan Metric = DistanceFunc(ManhattanDistance)
	Chebyshev Metric = DistanceFunc(ChebyshevDistance)
)

func EuclideanDistance(p, p1 Point) float64 {
	dx, dy := p.X-p1.X, p.Y-p1.Y
	return math.Sqrt(dx*dx + dy*dy)
}

func ManhattanDistance(p, p1 Point) float64 {
	return math.Abs(p.X-p1.X) + math.Abs(p.Y-p1.Y)
}

func ChebyshevDistance(p, p1 Point) float64 {
	return math.Max(math.Abs(p.X-p1.X), math.Abs(p.Y-p1.Y))
}

func MetricFor(t MetricType) (Metric, error) {
	switch t {
	case MetricTypeEuclidean:
		return Euclidean, nil
	case MetricTypeManhattan:
		return Manhattan, nil
	case MetricTypeChebyshev:
		return Chebyshev, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownMetric, t)
	}
}

// ParseMetricType accepts metric names in any case, e.g. "euclidean".
func ParseMetricType(s string) (MetricType, error) {
	t := MetricType(strings.ToUpper(strings.TrimSpace(s)))
	if _, err := MetricFor(t); err != nil {
		return "", err
	}
	return t, nil
}
