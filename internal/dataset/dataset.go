package dataset

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-sod/knn2d/internal/geom"
	"github.com/google/uuid"
)

// Policy decides how a constant feature (max == min) is normalized.
type Policy string

const (
	// PolicyZero maps every value of a constant feature to 0.0.
	PolicyZero Policy = "ZERO"
	// PolicyStrict refuses to normalize a constant feature.
	PolicyStrict Policy = "STRICT"
)

func (p Policy) Valid() bool {
	return p == PolicyZero || p == PolicyStrict
}

// Record is one labeled training sample.
type Record struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Label int     `json:"label"`
}

func (r Record) Point() geom.Point {
	return geom.Point{X: r.X, Y: r.Y}
}

// Bounds holds the per-feature minimum and maximum of the raw records.
type Bounds struct {
	Min geom.Point `json:"min"`
	Max geom.Point `json:"max"`
}

// Dataset is a training set together with its normalized copy. The two
// slices always have the same length and index correspondence. A Dataset
// must not be modified once it has been handed to readers.
type Dataset struct {
	id     uuid.UUID
	raw    []Record
	norm   []Record
	bounds Bounds
	policy Policy
}

// Load copies records into a new Dataset, keeping input order.
func Load(records []Record) (*Dataset, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}
	raw := make([]Record, len(records))
	for i, r := range records {
		if r.Label < 0 {
			return nil, fmt.Errorf("%w: record %d has negative label %d", ErrInvalidRecord, i, r.Label)
		}
		if !r.Point().Finite() {
			return nil, fmt.Errorf("%w: record %d has non-finite coordinates", ErrInvalidRecord, i)
		}
		raw[i] = r
	}
	d := &Dataset{
		id:  uuid.New(),
		raw: raw,
	}
	d.bounds = computeBounds(raw)
	return d, nil
}

// Normalize rescales both features to [0,1] using (v - min) / (max - min).
func (d *Dataset) Normalize(policy Policy) error {
	if !policy.Valid() {
		return fmt.Errorf("dataset: unknown normalization policy %q", policy)
	}
	if policy == PolicyStrict {
		if d.bounds.Min.X == d.bounds.Max.X {
			return &DegenerateFeatureError{Feature: "x", Value: d.bounds.Min.X}
		}
		if d.bounds.Min.Y == d.bounds.Max.Y {
			return &DegenerateFeatureError{Feature: "y", Value: d.bounds.Min.Y}
		}
	}
	norm := make([]Record, len(d.raw))
	for i, r := range d.raw {
		norm[i] = Record{
			X:     scale(r.X, d.bounds.Min.X, d.bounds.Max.X),
			Y:     scale(r.Y, d.bounds.Min.Y, d.bounds.Max.Y),
			Label: r.Label,
		}
	}
	d.norm = norm
	d.policy = policy
	return nil
}

func (d *Dataset) ID() uuid.UUID {
	return d.id
}

func (d *Dataset) Size() int {
	return len(d.raw)
}

func (d *Dataset) Bounds() Bounds {
	return d.bounds
}

// Normalized reports whether Normalize has succeeded on d.
func (d *Dataset) Normalized() bool {
	return d.norm != nil
}

// Raw returns the records as loaded. Callers must not modify the slice.
func (d *Dataset) Raw() []Record {
	return d.raw
}

// NormalizedRecords returns the normalized records, or nil before Normalize.
// Callers must not modify the slice.
func (d *Dataset) NormalizedRecords() []Record {
	return d.norm
}

// Labels returns the distinct labels in ascending order.
func (d *Dataset) Labels() []int {
	seen := make(map[int]struct{})
	var labels []int
	for _, r := range d.raw {
		if _, ok := seen[r.Label]; ok {
			continue
		}
		seen[r.Label] = struct{}{}
		labels = append(labels, r.Label)
	}
	sort.Ints(labels)
	return labels
}

// Scale maps a raw coordinate into the normalized space of d.
func (d *Dataset) Scale(x, y float64) geom.Point {
	return geom.Point{
		X: scale(x, d.bounds.Min.X, d.bounds.Max.X),
		Y: scale(y, d.bounds.Min.Y, d.bounds.Max.Y),
	}
}

func scale(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (v - min) / (max - min)
}

func computeBounds(records []Record) Bounds {
	b := Bounds{
		Min: geom.Point{X: math.MaxFloat64, Y: math.MaxFloat64},
		Max: geom.Point{X: -math.MaxFloat64, Y: -math.MaxFloat64},
	}
	for _, r := range records {
		b.Min.X = math.Min(b.Min.X, r.X)
		b.Min.Y = math.Min(b.Min.Y, r.Y)
		b.Max.X = math.Max(b.Max.X, r.X)
		b.Max.Y = math.Max(b.Max.Y, r.Y)
	}
	return b
}
