package neighbor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/geom"
	"github.com/go-sod/knn2d/pkg/container/kdtree"
)

type AlgType string

const (
	AlgTypeBrute  AlgType = "BRUTE"
	AlgTypeKDTree AlgType = "KD_TREE"
)

var ErrUnknownAlg = errors.New("neighbor: unknown selection algorithm")

// ParseAlgType accepts "brute", "kd_tree" and "kd-tree" in any case.
func ParseAlgType(s string) (AlgType, error) {
	a := AlgType(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "-", "_"))
	switch a {
	case AlgTypeBrute, AlgTypeKDTree:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAlg, s)
	}
}

// SelectorFor builds the selector of the given type over records.
func SelectorFor(a AlgType, records []dataset.Record) (Selector, error) {
	switch a {
	case AlgTypeBrute:
		return NewBrute(records), nil
	case AlgTypeKDTree:
		return NewKDTree(records), nil
	default:
		return nil, fmt.Errorf("unable to create selector: %w: %s", ErrUnknownAlg, a)
	}
}

var (
	_ Selector = (*brute)(nil)
	_ Selector = (*kd)(nil)
)

func NewBrute(records []dataset.Record) *brute {
	return &brute{records: records}
}

type brute struct {
	records []dataset.Record
}

func (b *brute) Select(query geom.Point, metric geom.Metric, k int) (Result, error) {
	return Select(query, b.records, metric, k)
}

func (b *brute) Len() int {
	return len(b.records)
}

// NewKDTree indexes records in a balanced kd-tree. It gives the same result
// as a linear scan for metrics bounded below by any single coordinate
// difference, which holds for every geom metric.
func NewKDTree(records []dataset.Record) *kd {
	items := make([]kdtree.Item, len(records))
	for i, r := range records {
		items[i] = kdtree.Item{Point: r.Point(), ID: i}
	}
	tree := kdtree.New()
	tree.Build(items...)
	return &kd{tree: tree, records: records}
}

type kd struct {
	tree    *kdtree.Tree
	records []dataset.Record
}

func (b *kd) Select(query geom.Point, metric geom.Metric, k int) (Result, error) {
	if err := validateK(k, len(b.records)); err != nil {
		return nil, err
	}
	found, err := b.tree.KNN(query, k, func(p, p1 kdtree.Point) float64 {
		return metric.Distance(p.(geom.Point), p1.(geom.Point))
	})
	if err != nil {
		return nil, fmt.Errorf("unable compute KNN: %w", err)
	}
	result := make(Result, len(found))
	for i, n := range found {
		result[i] = Neighbor{
			Index:    n.Item.ID,
			Distance: n.Distance,
			Label:    b.records[n.Item.ID].Label,
		}
	}
	return result, nil
}

func (b *kd) Len() int {
	return b.tree.Len()
}
