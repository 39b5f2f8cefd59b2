package neighbor

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/geom"
)

var ErrInvalidK = errors.New("neighbor: k must be within [1, dataset size]")

// Neighbor is a training record near the query. Index refers to the record
// position in the dataset.
type Neighbor struct {
	Index    int     `json:"index"`
	Distance float64 `json:"distance"`
	Label    int     `json:"label"`
}

// Result holds exactly k neighbors in ascending distance order, equal
// distances ordered by ascending Index.
type Result []Neighbor

// Selector finds the k nearest records of a fixed record set.
type Selector interface {
	Select(query geom.Point, metric geom.Metric, k int) (Result, error)
	Len() int
}

func validateK(k, size int) error {
	if k < 1 || k > size {
		return fmt.Errorf("%w: got %d, dataset size %d", ErrInvalidK, k, size)
	}
	return nil
}

// Select computes the distance from query to every record and returns the k
// closest. It does not modify records.
func Select(query geom.Point, records []dataset.Record, metric geom.Metric, k int) (Result, error) {
	if err := validateK(k, len(records)); err != nil {
		return nil, err
	}
	all := make(Result, len(records))
	for i, r := range records {
		all[i] = Neighbor{Index: i, Distance: metric.Distance(query, r.Point()), Label: r.Label}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Distance < all[j].Distance
	})
	return all[:k:k], nil
}
