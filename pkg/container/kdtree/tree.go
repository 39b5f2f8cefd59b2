package kdtree

import (
	"fmt"
	"sort"

	"github.com/go-sod/knn2d/pkg/pqueue"
)

type Point interface {
	Dim(idx int) float64
	Dimensions() int
}

// DistanceFn must never be smaller than the absolute difference of any single
// coordinate (true for the Minkowski family), otherwise KNN may prune too much.
type DistanceFn func(p, p1 Point) float64

// Item is a stored point together with a caller-defined ID. Equal distances
// are ranked by ascending ID.
type Item struct {
	Point Point
	ID    int
}

type Neighbor struct {
	Item     Item
	Distance float64
}

func New() *Tree {
	return &Tree{}
}

type Tree struct {
	root *node
	len  int
}

func (t *Tree) Build(items ...Item) {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	t.len = len(sorted)
	t.root = buildTreeRecursive(sorted, 0)
}

func (t *Tree) Len() int {
	return t.len
}

// KNN returns the k items closest to p ordered by (distance, ID).
func (t *Tree) KNN(p Point, k int, distFn DistanceFn) ([]Neighbor, error) {
	if t.root == nil || k <= 0 {
		return nil, fmt.Errorf("root is nil or K is %d", k)
	}
	if k > t.len {
		return nil, fmt.Errorf("K %d exceeds tree size %d", k, t.len)
	}

	queue := pqueue.New(pqueue.WithCap(uint(k)))
	t.root.knn(p, 0, distFn, queue)

	neighbors := make([]Neighbor, queue.Len())
	for i := range neighbors {
		v, distance := queue.Seek(i)
		neighbors[i] = Neighbor{Item: v.(Item), Distance: distance}
	}
	return neighbors, nil
}

type sortItems struct {
	dim   int
	items []Item
}

func (b *sortItems) Len() int {
	return len(b.items)
}

func (b *sortItems) Less(i, j int) bool {
	return b.items[i].Point.Dim(b.dim) < b.items[j].Point.Dim(b.dim)
}

func (b *sortItems) Swap(i, j int) {
	b.items[i], b.items[j] = b.items[j], b.items[i]
}

func buildTreeRecursive(items []Item, dim int) *node {
	if len(items) == 0 {
		return nil
	}
	if len(items) == 1 {
		return &node{Key: items[0]}
	}

	sort.Sort(&sortItems{dim: dim, items: items})
	mid := len(items) / 2
	// Items equal to the split coordinate all go right.
	for mid > 0 && items[mid-1].Point.Dim(dim) == items[mid].Point.Dim(dim) {
		mid--
	}
	root := items[mid]
	nextDim := (dim + 1) % root.Point.Dimensions()
	return &node{
		Key:   root,
		Left:  buildTreeRecursive(items[:mid], nextDim),
		Right: buildTreeRecursive(items[mid+1:], nextDim),
	}
}
