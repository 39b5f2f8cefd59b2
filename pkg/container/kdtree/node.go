package kdtree

import (
	"math"

	"github.com/go-sod/knn2d/pkg/pqueue"
)

type node struct {
	Key   Item
	Left  *node
	Right *node
}

// knn visits the near side first and descends into the far side only while
// the splitting plane is not farther than the current k-th candidate. Planes
// at exactly that distance are still visited so equal-distance items with a
// lower ID can displace the candidate.
func (n *node) knn(p Point, axis int, distFn DistanceFn, q *pqueue.Queue) {
	if n == nil {
		return
	}
	q.Push(n.Key, distFn(p, n.Key.Point), n.Key.ID)

	diff := p.Dim(axis) - n.Key.Point.Dim(axis)
	near, far := n.Left, n.Right
	if diff >= 0 {
		near, far = n.Right, n.Left
	}
	next := (axis + 1) % p.Dimensions()
	near.knn(p, next, distFn, q)

	if worst, ok := q.Last(); q.Full() && ok && math.Abs(diff) > worst {
		return
	}
	far.knn(p, next, distFn, q)
}
