package pqueue

import (
	"sort"
)

// WithCap bounds the queue; pushing beyond the bound drops the lowest ranked items.
func WithCap(size uint) Option {
	return func(q *Queue) {
		q.cap = int(size)
	}
}

type Option func(*Queue)

type item struct {
	value interface{}
	prior float64
	seq   int
}

// New returns an ascending priority queue. Items with equal priority are
// ranked by their seq value, smallest first.
func New(opts ...Option) *Queue {
	p := &Queue{cap: -1}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type Queue struct {
	cap   int
	items []item
}

// Push inserts val keeping the queue ordered by (priority, seq).
func (q *Queue) Push(val interface{}, priority float64, seq int) {
	it := item{value: val, prior: priority, seq: seq}
	idx := sort.Search(len(q.items), func(i int) bool {
		return q.less(it, q.items[i])
	})
	if q.cap >= 0 && idx >= q.cap {
		return
	}
	q.items = append(q.items, item{})
	copy(q.items[idx+1:], q.items[idx:])
	q.items[idx] = it
	if q.cap >= 0 && len(q.items) > q.cap {
		q.items = q.items[:q.cap]
	}
}

// Full reports whether a capped queue holds cap items.
func (q *Queue) Full() bool {
	return q.cap >= 0 && len(q.items) >= q.cap
}

// Last returns the priority of the lowest ranked item.
func (q *Queue) Last() (float64, bool) {
	if len(q.items) == 0 {
		return 0, false
	}
	return q.items[len(q.items)-1].prior, true
}

func (q *Queue) Len() int { return len(q.items) }

func (q *Queue) less(a, b item) bool {
	if a.prior != b.prior {
		return a.prior < b.prior
	}
	return a.seq < b.seq
}

func (q *Queue) Seek(idx int) (interface{}, float64) {
	item := q.items[idx]
	return item.value, item.prior
}
