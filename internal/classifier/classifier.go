package classifier

import (
	"errors"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/geom"
	"github.com/go-sod/knn2d/internal/neighbor"
	"github.com/go-sod/knn2d/internal/vote"
	"github.com/google/uuid"
)

var (
	ErrNotLoaded    = errors.New("classifier: no training data loaded")
	ErrInvalidQuery = errors.New("classifier: query coordinates must be finite")
)

// Outcome is the result of one classification.
type Outcome struct {
	Label     int             `json:"label"`
	Query     geom.Point      `json:"query"`
	Neighbors neighbor.Result `json:"neighbors"`
	Dataset   uuid.UUID       `json:"dataset"`
}

type Option func(*Classifier)

func WithAlg(alg neighbor.AlgType) Option {
	return func(c *Classifier) {
		c.opts.algType = alg
	}
}

func WithPolicy(p dataset.Policy) Option {
	return func(c *Classifier) {
		c.opts.policy = p
	}
}

var defaultOptions = Options{algType: neighbor.AlgTypeBrute, policy: dataset.PolicyZero}

type Options struct {
	algType neighbor.AlgType
	policy  dataset.Policy
}

// snapshot is everything a classification reads. It is built completely
// before being published and never changed afterwards.
type snapshot struct {
	ds       *dataset.Dataset
	selector neighbor.Selector
}

// Classifier classifies points against the most recently loaded dataset.
// Classify is safe for concurrent use, including concurrently with Load.
type Classifier struct {
	opts    Options
	current atomic.Value
}

func New(opts ...Option) *Classifier {
	c := &Classifier{opts: defaultOptions}
	for _, f := range opts {
		f(c)
	}
	return c
}

// Load normalizes and indexes records and then replaces the current dataset.
// On error the previous dataset stays in place.
func (c *Classifier) Load(records []dataset.Record) (*dataset.Dataset, error) {
	ds, err := dataset.Load(records)
	if err != nil {
		return nil, err
	}
	if err := ds.Normalize(c.opts.policy); err != nil {
		return nil, err
	}
	selector, err := neighbor.SelectorFor(c.opts.algType, ds.NormalizedRecords())
	if err != nil {
		return nil, err
	}
	c.current.Store(&snapshot{ds: ds, selector: selector})
	return ds, nil
}

func (c *Classifier) LoadReader(r io.Reader) (*dataset.Dataset, error) {
	records, err := dataset.Read(r)
	if err != nil {
		return nil, err
	}
	return c.Load(records)
}

func (c *Classifier) LoadFile(path string) (*dataset.Dataset, error) {
	records, err := dataset.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return c.Load(records)
}

// Dataset returns the current dataset, or nil before the first Load.
func (c *Classifier) Dataset() *dataset.Dataset {
	if s := c.snapshot(); s != nil {
		return s.ds
	}
	return nil
}

// Classify predicts the label of query, given in normalized coordinates.
func (c *Classifier) Classify(query geom.Point, k int, metric geom.Metric, mode vote.Mode) (*Outcome, error) {
	s := c.snapshot()
	if s == nil {
		return nil, ErrNotLoaded
	}
	return s.classify(query, k, metric, mode)
}

// ClassifyRaw is Classify for a query in training file units. Scaling and
// classification read the same dataset even while Load runs concurrently.
func (c *Classifier) ClassifyRaw(x, y float64, k int, metric geom.Metric, mode vote.Mode) (*Outcome, error) {
	s := c.snapshot()
	if s == nil {
		return nil, ErrNotLoaded
	}
	if !(geom.Point{X: x, Y: y}).Finite() {
		return nil, ErrInvalidQuery
	}
	return s.classify(s.ds.Scale(x, y), k, metric, mode)
}

func (s *snapshot) classify(query geom.Point, k int, metric geom.Metric, mode vote.Mode) (*Outcome, error) {
	if !query.Finite() {
		return nil, ErrInvalidQuery
	}
	if metric == nil {
		return nil, geom.ErrUnknownMetric
	}
	neighbors, err := s.selector.Select(query, metric, k)
	if err != nil {
		return nil, err
	}
	label, err := vote.Vote(neighbors, mode)
	if err != nil {
		return nil, fmt.Errorf("unable to vote: %w", err)
	}
	return &Outcome{Label: label, Query: query, Neighbors: neighbors, Dataset: s.ds.ID()}, nil
}

func (c *Classifier) snapshot() *snapshot {
	s, _ := c.current.Load().(*snapshot)
	return s
}
