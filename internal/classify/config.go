package classify

import (
	"time"

	"github.com/go-sod/knn2d/internal/geom"
	"github.com/go-sod/knn2d/internal/vote"
)

// Config holds the request timeout and the values used when a request
// leaves k, metric or voting out.
type Config struct {
	RequestTimeout time.Duration   `envconfig:"KNN2D_CLASSIFY_REQUEST_TIMEOUT" default:"5s" toml:"request_timeout"`
	DefaultK       int             `envconfig:"KNN2D_CLASSIFY_DEFAULT_K" default:"1" toml:"default_k"`
	DefaultMetric  geom.MetricType `envconfig:"KNN2D_CLASSIFY_DEFAULT_METRIC" default:"EUCLIDEAN" toml:"default_metric"`
	DefaultVoting  vote.Mode       `envconfig:"KNN2D_CLASSIFY_DEFAULT_VOTING" default:"SIMPLE" toml:"default_voting"`
}
