package classifier

import (
	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/neighbor"
)

type Config struct {
	AlgType neighbor.AlgType `envconfig:"KNN2D_ALG_TYPE" default:"KD_TREE" toml:"alg_type"`
	Policy  dataset.Policy   `envconfig:"KNN2D_NORMALIZE_POLICY" default:"ZERO" toml:"normalize_policy"`
}

func (c Config) Options() []Option {
	return []Option{WithAlg(c.AlgType), WithPolicy(c.Policy)}
}
