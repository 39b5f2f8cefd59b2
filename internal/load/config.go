package load

import "time"

type Config struct {
	RequestTimeout time.Duration `envconfig:"KNN2D_LOAD_REQUEST_TIMEOUT" default:"30s" toml:"request_timeout"`
	MaxBodyBytes   int64         `envconfig:"KNN2D_LOAD_MAX_BODY_BYTES" default:"16777216" toml:"max_body_bytes"`
}
