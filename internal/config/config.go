package knn2d

import (
	"github.com/go-sod/knn2d/internal/classifier"
	"github.com/go-sod/knn2d/internal/classify"
	"github.com/go-sod/knn2d/internal/load"
	"github.com/go-sod/knn2d/internal/setup"
)

var (
	_ setup.ClassifierConfigProvider = (*Config)(nil)
	_ setup.FileConfigProvider       = (*Config)(nil)
	_ setup.MetricsConfigProvider    = (*Config)(nil)
)

type Config struct {
	SrvAddr    string            `envconfig:"KNN2D_ADDR" default:":8787" toml:"addr"`
	Data       string            `envconfig:"KNN2D_DATA_FILE" toml:"data_file"`
	File       string            `envconfig:"KNN2D_CONFIG_FILE" toml:"-"`
	APIToken   string            `envconfig:"KNN2D_API_TOKEN" toml:"api_token"`
	Namespace  string            `envconfig:"KNN2D_METRICS_NAMESPACE" default:"knn2d" toml:"metrics_namespace"`
	Classify   classify.Config   `toml:"classify"`
	Load       load.Config       `toml:"load"`
	Classifier classifier.Config `toml:"classifier"`
}

func (c *Config) ClassifierConfig() *classifier.Config {
	return &c.Classifier
}

func (c *Config) DataFile() string {
	return c.Data
}

func (c *Config) ConfigFile() string {
	return c.File
}

func (c *Config) MetricsNamespace() string {
	return c.Namespace
}
