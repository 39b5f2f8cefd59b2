package setup

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/go-sod/knn2d/internal/classifier"
	"github.com/go-sod/knn2d/internal/logging"
	"github.com/go-sod/knn2d/internal/metrics"
	"github.com/go-sod/knn2d/internal/neighbor"
	"github.com/go-sod/knn2d/internal/srvenv"
	"github.com/kelseyhightower/envconfig"
)

type ClassifierConfigProvider interface {
	ClassifierConfig() *classifier.Config
	DataFile() string
}

type FileConfigProvider interface {
	ConfigFile() string
}

type MetricsConfigProvider interface {
	MetricsNamespace() string
}

// Setup fills config from the environment, then from the TOML file named by
// FileConfigProvider if any, and builds the components config provides for.
func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	if fileConfigProvider, ok := config.(FileConfigProvider); ok && fileConfigProvider.ConfigFile() != "" {
		path := fileConfigProvider.ConfigFile()
		logger.Infof("Reading config file %s", path)
		if _, err := toml.DecodeFile(path, config); err != nil {
			return nil, fmt.Errorf("unable read config file %s: %w", path, err)
		}
	}

	if metricsConfigProvider, ok := config.(MetricsConfigProvider); ok {
		logger.Info("Configuring metrics")
		if err := metrics.Register(); err != nil {
			return nil, err
		}
		handler, err := metrics.NewHandler(metricsConfigProvider.MetricsNamespace())
		if err != nil {
			return nil, err
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithMetricsHandler(handler))
	}

	if classifierConfigProvider, ok := config.(ClassifierConfigProvider); ok {
		logger.Info("Configuring classifier")
		c, err := ProvideClassifierFor(ctx, classifierConfigProvider)
		if err != nil {
			return nil, fmt.Errorf("unable create classifier: %w", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithClassifier(c))
	}

	return srvenv.New(serverEnvOpts...), nil
}

// ProvideClassifierFor validates the classifier config and, when a data file
// is configured, loads it before returning.
func ProvideClassifierFor(ctx context.Context, provider ClassifierConfigProvider) (*classifier.Classifier, error) {
	cfg := provider.ClassifierConfig()
	alg, err := neighbor.ParseAlgType(string(cfg.AlgType))
	if err != nil {
		return nil, err
	}
	cfg.AlgType = alg
	if !cfg.Policy.Valid() {
		return nil, fmt.Errorf("unknown normalize policy: %s", cfg.Policy)
	}

	c := classifier.New(cfg.Options()...)
	path := provider.DataFile()
	if path == "" {
		return c, nil
	}

	ds, err := c.LoadFile(path)
	if err != nil {
		metrics.RecordLoad(ctx, 0, err)
		return nil, fmt.Errorf("unable load data file %s: %w", path, err)
	}
	metrics.RecordLoad(ctx, ds.Size(), nil)
	logging.FromContext(ctx).Infow("dataset loaded", "id", ds.ID(), "size", ds.Size(), "file", path)
	return c, nil
}
