package srvenv

import (
	"context"
	"net/http"

	"github.com/go-sod/knn2d/internal/classifier"
)

type Option func(*SrvEnv) *SrvEnv

func New(opts ...Option) *SrvEnv {
	env := &SrvEnv{}
	for _, f := range opts {
		env = f(env)
	}

	return env
}

// SrvEnv holds the long-lived components built by setup.
type SrvEnv struct {
	classifier *classifier.Classifier
	metrics    http.Handler
}

func (s *SrvEnv) Classifier() *classifier.Classifier {
	return s.classifier
}

// MetricsHandler is nil when metrics were not configured.
func (s *SrvEnv) MetricsHandler() http.Handler {
	return s.metrics
}

func WithClassifier(c *classifier.Classifier) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.classifier = c
		return s
	}
}

func WithMetricsHandler(h http.Handler) Option {
	return func(s *SrvEnv) *SrvEnv {
		s.metrics = h
		return s
	}
}

func (s *SrvEnv) Close(_ context.Context) error {
	return nil
}
