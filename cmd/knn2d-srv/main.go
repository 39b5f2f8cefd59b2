package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/go-sod/knn2d/internal/buildinfo"
	"github.com/go-sod/knn2d/internal/classify"
	knn2d "github.com/go-sod/knn2d/internal/config"
	"github.com/go-sod/knn2d/internal/load"
	"github.com/go-sod/knn2d/internal/logging"
	"github.com/go-sod/knn2d/internal/server"
	"github.com/go-sod/knn2d/internal/setup"
	"github.com/go-sod/knn2d/internal/shutdown"
	"golang.org/x/sync/errgroup"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintln(os.Stdout, buildinfo.Get())

	ctx, done := shutdown.New()
	defer done()

	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		logger.Fatal(err)
	}
}

func run(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	config := knn2d.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}
	defer env.Close(ctx)

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	classifyHandler, err := classify.NewHandler(&config.Classify, env.Classifier())
	if err != nil {
		return fmt.Errorf("classify.NewHandler: %w", err)
	}
	loadHandler, err := load.NewHandler(&config.Load, env.Classifier())
	if err != nil {
		return fmt.Errorf("load.NewHandler: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/classify", server.WithBearerToken(config.APIToken,
		http.TimeoutHandler(classifyHandler, config.Classify.RequestTimeout, `{"error": "request timeout"}`)))
	mux.Handle("/dataset", server.WithBearerToken(config.APIToken,
		http.TimeoutHandler(loadHandler, config.Load.RequestTimeout, `{"error": "request timeout"}`)))
	mux.Handle("/health", server.HandleHealth(ctx))
	if h := env.MetricsHandler(); h != nil {
		mux.Handle("/metrics", h)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Infow("server listening", "addr", srv.Addr())
		return srv.ServeHTTPHandler(ctx, server.WithLogging(ctx, mux))
	})

	return g.Wait()
}
