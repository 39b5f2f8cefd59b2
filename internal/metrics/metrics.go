// Package metrics records classification statistics with OpenCensus and
// exposes them in Prometheus format.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"contrib.go.opencensus.io/exporter/prometheus"
	"go.opencensus.io/stats"
	"go.opencensus.io/stats/view"
	"go.opencensus.io/tag"
)

const (
	ResultOK    = "ok"
	ResultError = "error"
)

var (
	ClassifyLatencyMs = stats.Float64("knn2d/classify/latency", "classification latency", stats.UnitMilliseconds)
	ClassifyCount     = stats.Int64("knn2d/classify/count", "number of classification requests", stats.UnitDimensionless)
	DatasetSize       = stats.Int64("knn2d/dataset/size", "records in the published dataset", stats.UnitDimensionless)
	DatasetLoads      = stats.Int64("knn2d/dataset/loads", "number of dataset load attempts", stats.UnitDimensionless)

	KeyMetric = tag.MustNewKey("metric")
	KeyVoting = tag.MustNewKey("voting")
	KeyResult = tag.MustNewKey("result")
)

var Views = []*view.View{
	{
		Name:        "knn2d/classify_count",
		Measure:     ClassifyCount,
		Description: "Classification requests by metric, voting mode and result",
		TagKeys:     []tag.Key{KeyMetric, KeyVoting, KeyResult},
		Aggregation: view.Count(),
	},
	{
		Name:        "knn2d/classify_latency",
		Measure:     ClassifyLatencyMs,
		Description: "Classification latency distribution",
		TagKeys:     []tag.Key{KeyMetric, KeyVoting},
		Aggregation: view.Distribution(0.01, 0.05, 0.1, 0.5, 1, 5, 10, 50, 100),
	},
	{
		Name:        "knn2d/dataset_size",
		Measure:     DatasetSize,
		Description: "Records in the published dataset",
		Aggregation: view.LastValue(),
	},
	{
		Name:        "knn2d/dataset_loads",
		Measure:     DatasetLoads,
		Description: "Dataset load attempts by result",
		TagKeys:     []tag.Key{KeyResult},
		Aggregation: view.Count(),
	},
}

func Register() error {
	if err := view.Register(Views...); err != nil {
		return fmt.Errorf("unable register views: %w", err)
	}
	return nil
}

// NewHandler returns the Prometheus scrape handler.
func NewHandler(namespace string) (http.Handler, error) {
	exporter, err := prometheus.NewExporter(prometheus.Options{Namespace: namespace})
	if err != nil {
		return nil, fmt.Errorf("unable create prometheus exporter: %w", err)
	}
	return exporter, nil
}

func result(err error) string {
	if err != nil {
		return ResultError
	}
	return ResultOK
}

func RecordClassify(ctx context.Context, metric, voting string, err error, took time.Duration) {
	ctx, tagErr := tag.New(ctx,
		tag.Upsert(KeyMetric, metric),
		tag.Upsert(KeyVoting, voting),
		tag.Upsert(KeyResult, result(err)),
	)
	if tagErr != nil {
		return
	}
	stats.Record(ctx,
		ClassifyCount.M(1),
		ClassifyLatencyMs.M(float64(took)/float64(time.Millisecond)),
	)
}

func RecordLoad(ctx context.Context, size int, err error) {
	ctx, tagErr := tag.New(ctx, tag.Upsert(KeyResult, result(err)))
	if tagErr != nil {
		return
	}
	stats.Record(ctx, DatasetLoads.M(1))
	if err == nil {
		stats.Record(ctx, DatasetSize.M(int64(size)))
	}
}
