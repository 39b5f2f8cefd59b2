package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-sod/knn2d/internal/classifier"
	"github.com/go-sod/knn2d/internal/classify"
	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/geom"
	"github.com/go-sod/knn2d/internal/logging"
	"github.com/go-sod/knn2d/internal/neighbor"
	"github.com/go-sod/knn2d/internal/vote"
	"github.com/spf13/cobra"
)

type classifyOptions struct {
	data   string
	x, y   float64
	k      int
	metric string
	voting string
	alg    string
	policy string
	raw    bool
}

var classifyOpts classifyOptions

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Predict the label of one point",
	Long: "Predict the label of the point (--x, --y) from its k nearest neighbors, either against a " +
		"local training file (--data) or against the dataset published by a server (--server).",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := remoteFromFlags(cmd)
		if err != nil {
			return err
		}
		var (
			label     int
			neighbors neighbor.Result
		)
		switch {
		case r != nil && classifyOpts.data != "":
			return errors.New("--data and --server are mutually exclusive")
		case r != nil:
			resp, err := r.classify(cmd.Context(), classifyOpts.request())
			if err != nil {
				return err
			}
			label, neighbors = resp.Label, resp.Neighbors
		case classifyOpts.data != "":
			out, err := classifyLocal(cmd.Context(), classifyOpts)
			if err != nil {
				return err
			}
			label, neighbors = out.Label, out.Neighbors
		default:
			return errors.New("one of --data or --server is required")
		}
		printOutcome(cmd.OutOrStdout(), label, neighbors)
		return nil
	},
}

func init() {
	f := classifyCmd.Flags()
	f.StringVar(&classifyOpts.data, "data", "", "Training CSV file with x,y,label rows")
	f.Float64Var(&classifyOpts.x, "x", 0, "Query x coordinate")
	f.Float64Var(&classifyOpts.y, "y", 0, "Query y coordinate")
	f.IntVarP(&classifyOpts.k, "k", "k", 1, "Number of neighbors")
	f.StringVar(&classifyOpts.metric, "metric", string(geom.MetricTypeEuclidean), "Distance metric: euclidean, manhattan or chebyshev")
	f.StringVar(&classifyOpts.voting, "voting", string(vote.ModeSimple), "Voting mode: simple or weighted")
	f.StringVar(&classifyOpts.alg, "alg", string(neighbor.AlgTypeKDTree), "Neighbor search: brute or kd_tree (local only)")
	f.StringVar(&classifyOpts.policy, "policy", string(dataset.PolicyZero), "Constant feature policy: zero or strict (local only)")
	f.BoolVar(&classifyOpts.raw, "raw", false, "Query is in training file units rather than normalized [0,1]")
	_ = classifyCmd.MarkFlagRequired("x")
	_ = classifyCmd.MarkFlagRequired("y")
}

func (o classifyOptions) request() classify.Request {
	x, y, k := o.x, o.y, o.k
	return classify.Request{X: &x, Y: &y, K: &k, Metric: o.metric, Voting: o.voting, Raw: o.raw}
}

func classifyLocal(ctx context.Context, o classifyOptions) (*classifier.Outcome, error) {
	metricType, err := geom.ParseMetricType(o.metric)
	if err != nil {
		return nil, err
	}
	metric, err := geom.MetricFor(metricType)
	if err != nil {
		return nil, err
	}
	mode, err := vote.ParseMode(o.voting)
	if err != nil {
		return nil, err
	}
	alg, err := neighbor.ParseAlgType(o.alg)
	if err != nil {
		return nil, err
	}
	policy := dataset.Policy(strings.ToUpper(o.policy))
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown normalize policy: %s", o.policy)
	}

	c := classifier.New(classifier.WithAlg(alg), classifier.WithPolicy(policy))
	ds, err := c.LoadFile(o.data)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debugw("dataset loaded", "id", ds.ID(), "size", ds.Size(), "file", o.data)

	if o.raw {
		return c.ClassifyRaw(o.x, o.y, o.k, metric, mode)
	}
	return c.Classify(geom.Point{X: o.x, Y: o.y}, o.k, metric, mode)
}

func printOutcome(w io.Writer, label int, neighbors neighbor.Result) {
	_, _ = fmt.Fprintf(w, "label: %d\n", label)
	for i, n := range neighbors {
		_, _ = fmt.Fprintf(w, "%3d. index=%d label=%d distance=%.2f\n", i+1, n.Index, n.Label, n.Distance)
	}
}
