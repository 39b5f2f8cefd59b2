package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-sod/knn2d/internal/buildinfo"
	"github.com/go-sod/knn2d/internal/classifier"
	"github.com/go-sod/knn2d/internal/classify"
	"github.com/go-sod/knn2d/internal/geom"
	"github.com/go-sod/knn2d/internal/load"
	"github.com/go-sod/knn2d/internal/neighbor"
	"github.com/go-sod/knn2d/internal/server"
	"github.com/go-sod/knn2d/internal/vote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const trainCSV = "0,0,0\n10,10,1\n0,10,0\n10,0,1\n"

func writeTrain(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte(trainCSV), 0o600))
	return path
}

func TestClassifyLocal(t *testing.T) {
	t.Parallel()
	data := writeTrain(t)
	tests := []struct {
		name     string
		opts     classifyOptions
		expected int
		fails    bool
	}{
		{
			name:     "normalized",
			opts:     classifyOptions{x: 0.1, y: 0.1, k: 1, metric: "euclidean", voting: "simple", alg: "kd_tree", policy: "zero"},
			expected: 0,
		},
		{
			name:     "raw weighted",
			opts:     classifyOptions{x: 9, y: 2, k: 3, metric: "manhattan", voting: "weighted", alg: "brute", policy: "zero", raw: true},
			expected: 1,
		},
		{name: "bad metric", opts: classifyOptions{k: 1, metric: "cosine", voting: "simple", alg: "brute", policy: "zero"}, fails: true},
		{name: "bad alg", opts: classifyOptions{k: 1, metric: "euclidean", voting: "simple", alg: "ball", policy: "zero"}, fails: true},
		{name: "bad policy", opts: classifyOptions{k: 1, metric: "euclidean", voting: "simple", alg: "brute", policy: "clamp"}, fails: true},
		{name: "bad k", opts: classifyOptions{k: 5, metric: "euclidean", voting: "simple", alg: "brute", policy: "zero"}, fails: true},
		{name: "zero k", opts: classifyOptions{k: 0, metric: "euclidean", voting: "simple", alg: "brute", policy: "zero"}, fails: true},
	}
	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			test.opts.data = data
			out, err := classifyLocal(context.Background(), test.opts)
			if test.fails {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.expected, out.Label)
		})
	}
}

func newTestServer(t *testing.T, token string) *httptest.Server {
	t.Helper()
	c := classifier.New()
	ch, err := classify.NewHandler(&classify.Config{
		DefaultK:      1,
		DefaultMetric: geom.MetricTypeEuclidean,
		DefaultVoting: vote.ModeSimple,
	}, c)
	require.NoError(t, err)
	lh, err := load.NewHandler(&load.Config{MaxBodyBytes: 1 << 20}, c)
	require.NoError(t, err)
	mux := http.NewServeMux()
	mux.Handle("/classify", server.WithBearerToken(token, ch))
	mux.Handle("/dataset", server.WithBearerToken(token, lh))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRemote(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, "s3cret")

	r, err := newRemote(srv.URL+"/", "s3cret", defaultTimeout)
	require.NoError(t, err)
	ctx := context.Background()

	opts := classifyOptions{x: 0.9, y: 0.1, k: 1, metric: "euclidean", voting: "simple"}
	_, err = r.classify(ctx, opts.request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")

	summary, err := r.load(ctx, strings.NewReader(trainCSV))
	require.NoError(t, err)
	assert.Equal(t, 4, summary.Size)
	assert.Equal(t, []int{0, 1}, summary.Labels)

	resp, err := r.classify(ctx, opts.request())
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Label)
	assert.Equal(t, summary.ID, resp.Dataset)

	zeroK := opts
	zeroK.k = 0
	_, err = r.classify(ctx, zeroK.request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")

	unauthorized, err := newRemote(srv.URL, "guess", defaultTimeout)
	require.NoError(t, err)
	_, err = unauthorized.classify(ctx, opts.request())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestPrintOutcome(t *testing.T) {
	var buf bytes.Buffer
	printOutcome(&buf, 2, neighbor.Result{
		{Index: 4, Distance: 0.14142, Label: 2},
		{Index: 1, Distance: 1, Label: 0},
	})
	assert.Equal(t, "label: 2\n  1. index=4 label=2 distance=0.14\n  2. index=1 label=0 distance=1.00\n", buf.String())
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, buildinfo.Get().String(), strings.TrimSpace(buf.String()))
}
