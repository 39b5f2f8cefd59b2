package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-sod/knn2d/internal/classify"
	"github.com/go-sod/knn2d/internal/httputil"
	"github.com/go-sod/knn2d/internal/load"
	"github.com/spf13/cobra"
)

const (
	defaultTimeout = 10 * time.Second
	maxErrorBody   = 4 * 1024
)

// remote talks to a running knn2d-srv.
type remote struct {
	base   string
	client *http.Client
}

func newRemote(addr, token string, timeout time.Duration) (*remote, error) {
	client, err := httputil.NewClientFromConfig(httputil.HTTPClientConfig{
		BearerToken: token,
		Timeout:     timeout,
	})
	if err != nil {
		return nil, err
	}
	return &remote{base: strings.TrimRight(addr, "/"), client: client}, nil
}

// remoteFromFlags returns nil when --server is not set.
func remoteFromFlags(cmd *cobra.Command) (*remote, error) {
	addr, _ := cmd.Flags().GetString("server")
	if addr == "" {
		return nil, nil
	}
	token, _ := cmd.Flags().GetString("token")
	if token == "" {
		token = os.Getenv("KNN2D_API_TOKEN")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return newRemote(addr, token, timeout)
}

func (r *remote) classify(ctx context.Context, req classify.Request) (*classify.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("unable encode request: %w", err)
	}
	var resp classify.Response
	if err := r.do(ctx, http.MethodPost, "/classify", httputil.ContentTypeJSON, bytes.NewReader(body), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *remote) load(ctx context.Context, data io.Reader) (*load.Summary, error) {
	var summary load.Summary
	if err := r.do(ctx, http.MethodPost, "/dataset", httputil.ContentTypeCSV, data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *remote) do(ctx context.Context, method, path, contentType string, body io.Reader, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, r.base+path, body)
	if err != nil {
		return fmt.Errorf("unable create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("unable decode response: %w", err)
	}
	return nil
}
