package classify

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-sod/knn2d/internal/classifier"
	"github.com/go-sod/knn2d/internal/geom"
	"github.com/go-sod/knn2d/internal/httputil"
	"github.com/go-sod/knn2d/internal/logging"
	"github.com/go-sod/knn2d/internal/metrics"
	"github.com/go-sod/knn2d/internal/neighbor"
	"github.com/go-sod/knn2d/internal/vote"
	"github.com/google/uuid"
)

const maxBodyBytes = 64 * 1024

// Classifier is the part of classifier.Classifier the handler needs.
type Classifier interface {
	Classify(query geom.Point, k int, metric geom.Metric, mode vote.Mode) (*classifier.Outcome, error)
	ClassifyRaw(x, y float64, k int, metric geom.Metric, mode vote.Mode) (*classifier.Outcome, error)
}

// Request is the body of POST /classify. With Raw set, X and Y are given in
// training file units and mapped into normalized space first. A missing K
// takes the configured default; an explicit 0 is rejected.
type Request struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	K      *int     `json:"k,omitempty"`
	Metric string   `json:"metric,omitempty"`
	Voting string   `json:"voting,omitempty"`
	Raw    bool     `json:"raw,omitempty"`
}

type Response struct {
	Label     int             `json:"label"`
	Dataset   uuid.UUID       `json:"dataset"`
	Query     geom.Point      `json:"query"`
	K         int             `json:"k"`
	Metric    geom.MetricType `json:"metric"`
	Voting    vote.Mode       `json:"voting"`
	Neighbors neighbor.Result `json:"neighbors"`
}

func NewHandler(cfg *Config, c Classifier) (http.Handler, error) {
	if c == nil {
		return nil, errors.New("classifier instance is not created")
	}
	if _, err := geom.MetricFor(cfg.DefaultMetric); err != nil {
		return nil, err
	}
	if _, err := vote.ParseMode(string(cfg.DefaultVoting)); err != nil {
		return nil, err
	}
	return &handler{cfg: cfg, classifier: c}, nil
}

type handler struct {
	classifier Classifier
	cfg        *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if r.Method != http.MethodPost {
		httputil.RespError(ctx, w, http.StatusMethodNotAllowed, `{"error": "method %v is not allowed"}`, r.Method)
		return
	}

	if !httputil.HasContentType(r, httputil.ContentTypeJSON) {
		httputil.RespError(ctx, w, http.StatusUnsupportedMediaType, `{"error": "%v"}`, "content-type is not application/json")
		return
	}

	defer r.Body.Close()

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	d := json.NewDecoder(r.Body)
	d.DisallowUnknownFields()
	if err := d.Decode(&req); err != nil {
		httputil.DecodeErr(ctx, w, err)
		return
	}

	if req.X == nil || req.Y == nil {
		httputil.RespBadRequest(ctx, w, `{"error": "x and y are required"}`)
		return
	}

	k, metricType, mode := h.cfg.DefaultK, h.cfg.DefaultMetric, h.cfg.DefaultVoting
	if req.K != nil {
		k = *req.K
	}
	if req.Metric != "" {
		parsed, err := geom.ParseMetricType(req.Metric)
		if err != nil {
			httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
			return
		}
		metricType = parsed
	}
	if req.Voting != "" {
		parsed, err := vote.ParseMode(req.Voting)
		if err != nil {
			httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
			return
		}
		mode = parsed
	}
	metric, err := geom.MetricFor(metricType)
	if err != nil {
		httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		return
	}

	var (
		outcome *classifier.Outcome
		start   = time.Now()
	)
	if req.Raw {
		outcome, err = h.classifier.ClassifyRaw(*req.X, *req.Y, k, metric, mode)
	} else {
		outcome, err = h.classifier.Classify(geom.Point{X: *req.X, Y: *req.Y}, k, metric, mode)
	}
	metrics.RecordClassify(ctx, string(metricType), string(mode), err, time.Since(start))
	if err != nil {
		switch {
		case errors.Is(err, classifier.ErrNotLoaded):
			httputil.RespError(ctx, w, http.StatusConflict, `{"error": "%v"}`, err)
		case errors.Is(err, neighbor.ErrInvalidK),
			errors.Is(err, classifier.ErrInvalidQuery):
			httputil.RespBadRequest(ctx, w, `{"error": "%v"}`, err)
		default:
			httputil.RespInternalError(ctx, w, `{"error": "classification error, %v"}`, err)
		}
		return
	}

	logger.Debugw("classified point", "query", outcome.Query, "k", k, "label", outcome.Label)
	httputil.RespJSON(ctx, w, http.StatusOK, Response{
		Label:     outcome.Label,
		Dataset:   outcome.Dataset,
		Query:     outcome.Query,
		K:         k,
		Metric:    metricType,
		Voting:    mode,
		Neighbors: outcome.Neighbors,
	})
}
