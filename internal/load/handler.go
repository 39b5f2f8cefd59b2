package load

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-sod/knn2d/internal/dataset"
	"github.com/go-sod/knn2d/internal/httputil"
	"github.com/go-sod/knn2d/internal/logging"
	"github.com/go-sod/knn2d/internal/metrics"
	"github.com/google/uuid"
)

// Loader is the part of classifier.Classifier the handler needs.
type Loader interface {
	LoadReader(r io.Reader) (*dataset.Dataset, error)
	Dataset() *dataset.Dataset
}

// Summary describes the published dataset.
type Summary struct {
	ID     uuid.UUID      `json:"id"`
	Size   int            `json:"size"`
	Labels []int          `json:"labels"`
	Bounds dataset.Bounds `json:"bounds"`
}

func Summarize(ds *dataset.Dataset) Summary {
	return Summary{
		ID:     ds.ID(),
		Size:   ds.Size(),
		Labels: ds.Labels(),
		Bounds: ds.Bounds(),
	}
}

func NewHandler(cfg *Config, loader Loader) (http.Handler, error) {
	if loader == nil {
		return nil, errors.New("loader instance is not created")
	}
	return &handler{cfg: cfg, loader: loader}, nil
}

type handler struct {
	loader Loader
	cfg    *Config
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPost, http.MethodPut:
		h.replace(w, r)
	default:
		httputil.RespError(r.Context(), w, http.StatusMethodNotAllowed, `{"error": "method %v is not allowed"}`, r.Method)
	}
}

func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	ds := h.loader.Dataset()
	if ds == nil {
		httputil.RespError(r.Context(), w, http.StatusNotFound, `{"error": "no dataset loaded"}`)
		return
	}
	httputil.RespJSON(r.Context(), w, http.StatusOK, Summarize(ds))
}

func (h *handler) replace(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := logging.FromContext(ctx)

	if !httputil.HasContentType(r, httputil.ContentTypeCSV) {
		httputil.RespError(ctx, w, http.StatusUnsupportedMediaType, `{"error": "%v"}`, "content-type is not text/csv")
		return
	}

	defer r.Body.Close()
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxBodyBytes)

	ds, err := h.loader.LoadReader(r.Body)
	if err != nil {
		metrics.RecordLoad(ctx, 0, err)
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			httputil.RespError(ctx, w, http.StatusRequestEntityTooLarge, `{"error": "body exceeds %d bytes"}`, maxBytesErr.Limit)
		case errors.Is(err, dataset.ErrParse),
			errors.Is(err, dataset.ErrEmptyInput),
			errors.Is(err, dataset.ErrInvalidRecord),
			errors.Is(err, dataset.ErrDegenerateFeature):
			httputil.RespBadRequest(ctx, w, `{"error": %q}`, err.Error())
		default:
			httputil.RespInternalError(ctx, w, `{"error": "load error, %v"}`, err)
		}
		return
	}
	metrics.RecordLoad(ctx, ds.Size(), nil)

	logger.Infow("dataset replaced", "id", ds.ID(), "size", ds.Size())
	httputil.RespJSON(ctx, w, http.StatusOK, Summarize(ds))
}
