package api

import (
	"net/http"
	"strconv"

	"github.com/okian/enso/internal/adapters/render"
	"github.com/okian/enso/internal/domain/capture"
	"github.com/okian/enso/pkg/logger"
	"github.com/okian/enso/pkg/metrics"
)

// StrokeHandler serves one-shot scoring of recorded strokes.
type StrokeHandler struct {
	deps         Dependencies
	maxBodyBytes int64
	logger       logger.Logger
}

// NewStrokeHandler creates a new stroke handler.
func NewStrokeHandler(deps Dependencies, maxBodyBytes int64, l logger.Logger) *StrokeHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	if l == nil {
		l = logger.NewNop()
	}
	return &StrokeHandler{deps: deps, maxBodyBytes: maxBodyBytes, logger: l}
}

// HandleScore handles POST /score requests.
func (h *StrokeHandler) HandleScore(w http.ResponseWriter, r *http.Request) {
	const op = "api.score"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req strokeRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		h.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	attempt, err := h.deps.ScoreStroke(r.Context(), req.Points)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	attempt.Localize(requestLocale(r, h.deps.Locale()))
	writeJSON(w, http.StatusOK, attempt)
}

// HandleReplay handles POST /replay requests. With ?format=png the response
// is the drawing surface after the last event instead of JSON.
func (h *StrokeHandler) HandleReplay(w http.ResponseWriter, r *http.Request) {
	const op = "api.replay"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req replayRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		h.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	var canvas *render.Canvas
	var renderer capture.Renderer
	format := r.URL.Query().Get("format")
	if format == string(render.FormatPNG) {
		canvas = render.NewCanvas(h.deps.CanvasSize())
		renderer = canvas
	} else if format != "" {
		h.fail(w, r, op, WrapKind(op, ErrBadRequest, render.ErrFormat))
		return
	}

	attempt, err := h.deps.Replay(r.Context(), req.Events, renderer)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	if canvas == nil {
		attempt.Localize(requestLocale(r, h.deps.Locale()))
		writeJSON(w, http.StatusOK, attempt)
		return
	}

	img, err := canvas.PNG()
	if err != nil {
		metrics.RecordRenderError()
		h.fail(w, r, op, WrapKind(op, ErrRender, err))
		return
	}
	h.writeImage(w, render.FormatPNG, img, attempt.Outcome, attempt.Score)
}

// HandleRender handles POST /render requests: ?format=png (default) or svg.
func (h *StrokeHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	const op = "api.render"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	format, err := render.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		h.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	var req strokeRequest
	if err := decodeBody(w, r, h.maxBodyBytes, &req); err != nil {
		h.fail(w, r, op, WrapKind(op, ErrBadRequest, err))
		return
	}

	img, attempt, err := h.deps.Render(r.Context(), req.Points, format)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	h.writeImage(w, format, img, attempt.Outcome, attempt.Score)
}

func (h *StrokeHandler) writeImage(w http.ResponseWriter, format render.Format, img []byte, outcome string, score int) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("X-Enso-Outcome", outcome)
	w.Header().Set("X-Enso-Score", strconv.Itoa(score))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (h *StrokeHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, code := statusFor(err)
	if status >= http.StatusInternalServerError {
		metrics.RecordErrorByComponent("http", code)
		h.logger.Error(r.Context(), "request failed", logger.String("op", op), logger.Error(err))
	} else {
		h.logger.Debug(r.Context(), "request rejected", logger.String("op", op), logger.Error(err))
	}
	writeError(w, status, code, err)
}
