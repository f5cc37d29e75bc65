// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/okian/enso/internal/adapters/render"
	service "github.com/okian/enso/internal/app"
	"github.com/okian/enso/internal/domain/capture"
	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
	"github.com/okian/enso/internal/domain/types"
	"github.com/okian/enso/pkg/logger"
)

const defaultMaxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	ScoreStroke(ctx context.Context, points []model.Point) (types.Attempt, error)
	Replay(ctx context.Context, events []model.PointerEvent, r capture.Renderer) (types.Attempt, error)
	Render(ctx context.Context, points []model.Point, format render.Format) ([]byte, types.Attempt, error)

	SessionDependencies

	Locale() scoring.Locale
	CanvasSize() (int, int)
}

// SessionDependencies is what a live drawing session needs.
type SessionDependencies interface {
	NewSession(ctx context.Context, r capture.Renderer) (*capture.Capture, error)
	TrackSession() func()
	MaxStrokePoints() int
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	strokeHandler  *StrokeHandler
	sessionHandler *SessionHandler
}

// Option applies a configuration option to the Server.
type Option func(*options)

type options struct {
	maxBodyBytes   int64
	originPatterns []string
	logger         logger.Logger
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) {
		if n > 0 {
			o.maxBodyBytes = n
		}
	}
}

// WithOriginPatterns lists extra hosts allowed to open live sessions.
func WithOriginPatterns(patterns ...string) Option {
	return func(o *options) {
		o.originPatterns = append(o.originPatterns, patterns...)
	}
}

// WithLogger sets a custom logger for the handlers.
func WithLogger(l logger.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	o := options{maxBodyBytes: defaultMaxBodyBytes, logger: logger.GetOrNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Server{
		healthHandler:  NewHealthHandler(),
		statsHandler:   NewStatsHandler(statsProvider),
		strokeHandler:  NewStrokeHandler(deps, o.maxBodyBytes, o.logger),
		sessionHandler: NewSessionHandler(deps, deps.Locale(), o.originPatterns, o.logger),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/score", MetricsMiddleware(s.strokeHandler.HandleScore, "score"))
	mux.HandleFunc("/replay", MetricsMiddleware(s.strokeHandler.HandleReplay, "replay"))
	mux.HandleFunc("/render", MetricsMiddleware(s.strokeHandler.HandleRender, "render"))
	mux.HandleFunc("/ws", s.sessionHandler.HandleSession)
}

type strokeRequest struct {
	Points []model.Point `json:"points"`
}

type replayRequest struct {
	Events []model.PointerEvent `json:"events"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// decodeBody reads one JSON document of at most limit bytes.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", ErrTooManyPoints, tooLarge.Limit)
		}
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("trailing data after JSON body")
	}
	return nil
}

// requestLocale picks the feedback language: ?locale, then Accept-Language,
// then the service default.
func requestLocale(r *http.Request, fallback scoring.Locale) scoring.Locale {
	if q := strings.TrimSpace(r.URL.Query().Get("locale")); q != "" {
		return scoring.ParseLocale(q)
	}
	if h := strings.TrimSpace(r.Header.Get("Accept-Language")); h != "" {
		return scoring.ParseLocale(h)
	}
	return fallback
}

// statusFor maps service errors to HTTP status codes and error codes.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, ErrTooManyPoints), errors.Is(err, service.ErrTooManyPoints):
		return http.StatusRequestEntityTooLarge, "too_many_points"
	case errors.Is(err, ErrInvalidEvent), errors.Is(err, service.ErrInvalidEvent):
		return http.StatusBadRequest, "invalid_event"
	case errors.Is(err, ErrBadRequest),
		errors.Is(err, service.ErrEmptyStroke),
		errors.Is(err, service.ErrInvalidPoint),
		errors.Is(err, render.ErrFormat):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, ErrUnavailable), errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "cancelled"
	default:
		return http.StatusInternalServerError, "internal"
	}
}
