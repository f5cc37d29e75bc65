// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/okian/enso/internal/adapters/render"
	"github.com/okian/enso/internal/domain/capture"
	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
	"github.com/okian/enso/internal/domain/types"
	"github.com/okian/enso/pkg/logger"
	"github.com/okian/enso/pkg/metrics"
)

const defaultMaxStrokePoints = 10_000

// Service scores strokes and runs capture sessions.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer scoring.Scorer

	// Configuration
	scoringOpts      []scoring.Option
	customScorer     scoring.Scorer
	minCapturePoints int
	maxStrokePoints  int
	locale           scoring.Locale
	canvasWidth      int
	canvasHeight     int

	// State
	started   bool
	startedAt time.Time

	attempts  atomic.Int64
	scored    atomic.Int64
	discarded atomic.Int64
	resets    atomic.Int64
	sessions  atomic.Int64
	best      atomic.Int64

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithScorer replaces the circle scorer built at Start.
func WithScorer(s scoring.Scorer) Option {
	return func(svc *Service) {
		if s != nil {
			svc.customScorer = s
		}
	}
}

// WithScoringOptions configures the circle scorer built at Start.
func WithScoringOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, opts...)
	}
}

// WithMinCapturePoints sets the accidental-tap threshold of capture sessions.
func WithMinCapturePoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minCapturePoints = n
		}
	}
}

// WithMaxStrokePoints caps the samples accepted per stroke or event script.
func WithMaxStrokePoints(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxStrokePoints = n
		}
	}
}

// WithLocale sets the language of feedback messages.
func WithLocale(l scoring.Locale) Option {
	return func(s *Service) {
		if l != "" {
			s.locale = l
		}
	}
}

// WithCanvasSize sets the size of rendered images.
func WithCanvasSize(w, h int) Option {
	return func(s *Service) {
		if w > 0 && h > 0 {
			s.canvasWidth = w
			s.canvasHeight = h
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		minCapturePoints: capture.MinCapturePoints,
		maxStrokePoints:  defaultMaxStrokePoints,
		locale:           scoring.LocaleEnglish,
		canvasWidth:      render.DefaultWidth,
		canvasHeight:     render.DefaultHeight,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the scorer and marks the service ready.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.GetOrNop()
	}

	if s.customScorer != nil {
		s.scorer = s.customScorer
	} else {
		s.scorer = scoring.NewCircleScorer(s.scoringOpts...)
	}

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "scoring service started",
		logger.Int("minCapturePoints", s.minCapturePoints),
		logger.Int("maxStrokePoints", s.maxStrokePoints),
		logger.String("locale", string(s.locale)),
	)

	return nil
}

// Stop marks the service stopped. Live sessions keep their own state.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.started = false
	s.logger.Info(context.Background(), "scoring service stopped",
		logger.Int("attempts", int(s.attempts.Load())),
		logger.Int("scored", int(s.scored.Load())),
	)
}

// Locale returns the default feedback language.
func (s *Service) Locale() scoring.Locale { return s.locale }

// MaxStrokePoints returns the per-stroke sample cap.
func (s *Service) MaxStrokePoints() int { return s.maxStrokePoints }

// CanvasSize returns the size of rendered images.
func (s *Service) CanvasSize() (int, int) { return s.canvasWidth, s.canvasHeight }

func (s *Service) currentScorer() (scoring.Scorer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return nil, ErrNotStarted
	}
	return s.scorer, nil
}

// NewSession returns a capture machine wired to the service scorer, metrics
// and logger. r may be nil for a headless session.
func (s *Service) NewSession(ctx context.Context, r capture.Renderer) (*capture.Capture, error) {
	sc, err := s.currentScorer()
	if err != nil {
		return nil, err
	}

	opts := []capture.Option{
		capture.WithScorer(sc),
		capture.WithMinPoints(s.minCapturePoints),
		capture.WithObserver(&sessionObserver{svc: s, ctx: ctx}),
		capture.WithLogger(s.logger.Named("capture")),
	}
	if r != nil {
		opts = append(opts, capture.WithRenderer(r))
	}
	return capture.New(opts...), nil
}

// TrackSession counts a live session until the returned func is called.
func (s *Service) TrackSession() func() {
	s.sessions.Add(1)
	metrics.SessionOpened()
	var once sync.Once
	return func() {
		once.Do(func() {
			s.sessions.Add(-1)
			metrics.SessionClosed()
		})
	}
}

// ScoreStroke grades a finished stroke directly, without the capture
// machine's tap filter. The scorer's own gate still applies.
func (s *Service) ScoreStroke(ctx context.Context, points []model.Point) (types.Attempt, error) {
	sc, err := s.currentScorer()
	if err != nil {
		return types.Attempt{}, err
	}
	if err := s.validatePoints(points); err != nil {
		return types.Attempt{}, err
	}

	s.attempts.Add(1)
	start := time.Now()
	res := sc.Score(points)
	s.recordScore(ctx, res, time.Since(start))

	return types.FromResult(uuid.NewString(), res, s.locale), nil
}

// Replay runs a recorded pointer script through a fresh capture machine and
// returns the last outcome that changed its state. r may be nil.
func (s *Service) Replay(ctx context.Context, events []model.PointerEvent, r capture.Renderer) (types.Attempt, error) {
	if len(events) > s.maxStrokePoints {
		return types.Attempt{}, fmt.Errorf("%w: %d events, max %d", ErrTooManyPoints, len(events), s.maxStrokePoints)
	}
	for i, ev := range events {
		if err := ev.Validate(); err != nil {
			return types.Attempt{}, fmt.Errorf("%w: event %d: %w", ErrInvalidEvent, i, err)
		}
	}

	c, err := s.NewSession(ctx, r)
	if err != nil {
		return types.Attempt{}, err
	}

	last := capture.Outcome{Kind: capture.Ignored}
	for _, ev := range events {
		if err := ctx.Err(); err != nil {
			return types.Attempt{}, err
		}
		if out := c.Apply(ev); out.Kind != capture.Ignored {
			last = out
		}
	}

	if last.Kind == capture.Scored {
		return types.FromResult(uuid.NewString(), last.Result, s.locale), nil
	}
	return types.Unscored(last.Kind.String(), last.Points), nil
}

// Render scores a stroke and draws it with its fitted circle.
func (s *Service) Render(ctx context.Context, points []model.Point, format render.Format) ([]byte, types.Attempt, error) {
	sc, err := s.currentScorer()
	if err != nil {
		return nil, types.Attempt{}, err
	}
	if err := s.validatePoints(points); err != nil {
		return nil, types.Attempt{}, err
	}

	res := sc.Score(points)
	attempt := types.FromResult("", res, s.locale)

	start := time.Now()
	doc := render.SVG(points, res, render.SVGOptions{
		Width:  s.canvasWidth,
		Height: s.canvasHeight,
		Style:  render.DefaultStyle(),
	})

	switch format {
	case render.FormatSVG:
		metrics.RecordRenderLatency(float64(time.Since(start).Microseconds()) / 1000)
		return doc, attempt, nil
	case render.FormatPNG, "":
		img, err := render.RasterizeSVG(ctx, doc, s.canvasWidth, s.canvasHeight)
		if err != nil {
			metrics.RecordRenderError()
			s.logger.Warn(ctx, "render failed", logger.Error(err))
			return nil, types.Attempt{}, err
		}
		metrics.RecordRenderLatency(float64(time.Since(start).Microseconds()) / 1000)
		return img, attempt, nil
	default:
		return nil, types.Attempt{}, fmt.Errorf("%w: unknown format %q", render.ErrFormat, format)
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"locale":           string(s.locale),
		"minCapturePoints": s.minCapturePoints,
		"maxStrokePoints":  s.maxStrokePoints,
		"attempts":         s.attempts.Load(),
		"scored":           s.scored.Load(),
		"discarded":        s.discarded.Load(),
		"resets":           s.resets.Load(),
		"liveSessions":     s.sessions.Load(),
	}
	if s.scored.Load() > 0 {
		stats["bestScore"] = s.best.Load()
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	return stats
}

func (s *Service) validatePoints(points []model.Point) error {
	if len(points) == 0 {
		return ErrEmptyStroke
	}
	if len(points) > s.maxStrokePoints {
		return fmt.Errorf("%w: %d points, max %d", ErrTooManyPoints, len(points), s.maxStrokePoints)
	}
	for i, p := range points {
		if !p.Finite() {
			return fmt.Errorf("%w: point %d is not finite", ErrInvalidPoint, i)
		}
	}
	return nil
}

func (s *Service) recordScore(ctx context.Context, res scoring.Result, elapsed time.Duration) {
	s.scored.Add(1)
	for {
		cur := s.best.Load()
		if int64(res.Score) <= cur || s.best.CompareAndSwap(cur, int64(res.Score)) {
			break
		}
	}

	metrics.RecordStrokeScored(res.Feedback.String(), res.Score, res.Points)
	metrics.RecordScoringLatency(float64(elapsed.Microseconds()) / 1000)

	s.logger.Debug(ctx, "stroke scored",
		logger.Int("points", res.Points),
		logger.Int("score", res.Score),
		logger.String("feedback", res.Feedback.String()),
		logger.Bool("fitted", res.Fitted),
	)
}

// sessionObserver feeds capture lifecycle events into the service counters
// and the metrics registry.
type sessionObserver struct {
	svc *Service
	ctx context.Context
}

func (o *sessionObserver) StrokeStarted() {
	o.svc.attempts.Add(1)
	metrics.RecordStrokeStarted()
}

func (o *sessionObserver) StrokeDiscarded(points int) {
	o.svc.discarded.Add(1)
	metrics.RecordStrokeDiscarded()
	o.svc.logger.Debug(o.ctx, "stroke discarded", logger.Int("points", points))
}

func (o *sessionObserver) StrokeScored(res scoring.Result, elapsed time.Duration) {
	o.svc.recordScore(o.ctx, res, elapsed)
}

func (o *sessionObserver) Reset() {
	o.svc.resets.Add(1)
	metrics.RecordReset()
}
