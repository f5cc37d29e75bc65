// Package capture turns a pointer-event stream into sealed strokes and hands
// them to a scorer.
//
// A Capture is owned by a single logical thread (one event handler, one
// websocket connection). It performs no locking of its own.
package capture

import (
	"context"
	"time"

	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
	"github.com/okian/enso/pkg/logger"
)

// MinCapturePoints is the shortest stroke treated as a deliberate attempt.
// Anything shorter is an accidental tap and is dropped without scoring.
const MinCapturePoints = 10

// State is the lifecycle position of the capture machine.
type State int

// Capture states.
const (
	Idle State = iota
	Drawing
	// Finished is transient: it is held only while the sealed stroke is
	// scored and rendered, then the machine returns to Idle.
	Finished
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}

// OutcomeKind says what an input event did to the machine.
type OutcomeKind int

// Outcome kinds.
const (
	Ignored OutcomeKind = iota
	Started
	Extended
	Discarded
	Scored
	Cleared
)

func (k OutcomeKind) String() string {
	switch k {
	case Ignored:
		return "ignored"
	case Started:
		return "started"
	case Extended:
		return "extended"
	case Discarded:
		return "discarded"
	case Scored:
		return "scored"
	case Cleared:
		return "cleared"
	default:
		return "unknown"
	}
}

// Outcome reports the effect of one event. Result is set only when Kind is Scored.
type Outcome struct {
	Kind   OutcomeKind
	Points int
	Result scoring.Result
}

// Renderer is the drawing-surface collaborator. Every call is best effort:
// a returned error is logged and never affects capture or scoring.
type Renderer interface {
	Clear() error
	DrawSegment(seg model.Segment) error
	DrawResult(res scoring.Result) error
}

// Observer receives lifecycle notifications, e.g. for metrics.
type Observer interface {
	StrokeStarted()
	StrokeDiscarded(points int)
	StrokeScored(res scoring.Result, elapsed time.Duration)
	Reset()
}

// Capture is the stroke capture state machine.
type Capture struct {
	state     State
	stroke    *model.Stroke
	segment   model.Segment
	hasSeg    bool
	result    scoring.Result
	hasResult bool

	minPoints int
	scorer    scoring.Scorer
	renderer  Renderer
	observer  Observer
	logger    logger.Logger
}

// Option applies a configuration option to the Capture.
type Option func(*Capture)

// WithMinPoints sets the accidental-tap threshold.
func WithMinPoints(n int) Option {
	return func(c *Capture) {
		if n > 0 {
			c.minPoints = n
		}
	}
}

// WithScorer sets the scorer invoked on sealed strokes.
func WithScorer(s scoring.Scorer) Option {
	return func(c *Capture) {
		if s != nil {
			c.scorer = s
		}
	}
}

// WithRenderer attaches a drawing surface.
func WithRenderer(r Renderer) Option {
	return func(c *Capture) {
		c.renderer = r
	}
}

// WithObserver attaches a lifecycle observer.
func WithObserver(o Observer) Option {
	return func(c *Capture) {
		c.observer = o
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Capture) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates an idle capture machine.
func New(opts ...Option) *Capture {
	c := &Capture{
		state:     Idle,
		minPoints: MinCapturePoints,
		scorer:    scoring.NewCircleScorer(),
		logger:    logger.NewNop(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// State returns the current lifecycle state.
func (c *Capture) State() State { return c.state }

// Len returns the number of samples in the active or last sealed stroke.
func (c *Capture) Len() int { return c.stroke.Len() }

// Stroke returns a snapshot of the active or last sealed stroke.
func (c *Capture) Stroke() []model.Point { return c.stroke.Points() }

// CurrentSegment returns the most recently drawn segment.
func (c *Capture) CurrentSegment() (model.Segment, bool) {
	return c.segment, c.hasSeg
}

// LatestResult returns the result of the last scored stroke, if any.
func (c *Capture) LatestResult() (scoring.Result, bool) {
	return c.result, c.hasResult
}

// StrokeStart begins a new stroke at p. Any stroke in progress is abandoned.
func (c *Capture) StrokeStart(p model.Point) Outcome {
	ctx := context.Background()
	if c.state == Drawing {
		c.logger.Debug(ctx, "abandoning stroke in progress", logger.Int("points", c.stroke.Len()))
	}

	c.clearResult()
	c.stroke = model.NewStroke(p)
	c.state = Drawing
	c.paint(ctx, "clear", func(r Renderer) error { return r.Clear() })

	if c.observer != nil {
		c.observer.StrokeStarted()
	}
	return Outcome{Kind: Started, Points: 1}
}

// StrokeExtend appends p to the active stroke. Outside Drawing it is a no-op.
func (c *Capture) StrokeExtend(p model.Point) Outcome {
	if c.state != Drawing {
		return Outcome{Kind: Ignored, Points: c.stroke.Len()}
	}

	prev, _ := c.stroke.Last()
	c.stroke.Append(p)
	c.segment = model.Segment{From: prev, To: p}
	c.hasSeg = true
	seg := c.segment
	c.paint(context.Background(), "segment", func(r Renderer) error { return r.DrawSegment(seg) })

	return Outcome{Kind: Extended, Points: c.stroke.Len()}
}

// StrokeEnd finishes the active stroke. Strokes below the capture threshold
// are dropped; longer ones are sealed, scored and rendered.
func (c *Capture) StrokeEnd() Outcome {
	ctx := context.Background()
	if c.state != Drawing {
		return Outcome{Kind: Ignored, Points: c.stroke.Len()}
	}

	n := c.stroke.Len()
	if n < c.minPoints {
		c.state = Idle
		c.logger.Debug(ctx, "stroke too short to score", logger.Int("points", n), logger.Int("min", c.minPoints))
		if c.observer != nil {
			c.observer.StrokeDiscarded(n)
		}
		return Outcome{Kind: Discarded, Points: n}
	}

	points := c.stroke.Seal()
	c.state = Finished

	start := time.Now()
	res := c.scorer.Score(points)
	elapsed := time.Since(start)

	c.result = res
	c.hasResult = true
	c.paint(ctx, "result", func(r Renderer) error { return r.DrawResult(res) })

	if c.observer != nil {
		c.observer.StrokeScored(res, elapsed)
	}
	c.logger.Debug(ctx, "stroke scored",
		logger.Int("points", n),
		logger.Int("score", res.Score),
		logger.String("feedback", res.Feedback.String()),
	)

	c.state = Idle
	return Outcome{Kind: Scored, Points: n, Result: res}
}

// Reset discards every trace of the previous stroke and blanks the surface.
func (c *Capture) Reset() Outcome {
	c.stroke = nil
	c.clearResult()
	c.state = Idle
	c.paint(context.Background(), "clear", func(r Renderer) error { return r.Clear() })

	if c.observer != nil {
		c.observer.Reset()
	}
	return Outcome{Kind: Cleared}
}

// Apply dispatches a pointer event to the matching transition.
func (c *Capture) Apply(ev model.PointerEvent) Outcome {
	switch ev.Type {
	case model.PointerDown:
		return c.StrokeStart(ev.Point())
	case model.PointerMove:
		return c.StrokeExtend(ev.Point())
	case model.PointerUp, model.PointerLeave:
		return c.StrokeEnd()
	case model.PointerReset:
		return c.Reset()
	default:
		return Outcome{Kind: Ignored, Points: c.stroke.Len()}
	}
}

func (c *Capture) clearResult() {
	c.result = scoring.Result{}
	c.hasResult = false
	c.segment = model.Segment{}
	c.hasSeg = false
}

// paint runs a renderer call, swallowing failures and panics.
func (c *Capture) paint(ctx context.Context, op string, fn func(Renderer) error) {
	if c.renderer == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			c.logger.Warn(ctx, "renderer panicked", logger.String("op", op), logger.Any("panic", rec))
		}
	}()
	if err := fn(c.renderer); err != nil {
		c.logger.Warn(ctx, "render skipped", logger.String("op", op), logger.Error(err))
	}
}
