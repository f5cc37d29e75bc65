package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/okian/enso/internal/domain/capture"
	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
	"github.com/okian/enso/internal/domain/types"
	"github.com/okian/enso/pkg/logger"
	"github.com/okian/enso/pkg/metrics"
)

const (
	// maxEventBytes bounds a single pointer event frame.
	maxEventBytes = 4 << 10
	// sessionIdleTimeout closes sessions that stop sending events.
	sessionIdleTimeout = 5 * time.Minute
)

// SessionHandler runs live drawing sessions over a websocket. Each connection
// owns one capture machine; nothing outlives the connection.
type SessionHandler struct {
	deps           SessionDependencies
	locale         scoring.Locale
	originPatterns []string
	logger         logger.Logger
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(deps SessionDependencies, locale scoring.Locale, originPatterns []string, l logger.Logger) *SessionHandler {
	if l == nil {
		l = logger.NewNop()
	}
	return &SessionHandler{deps: deps, locale: locale, originPatterns: originPatterns, logger: l}
}

// HandleSession handles GET /ws. The client sends pointer events as JSON and
// receives one SessionReply per event.
func (h *SessionHandler) HandleSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.session"
	locale := requestLocale(r, h.locale)

	c, err := h.deps.NewSession(r.Context(), nil)
	if err != nil {
		status, code := statusFor(err)
		writeError(w, status, code, WrapKind(op, ErrUnavailable, err))
		return
	}

	// Live sessions outlast the server's per-request timeouts.
	rc := http.NewResponseController(w)
	_ = rc.SetReadDeadline(time.Time{})
	_ = rc.SetWriteDeadline(time.Time{})

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.originPatterns})
	if err != nil {
		h.logger.Debug(r.Context(), "websocket handshake failed", logger.Error(err))
		return
	}
	defer func() { _ = conn.Close(websocket.StatusInternalError, "session ended") }()
	conn.SetReadLimit(maxEventBytes)

	release := h.deps.TrackSession()
	defer release()

	ctx := r.Context()
	maxPoints := h.deps.MaxStrokePoints()
	for {
		var ev model.PointerEvent
		readCtx, cancel := context.WithTimeout(ctx, sessionIdleTimeout)
		err := wsjson.Read(readCtx, conn, &ev)
		cancel()
		if err != nil {
			h.closed(ctx, err)
			return
		}
		metrics.RecordSessionEvent(string(ev.Type))

		if err := ev.Validate(); err != nil {
			reply := types.SessionReply{
				State:   c.State().String(),
				Outcome: capture.Ignored.String(),
				Points:  c.Len(),
				Error:   WrapKind(op, ErrInvalidEvent, err).Error(),
			}
			if err := wsjson.Write(ctx, conn, reply); err != nil {
				return
			}
			continue
		}

		if ev.Type == model.PointerMove && c.State() == capture.Drawing && c.Len() >= maxPoints {
			h.logger.Debug(ctx, "session stroke too long", logger.Int("points", c.Len()))
			_ = conn.Close(websocket.StatusPolicyViolation, "stroke exceeds point limit")
			return
		}

		out := c.Apply(ev)
		if err := wsjson.Write(ctx, conn, sessionReply(c, out, locale)); err != nil {
			h.logger.Debug(ctx, "session write failed", logger.Error(err))
			return
		}
	}
}

func sessionReply(c *capture.Capture, out capture.Outcome, locale scoring.Locale) types.SessionReply {
	reply := types.SessionReply{
		State:   c.State().String(),
		Outcome: out.Kind.String(),
		Points:  out.Points,
	}
	switch out.Kind {
	case capture.Extended:
		if seg, ok := c.CurrentSegment(); ok {
			reply.Segment = &seg
		}
	case capture.Scored:
		a := types.FromResult(uuid.NewString(), out.Result, locale)
		reply.Attempt = &a
	}
	return reply
}

func (h *SessionHandler) closed(ctx context.Context, err error) {
	switch websocket.CloseStatus(err) {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return
	}
	if errors.Is(err, context.Canceled) {
		return
	}
	h.logger.Debug(ctx, "session read failed", logger.Error(err))
}
