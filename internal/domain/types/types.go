// Package types contains the wire shapes shared by the HTTP API, the live
// session socket and the CLI.
package types

import (
	"github.com/okian/enso/internal/domain/model"
	"github.com/okian/enso/internal/domain/scoring"
)

// Circle is the fitted circle drawn over a scored stroke.
type Circle struct {
	Center model.Point `json:"center" yaml:"center"`
	Radius float64     `json:"radius" yaml:"radius"`
}

// Attempt is one graded stroke as reported to clients.
type Attempt struct {
	AttemptID string  `json:"attempt_id,omitempty" yaml:"attempt_id,omitempty"`
	Outcome   string  `json:"outcome" yaml:"outcome"`
	Points    int     `json:"points" yaml:"points"`
	Score     int     `json:"score" yaml:"score"`
	Feedback  string  `json:"feedback" yaml:"feedback"`
	Message   string  `json:"message" yaml:"message"`
	Fitted    bool    `json:"fitted" yaml:"fitted"`
	Circle    *Circle `json:"circle,omitempty" yaml:"circle,omitempty"`
}

// FromResult builds an Attempt from a scorer result. The circle is omitted
// when no fit was produced.
func FromResult(id string, res scoring.Result, locale scoring.Locale) Attempt {
	a := Attempt{
		AttemptID: id,
		Outcome:   "scored",
		Points:    res.Points,
		Score:     res.Score,
		Feedback:  res.Feedback.String(),
		Message:   res.Feedback.Message(locale),
		Fitted:    res.Fitted,
	}
	if res.Fitted {
		a.Circle = &Circle{Center: res.Center, Radius: res.Radius}
	}
	return a
}

// Localize rewrites the message in locale l. Unscored attempts are left alone.
func (a *Attempt) Localize(l scoring.Locale) {
	if a.Feedback == "" {
		return
	}
	f, err := scoring.ParseFeedback(a.Feedback)
	if err != nil {
		return
	}
	a.Message = f.Message(l)
}

// Unscored builds an Attempt for an outcome that produced no result.
func Unscored(outcome string, points int) Attempt {
	return Attempt{Outcome: outcome, Points: points}
}

// SessionReply answers one pointer event on a live session.
type SessionReply struct {
	State   string         `json:"state"`
	Outcome string         `json:"outcome"`
	Points  int            `json:"points"`
	Segment *model.Segment `json:"segment,omitempty"`
	Attempt *Attempt       `json:"attempt,omitempty"`
	Error   string         `json:"error,omitempty"`
}
