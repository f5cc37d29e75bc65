package service

import "errors"

// Sentinel errors returned by the service. Callers match them with errors.Is.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrEmptyStroke   = errors.New("empty stroke")
	ErrTooManyPoints = errors.New("too many points")
	ErrInvalidPoint  = errors.New("invalid point")
	ErrInvalidEvent  = errors.New("invalid pointer event")
)
