package config

import "errors"

var (
	// ErrInvalidConfig marks a value outside its allowed range.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file, env or decode failure while layering sources.
	ErrLoadConfig = errors.New("load config failed")
)
