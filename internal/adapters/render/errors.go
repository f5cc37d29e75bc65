package render

import "errors"

// Sentinel errors.
var (
	ErrRender = errors.New("render failed")
	ErrFormat = errors.New("invalid image format")
)
