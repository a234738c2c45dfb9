package liveplot

import "errors"

var (
	// ErrSeriesNotFound is returned by the strict push/lookup paths when
	// the named series was never added.
	ErrSeriesNotFound = errors.New("liveplot: series not found")

	// ErrInvalidConfig wraps all construction-time configuration errors.
	ErrInvalidConfig = errors.New("liveplot: invalid config")
)
