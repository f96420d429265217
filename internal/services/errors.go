package services

import "errors"

// Service-level sentinel errors mapped to API errors by the transport layer
var (
	// ErrDataNotLoaded indicates the master dataset has not been built yet
	ErrDataNotLoaded = errors.New("master dataset not loaded")
	// ErrInvalidDateRange indicates start is after end or dates are malformed
	ErrInvalidDateRange = errors.New("invalid date range")
)
