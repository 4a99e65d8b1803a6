package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")
	// ErrInvalidDocument is returned when the posted page cannot be loaded
	ErrInvalidDocument = errors.New("invalid document")
	// ErrScanNotFound is returned when no scan is stored for a URL
	ErrScanNotFound = errors.New("no scan found for url")
	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
