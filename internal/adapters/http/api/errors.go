package api

import "errors"

// Sentinel kinds for API errors.
var (
	ErrBadRequest  = errors.New("bad request")
	ErrUnavailable = errors.New("catalog unavailable")
	ErrCache       = errors.New("response cache init failed")
)
