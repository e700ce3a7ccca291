package service

import "errors"

// Sentinel error kinds for this package.
var (
	ErrNotStarted = errors.New("service not started")
	ErrNoStore    = errors.New("no dataset store configured")
)
