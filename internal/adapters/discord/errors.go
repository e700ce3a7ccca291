package discord

import "errors"

// Sentinel kinds for gateway errors.
var (
	ErrNoToken = errors.New("discord token is empty")
	ErrOpen    = errors.New("discord session open failed")
	ErrNotOpen = errors.New("discord session not open")
	ErrSend    = errors.New("discord send failed")
)
