package repository

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrInvalidDataset = errors.New("invalid dataset")
	ErrMissingPath    = errors.New("dataset path not configured")
)
