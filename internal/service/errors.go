package service

import "errors"

// Sentinel errors handlers translate into HTTP statuses.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
)
