package calculator

import "errors"

var (
	// ErrInsufficientData is returned when a series is shorter than an indicator window.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrInvalidInput is returned for malformed bars or parameters.
	ErrInvalidInput = errors.New("invalid input")
)
