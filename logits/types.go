package logits

import "errors"

// Sentinel errors returned by the logits package.
var (
	// ErrEmptyInput indicates a logit matrix or label vector with no samples.
	ErrEmptyInput = errors.New("logits: input must be non-empty")

	// ErrShapeMismatch indicates that matrix/vector dimensions disagree
	// (labels vs rows, temperature vector vs rows or columns).
	ErrShapeMismatch = errors.New("logits: dimension mismatch")

	// ErrBadLabel indicates a label outside [0, C).
	ErrBadLabel = errors.New("logits: label out of class range")

	// ErrBadTemperature indicates a zero or negative temperature divisor.
	ErrBadTemperature = errors.New("logits: temperature must be positive")
)
