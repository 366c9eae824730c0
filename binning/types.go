package binning

import "errors"

// Sentinel errors returned by the binning package.
var (
	// ErrBadBinCount indicates a requested bin count below 1.
	ErrBadBinCount = errors.New("binning: bin count must be at least 1")

	// ErrNoSamples indicates an empty confidence vector where at least one
	// sample is required.
	ErrNoSamples = errors.New("binning: confidence vector must be non-empty")

	// ErrBadBoundaries indicates an edge slice that is not a monotonically
	// non-decreasing partition with at least two edges.
	ErrBadBoundaries = errors.New("binning: malformed bin boundaries")

	// ErrOutOfRange indicates a confidence value outside [0, 1].
	ErrOutOfRange = errors.New("binning: confidence outside [0,1]")
)
