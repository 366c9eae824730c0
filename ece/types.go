package ece

import "errors"

// Sentinel errors returned by the ece package.
var (
	// ErrLengthMismatch indicates confidences/correctness/labels of
	// different lengths.
	ErrLengthMismatch = errors.New("ece: input lengths disagree")

	// ErrEmptyInput indicates zero samples.
	ErrEmptyInput = errors.New("ece: input must be non-empty")

	// ErrBadBinCount indicates a bin count below 1.
	ErrBadBinCount = errors.New("ece: bin count must be at least 1")
)

// Accuracy clamp bounds for the bin-local search objective. See the package
// documentation for which evaluators apply them.
const (
	AccClampLo = 0.01
	AccClampHi = 0.99
)

// BinStat is one bin's diagnostic record from Breakdown: its interval,
// population, empirical accuracy, mean confidence and weighted error
// contribution.
type BinStat struct {
	Bin            int     // bin index
	Lower, Upper   float64 // interval (Lower, Upper]
	Samples        int     // member count
	Accuracy       float64 // fraction correct within the bin
	MeanConfidence float64 // mean confidence within the bin
	Error          float64 // (Samples/N)·|Accuracy − MeanConfidence|
}
