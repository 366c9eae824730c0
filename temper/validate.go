// Package temper - validation shared by the solver entry points.
//
// Small, side-effect free checks in the fail-fast style: a malformed
// configuration is rejected before any evaluator call, with sentinel
// errors only.
package temper

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/logits"
)

// validateAll verifies Options plus the (logits, labels) pair and returns
// (N, C) on success.
//
// Contract:
//   - l non-empty, labels aligned by index, values in [0, C) — enforced by
//     logits.Validate, whose sentinels are forwarded as-is.
//   - Options internally consistent per validateOptions.
//
// Complexity: O(N).
func validateAll(l *mat.Dense, labels []int, o Options) (n, c int, err error) {
	if err = validateOptions(o); err != nil {
		return 0, 0, err
	}

	return logits.Validate(l, labels)
}

// validateOptions checks internal consistency of Options without touching
// data.
//
// Complexity: O(1).
func validateOptions(o Options) error {
	if o.Bins < 1 {
		return ErrBadBinCount
	}
	if o.MaxIters < 1 {
		return ErrBadIterCap
	}
	if o.InitTemp <= 0 {
		return ErrBadInitTemp
	}
	if o.GridMin <= 0 || o.GridMax < o.GridMin || o.GridStep <= 0 {
		return ErrBadGrid
	}
	if o.Epsilon < 0 {
		return ErrBadEpsilon
	}
	if o.MinBinSamples < 0 {
		return ErrBadSparseThreshold
	}

	switch o.Scope {
	case ScopeGlobal, ScopePerClass, ScopePerBin:
		// ok
	default:
		return ErrUnsupportedScope
	}

	switch o.Objective {
	case ObjectiveEqualWidth, ObjectiveAdaptive:
		// ok
	default:
		return ErrUnsupportedObjective
	}

	return nil
}
