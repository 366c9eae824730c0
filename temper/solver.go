// Package temper - unified dispatcher for temperature solves.
//
// This file provides the canonical entry point:
//
//   - Solve: validate shapes and configuration, compute the warm-start
//     scalar, then route to the scope-specific phase (global / per-class /
//     per-bin). Each phase threads an explicit state record through its
//     iterations and returns an immutable Result.
package temper

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/logits"
)

// Solve searches for the temperature parameterization minimizing the
// configured calibration-error objective on (l, labels).
//
// Contracts:
//   - l is N×C raw logits, labels length N with values in [0, C).
//   - Malformed configuration fails fast with a sentinel before any
//     evaluator call; malformed inputs surface logits sentinels.
//   - Reaching the iteration cap without the plateau criterion is not an
//     error: the Result carries Converged=false and the best-known
//     parameterization (see Result.BestIter).
//
// Complexity per outer iteration: O(G·N·C) for G grid candidates in the
// global scope, O(P·G·N·C) for P class passes, O(G·N·C + N log N) for the
// per-bin scope.
func Solve(l *mat.Dense, labels []int, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if _, _, err := validateAll(l, labels, o); err != nil {
		return nil, err
	}

	// Stage 1 - warm start: the global grid optimum seeds every scope
	// unless the caller pinned the seed explicitly.
	seed := o.InitTemp
	if o.WarmStart {
		var err error
		if seed, _, err = searchScalar(l, labels, o); err != nil {
			return nil, err
		}
	}

	// Stage 2 - route by scope.
	switch o.Scope {
	case ScopeGlobal:
		return solveGlobal(l, labels, o)
	case ScopePerClass:
		return solveClass(l, labels, o, seed)
	case ScopePerBin:
		return solveBins(l, labels, o, seed)
	default:
		return nil, ErrUnsupportedScope
	}
}

// solveGlobal iterates the scalar grid search cumulatively: each round
// searches on the already-scaled logits and multiplies its winner into the
// running product, until the trace plateaus or the cap is reached.
func solveGlobal(l *mat.Dense, labels []int, o Options) (*Result, error) {
	base, err := o.objective(l, labels)
	if err != nil {
		return nil, err
	}
	trace := []float64{base}

	cur := mat.DenseCopyOf(l)
	product := 1.0
	converged := false

	for iter := 0; iter < o.MaxIters; iter++ {
		t, iterErr, serr := searchScalar(cur, labels, o)
		if serr != nil {
			return nil, serr
		}
		if cur, serr = logits.ScaleScalar(cur, t); serr != nil {
			return nil, serr
		}
		product *= t

		plateau := math.Abs(trace[len(trace)-1]-iterErr) <= o.Epsilon
		trace = append(trace, iterErr)
		if plateau {
			converged = true
			break
		}
	}

	res := &Result{
		Scope:       ScopeGlobal,
		Temperature: product,
		Trace:       trace,
		BestIter:    argminIter(trace),
		Converged:   converged,
	}
	if res.Breakdown, err = finalBreakdown(cur, labels, o.Bins); err != nil {
		return nil, err
	}

	return res, nil
}
