// Package temper implements bounded grid search for temperature
// parameters that recalibrate classifier logits.
//
// A temperature is a positive divisor applied to logits before softmax:
// values above one soften over-confident probabilities, values below one
// sharpen under-confident ones, and any row-uniform divisor leaves the
// argmax prediction untouched. The engine minimizes a calibration-error
// objective from package ece over a fixed ascending ladder of candidate
// temperatures, at one of three scopes:
//
//   - ScopeGlobal — a single scalar for the whole matrix, applied
//     cumulatively across iterations.
//   - ScopePerClass — one divisor per class column, refined by
//     Gauss–Seidel coordinate sweeps with a phase-global acceptance state.
//   - ScopePerBin — one divisor per confidence bin, with adaptive
//     equal-population binning recomputed each iteration, tied-mass
//     spreading, and neighbor smoothing for sparse bins.
//
// A solve proceeds in stages: configuration and input validation, an
// optional warm start (the global grid winner seeds the finer scopes),
// the scope-specific search, and convergence bookkeeping. Candidate
// acceptance is strict improvement scanned in ascending grid order, so
// ties always resolve to the lower temperature; an optional accuracy
// guard additionally rejects candidates whose argmax accuracy falls below
// the best observed.
//
// Results are immutable records: the final parameterization per scope,
// the per-iteration error trace (index 0 is the pre-search baseline), the
// best iteration, and a per-bin diagnostic breakdown. Hitting the
// iteration cap is reported as Converged=false, never as an error.
//
// Usage:
//
//	res, err := temper.Solve(logitMatrix, labels,
//	    temper.WithScope(temper.ScopePerClass),
//	    temper.WithBins(15),
//	)
//	if err != nil { ... }
//	calibrated, _ := logits.ScaleColumns(logitMatrix, res.ClassTemps)
//
// Errors are sentinels declared in types.go; input-shape violations are
// forwarded from package logits.
//
// Complexity: one global iteration costs O(G·N·C) for G grid candidates;
// per-class multiplies by C sweeps per pass; per-bin adds O(N log N) per
// iteration for binning.
package temper
