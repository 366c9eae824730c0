package temper

import "github.com/kalibr/tempscale/ece"

// Result is the outcome of one temperature solve.
//
// Exactly one of the parameter shapes is populated, matching Scope:
//
//	ScopeGlobal   — Temperature (product of per-iteration scalars).
//	ScopePerClass — ClassTemps, one divisor per class column.
//	ScopePerBin   — SampleTemps (cumulative per-sample divisors through
//	                the best iteration), BinTemps (the best iteration's
//	                per-bin values) and Boundaries (the edges that
//	                produced them).
//
// Trace holds the calibration error per completed step: Trace[0] is the
// pre-search baseline, Trace[i+1] the error after iteration i. BestIter
// indexes iterations (0-based), so its trace entry is Trace[BestIter+1];
// it is tracked separately from the last iteration because adaptive
// configurations may regress after their best point.
//
// Converged reports whether the stopping criterion was met before the
// iteration cap; a false value is the NonConvergence signal — the solver
// still returns its best-known parameterization.
type Result struct {
	Scope Scope

	Temperature float64   // global scalar (also the warm-start seed value)
	ClassTemps  []float64 // per-class divisors
	SampleTemps []float64 // per-sample divisors (per-bin scope)
	BinTemps    []float64 // per-bin divisors at the best iteration
	Boundaries  []float64 // bin edges at the best iteration

	Trace     []float64
	BestIter  int
	Converged bool

	// Breakdown is the per-bin diagnostic record of the best iteration:
	// error contribution, population, accuracy and mean confidence per bin.
	Breakdown []ece.BinStat
}
