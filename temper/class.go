// Package temper - per-class temperature refinement.
//
// One divisor per output class, refined by Gauss–Seidel passes: each class
// column is swept over the grid while the other classes hold their latest
// values, and passes repeat until the vector reaches a fixed point or the
// iteration cap. Acceptance is global-best across the whole phase — a
// candidate must beat the lowest objective seen in any class, any pass.
package temper

import (
	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/binning"
	"github.com/kalibr/tempscale/ece"
	"github.com/kalibr/tempscale/logits"
)

// solveClass runs the per-class phase seeded with the warm-start scalar.
func solveClass(l *mat.Dense, labels []int, o Options, seed float64) (*Result, error) {
	_, c, err := logits.Validate(l, labels)
	if err != nil {
		return nil, err
	}

	cur := make([]float64, c)
	for j := range cur {
		cur[j] = seed
	}

	// Baseline: objective under the seed vector opens the trace.
	scaled, err := logits.ScaleColumns(l, cur)
	if err != nil {
		return nil, err
	}
	base, err := o.objective(scaled, labels)
	if err != nil {
		return nil, err
	}
	trace := []float64{base}

	// Acceptance state persists across classes and passes. The error side
	// starts unbounded so the first admissible candidate always lands; the
	// guard side starts from the better of the unscaled and seed-scaled
	// accuracies.
	prior := candidate{err: inf()}
	if o.AccuracyGuard {
		if prior.acc, err = scaledAccuracy(l, labels); err != nil {
			return nil, err
		}
		seedAcc, aerr := scaledAccuracy(scaled, labels)
		if aerr != nil {
			return nil, aerr
		}
		if seedAcc >= prior.acc {
			prior.acc = seedAcc
		}
	}

	cands := o.grid()
	prev := append([]float64(nil), cur...)
	converged := false

	for iter := 0; iter < o.MaxIters; iter++ {
		for j := 0; j < c; j++ {
			evals, serr := o.sweep(cands, func(t float64) (candidate, error) {
				cand := append([]float64(nil), cur...)
				cand[j] = t
				sc, cerr := logits.ScaleColumns(l, cand)
				if cerr != nil {
					return candidate{}, cerr
				}
				var cv candidate
				if cv.err, cerr = o.objective(sc, labels); cerr != nil {
					return candidate{}, cerr
				}
				if o.AccuracyGuard {
					if cv.acc, cerr = scaledAccuracy(sc, labels); cerr != nil {
						return candidate{}, cerr
					}
				}

				return cv, nil
			})
			if serr != nil {
				return nil, serr
			}
			if i := pick(cands, evals, prior, o.AccuracyGuard, 0); i >= 0 {
				cur[j] = cands[i]
				prior.err = evals[i].err
				if o.AccuracyGuard {
					prior.acc = evals[i].acc
				}
			}
		}

		if scaled, err = logits.ScaleColumns(l, cur); err != nil {
			return nil, err
		}
		var passErr float64
		if passErr, err = o.objective(scaled, labels); err != nil {
			return nil, err
		}
		trace = append(trace, passErr)

		// Fixed point: the vector is bit-identical to the previous pass.
		if equalVec(cur, prev) {
			converged = true
			break
		}
		copy(prev, cur)
	}

	res := &Result{
		Scope:       ScopePerClass,
		Temperature: seed,
		ClassTemps:  cur,
		Trace:       trace,
		BestIter:    argminIter(trace),
		Converged:   converged,
	}
	if res.Breakdown, err = finalBreakdown(scaled, labels, o.Bins); err != nil {
		return nil, err
	}

	return res, nil
}

// scaledAccuracy is argmax accuracy of a (possibly scaled) logit matrix.
func scaledAccuracy(l *mat.Dense, labels []int) (float64, error) {
	_, pred := logits.Confidences(l)

	return logits.Accuracy(pred, labels)
}

// finalBreakdown produces the equal-width per-bin diagnostic of the final
// scaled logits.
func finalBreakdown(l *mat.Dense, labels []int, bins int) ([]ece.BinStat, error) {
	conf, pred := logits.Confidences(l)
	correct, err := logits.Correctness(pred, labels)
	if err != nil {
		return nil, err
	}
	edges, err := binning.EqualWidth(bins)
	if err != nil {
		return nil, err
	}
	_, stats, err := ece.Breakdown(conf, correct, edges)

	return stats, err
}

// equalVec reports exact element-wise equality.
func equalVec(a, b []float64) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// argminIter returns the 0-based iteration index with the lowest trace
// error (Trace[0] is the pre-search baseline, so iteration i maps to
// Trace[i+1]). Ties resolve to the earliest iteration.
func argminIter(trace []float64) int {
	best := 0
	for i := 2; i < len(trace); i++ {
		if trace[i] < trace[best+1] {
			best = i - 1
		}
	}

	return best
}
