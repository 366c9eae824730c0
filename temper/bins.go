// Package temper - per-bin temperature refinement.
//
// Each outer iteration re-derives equal-population bins from the current
// (already-scaled) confidence distribution, grid-searches one divisor per
// populated bin against the bin-local objective |accuracy − mean scaled
// confidence|, repairs sparse bins by neighbor smoothing, applies the
// resulting per-sample vector, and appends the full-distribution error to
// the convergence trace. Iterations stop at the plateau criterion or the
// cap; the best iteration is snapshotted because adaptive binning may
// regress after its best point.
package temper

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/binning"
	"github.com/kalibr/tempscale/ece"
	"github.com/kalibr/tempscale/logits"
)

// highAccCut is the per-bin accuracy above which a bin counts toward the
// highly-accurate-model detection, and confCap the confidence ceiling
// applied when that detection fires.
const (
	highAccCut = 0.99
	confCap    = 0.9995
)

// binSnapshot captures the state of the best iteration seen so far.
type binSnapshot struct {
	sampleTemps []float64
	binTemps    []float64
	edges       []float64
	breakdown   []ece.BinStat
}

// solveBins runs the per-bin phase. seed is the warm-start scalar used for
// the trace baseline; the per-sample vector itself starts at identity,
// mirroring the reference behavior.
func solveBins(l *mat.Dense, labels []int, o Options, seed float64) (*Result, error) {
	n, c, err := logits.Validate(l, labels)
	if err != nil {
		return nil, err
	}

	// Trace baseline: error under single-temperature scaling by the seed.
	seeded, err := logits.ScaleScalar(l, seed)
	if err != nil {
		return nil, err
	}
	base, err := o.objective(seeded, labels)
	if err != nil {
		return nil, err
	}
	trace := []float64{base}

	// Correctness is fixed for the whole phase: row-uniform scaling never
	// moves the argmax.
	conf, pred := logits.Confidences(l)
	correct, err := logits.Correctness(pred, labels)
	if err != nil {
		return nil, err
	}

	// Highly accurate models saturate confidence near 1.0; when more than
	// half of the initial adaptive bins sit above the accuracy cut, the
	// accuracy clamp is lifted and confidences are capped instead.
	isAcc, err := detectHighAccuracy(conf, correct, o.Bins)
	if err != nil {
		return nil, err
	}
	if isAcc {
		conf = capConf(conf)
	}

	cur := mat.DenseCopyOf(l)
	cum := ones(n)
	cands := o.grid()

	var best binSnapshot
	bestErr := inf()
	bestIter := 0
	converged := false

	for iter := 0; iter < o.MaxIters; iter++ {
		edges, berr := binning.EqualPopulation(conf, o.Bins)
		if berr != nil {
			return nil, berr
		}
		assign, berr := binning.Assign(conf, edges)
		if berr != nil {
			return nil, berr
		}
		heavy, berr := binning.Heavy(conf, o.Bins)
		if berr != nil {
			return nil, berr
		}
		if len(heavy) > 0 {
			if assign, berr = binning.SpreadTies(assign, conf, o.Bins, heavy, o.Seed); berr != nil {
				return nil, berr
			}
		}

		members := make([][]int, o.Bins)
		for s, b := range assign {
			members[b] = append(members[b], s)
		}

		iterTemps := ones(o.Bins)
		sparse := make(map[int]bool)
		optimized := 0
		for b := 0; b < o.Bins; b++ {
			m := members[b]
			if len(m) == 0 || len(m) < o.MinBinSamples {
				sparse[b] = true
				continue
			}
			t, serr := searchBin(cur, conf, correct, m, c, cands, o, isAcc)
			if serr != nil {
				return nil, serr
			}
			iterTemps[b] = t
			optimized++
		}
		if optimized == 0 {
			if iter == 0 {
				return nil, ErrEmptySubset
			}
			break // nothing left to optimize; keep the best snapshot
		}

		if iterTemps, err = SmoothSparseBins(iterTemps, sparse); err != nil {
			return nil, err
		}

		sampleT := make([]float64, n)
		for s, b := range assign {
			sampleT[s] = iterTemps[b]
		}
		if cur, err = logits.ScaleRows(cur, sampleT); err != nil {
			return nil, err
		}
		for s := range cum {
			cum[s] *= sampleT[s]
		}
		conf, _ = logits.Confidences(cur)

		iterErr, oerr := o.objective(cur, labels)
		if oerr != nil {
			return nil, oerr
		}
		if iterErr < bestErr {
			bestErr = iterErr
			bestIter = iter
			bd, derr := binBreakdown(conf, correct, edges)
			if derr != nil {
				return nil, derr
			}
			best = binSnapshot{
				sampleTemps: append([]float64(nil), cum...),
				binTemps:    iterTemps,
				edges:       edges,
				breakdown:   bd,
			}
		}

		plateau := math.Abs(trace[len(trace)-1]-iterErr) <= o.Epsilon
		trace = append(trace, iterErr)
		if plateau {
			converged = true
			break
		}
	}

	return &Result{
		Scope:       ScopePerBin,
		Temperature: seed,
		SampleTemps: best.sampleTemps,
		BinTemps:    best.binTemps,
		Boundaries:  best.edges,
		Trace:       trace,
		BestIter:    bestIter,
		Converged:   converged,
		Breakdown:   best.breakdown,
	}, nil
}

// searchBin grid-searches the divisor for one bin's member rows against
// the bin-local objective. The clamp on bin accuracy is lifted for highly
// accurate models (isAcc). The baseline is the bin's current gap, so the
// identity temperature survives unless a candidate improves by more than
// Epsilon — and ascending order gives ties to the lower temperature.
//
// The accuracy guard is inert here: dividing whole rows by one value
// cannot move any argmax, so subset accuracy is invariant by construction.
func searchBin(cur *mat.Dense, conf []float64, correct []bool, m []int, c int, cands []float64, o Options, isAcc bool) (float64, error) {
	acc := 0.0
	sumConf := 0.0
	for _, s := range m {
		if correct[s] {
			acc++
		}
		sumConf += conf[s]
	}
	acc /= float64(len(m))
	if !isAcc {
		acc = ece.ClampAccuracy(acc)
	}

	sub := mat.NewDense(len(m), c, nil)
	row := make([]float64, c)
	for k, s := range m {
		mat.Row(row, s, cur)
		sub.SetRow(k, row)
	}

	prior := candidate{err: math.Abs(acc - sumConf/float64(len(m)))}
	evals, err := o.sweep(cands, func(t float64) (candidate, error) {
		scaled, serr := logits.ScaleScalar(sub, t)
		if serr != nil {
			return candidate{}, serr
		}
		sconf, _ := logits.Confidences(scaled)

		return candidate{err: ece.BinError(acc, sconf)}, nil
	})
	if err != nil {
		return 0, err
	}

	if i := pick(cands, evals, prior, false, o.Epsilon); i >= 0 {
		return cands[i], nil
	}

	return 1.0, nil
}

// detectHighAccuracy bins the initial confidences adaptively and reports
// whether more than half of the non-empty bins exceed the accuracy cut.
func detectHighAccuracy(conf []float64, correct []bool, bins int) (bool, error) {
	edges, err := binning.EqualPopulation(conf, bins)
	if err != nil {
		return false, err
	}
	_, stats, err := ece.Breakdown(conf, correct, edges)
	if err != nil {
		return false, err
	}
	high := 0
	for _, st := range stats {
		if st.Accuracy > highAccCut {
			high++
		}
	}

	return high > bins/2, nil
}

// binBreakdown is the per-bin diagnostic under the iteration's own edges.
func binBreakdown(conf []float64, correct []bool, edges []float64) ([]ece.BinStat, error) {
	_, stats, err := ece.Breakdown(conf, correct, edges)

	return stats, err
}

// capConf returns conf with values above confCap pinned to it.
func capConf(conf []float64) []float64 {
	out := append([]float64(nil), conf...)
	for i, v := range out {
		if v > confCap {
			out[i] = confCap
		}
	}

	return out
}

// ones allocates a length-n slice of 1.0.
func ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}

	return out
}
