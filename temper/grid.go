// Package temper - bounded scalar grid search.
//
// The sweep is a fixed ascending ladder of candidate temperatures; the
// winner is the first candidate achieving a strictly lower objective than
// every candidate before it, which imposes low-temperature preference on
// ties. An optional accuracy guard additionally rejects candidates whose
// accuracy falls below the best observed so far in the same search.
package temper

import (
	"math"

	"github.com/sourcegraph/conc/pool"
	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/ece"
	"github.com/kalibr/tempscale/logits"
)

// inf is shorthand for the unbounded initial acceptance error.
func inf() float64 { return math.Inf(1) }

// grid materializes the candidate temperatures in ascending order.
// Candidates are computed as GridMin + i·GridStep to keep the ladder free
// of accumulated FP drift; the default configuration yields 100 values
// 0.1, 0.2, …, 10.0.
func (o Options) grid() []float64 {
	n := int(math.Floor((o.GridMax-o.GridMin)/o.GridStep+0.5)) + 1
	out := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		t := o.GridMin + float64(i)*o.GridStep
		if t > o.GridMax+o.GridStep/2 {
			break
		}
		out = append(out, t)
	}

	return out
}

// objective evaluates the configured calibration-error function on raw
// logits.
func (o Options) objective(l *mat.Dense, labels []int) (float64, error) {
	switch o.Objective {
	case ObjectiveAdaptive:
		return ece.AdaptiveLogits(l, labels, o.Bins)
	default:
		return ece.EqualWidthLogits(l, labels, o.Bins)
	}
}

// candidate is one sweep evaluation: objective value and (when guarded)
// accuracy under that temperature.
type candidate struct {
	err float64
	acc float64
}

// sweep evaluates eval for every candidate temperature. When o.Parallel > 1
// evaluations run concurrently (they are independent and write disjoint
// slots); the subsequent ascending scan keeps selection deterministic
// either way.
func (o Options) sweep(cands []float64, eval func(t float64) (candidate, error)) ([]candidate, error) {
	out := make([]candidate, len(cands))
	if o.Parallel <= 1 {
		for i, t := range cands {
			c, err := eval(t)
			if err != nil {
				return nil, err
			}
			out[i] = c
		}

		return out, nil
	}

	errs := make([]error, len(cands))
	p := pool.New().WithMaxGoroutines(o.Parallel)
	for i, t := range cands {
		p.Go(func() {
			out[i], errs[i] = eval(t)
		})
	}
	p.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// pick scans candidates in ascending grid order and returns the index of
// the winner under the strict-improvement rule, or -1 when nothing beats
// prior (the guard or the margin rejected every candidate).
//
// margin > 0 demands improvement by more than that margin (per-bin
// acceptance); margin 0 is plain strict improvement.
func pick(cands []float64, evals []candidate, prior candidate, guard bool, margin float64) int {
	best := -1
	bestErr := prior.err
	bestAcc := prior.acc
	for i := range cands {
		if guard && evals[i].acc < bestAcc {
			continue
		}
		if bestErr > evals[i].err+margin {
			best = i
			bestErr = evals[i].err
			if guard {
				bestAcc = evals[i].acc
			}
		}
	}

	return best
}

// searchScalar sweeps the grid for a single divisor applied to the whole
// matrix and returns the winner plus its objective value. When no
// candidate is admissible the identity temperature and the baseline error
// are returned.
func searchScalar(l *mat.Dense, labels []int, o Options) (float64, float64, error) {
	base, err := o.objective(l, labels)
	if err != nil {
		return 0, 0, err
	}
	prior := candidate{err: math.Inf(1)}
	if o.AccuracyGuard {
		_, pred := logits.Confidences(l)
		if prior.acc, err = logits.Accuracy(pred, labels); err != nil {
			return 0, 0, err
		}
	}

	cands := o.grid()
	evals, err := o.sweep(cands, func(t float64) (candidate, error) {
		scaled, serr := logits.ScaleScalar(l, t)
		if serr != nil {
			return candidate{}, serr
		}
		var c candidate
		if c.err, serr = o.objective(scaled, labels); serr != nil {
			return candidate{}, serr
		}
		if o.AccuracyGuard {
			_, pred := logits.Confidences(scaled)
			if c.acc, serr = logits.Accuracy(pred, labels); serr != nil {
				return candidate{}, serr
			}
		}

		return c, nil
	})
	if err != nil {
		return 0, 0, err
	}

	i := pick(cands, evals, prior, o.AccuracyGuard, 0)
	if i < 0 {
		return 1.0, base, nil
	}

	return cands[i], evals[i].err, nil
}

// SearchScalar runs the bounded scalar grid search on the whole matrix:
// every candidate divisor in [GridMin, GridMax] is evaluated against the
// configured objective and the first strict improvement in ascending order
// wins. Already-calibrated inputs therefore come back with a temperature
// within one grid step of 1.0.
//
// Returns the winning temperature and the objective value it achieves.
//
// Errors: option sentinels from validateOptions; logits sentinels for
// malformed inputs.
func SearchScalar(l *mat.Dense, labels []int, opts ...Option) (float64, float64, error) {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if _, _, err := validateAll(l, labels, o); err != nil {
		return 0, 0, err
	}

	return searchScalar(l, labels, o)
}
