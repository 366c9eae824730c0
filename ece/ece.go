package ece

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/binning"
	"github.com/kalibr/tempscale/logits"
)

// EqualWidth computes the expected calibration error of (conf, correct)
// over nBins equal-width bins.
//
// Errors: ErrEmptyInput, ErrLengthMismatch, ErrBadBinCount.
//
// Complexity: O(N + B).
func EqualWidth(conf []float64, correct []bool, nBins int) (float64, error) {
	if err := checkPairs(conf, correct, nBins); err != nil {
		return 0, err
	}
	edges, err := binning.EqualWidth(nBins)
	if err != nil {
		return 0, err
	}
	e, _, err := aggregate(conf, correct, edges)

	return e, err
}

// EqualWidthLogits computes equal-width ECE directly from raw logits and
// labels: confidences and predictions are derived via softmax/argmax first.
//
// Errors: ErrEmptyInput, ErrLengthMismatch, ErrBadBinCount.
func EqualWidthLogits(l *mat.Dense, labels []int, nBins int) (float64, error) {
	conf, correct, err := derive(l, labels)
	if err != nil {
		return 0, err
	}

	return EqualWidth(conf, correct, nBins)
}

// Adaptive computes ECE over equal-population bins cut from the provided
// confidence distribution itself. Same aggregation as EqualWidth; only the
// edges differ.
//
// Errors: ErrEmptyInput, ErrLengthMismatch, ErrBadBinCount.
//
// Complexity: O(N log N + B).
func Adaptive(conf []float64, correct []bool, nBins int) (float64, error) {
	if err := checkPairs(conf, correct, nBins); err != nil {
		return 0, err
	}
	edges, err := binning.EqualPopulation(conf, nBins)
	if err != nil {
		return 0, err
	}
	e, _, err := aggregate(conf, correct, edges)

	return e, err
}

// AdaptiveLogits is Adaptive on raw logits and labels.
func AdaptiveLogits(l *mat.Dense, labels []int, nBins int) (float64, error) {
	conf, correct, err := derive(l, labels)
	if err != nil {
		return 0, err
	}

	return Adaptive(conf, correct, nBins)
}

// Breakdown aggregates (conf, correct) over the given edges and returns the
// total ECE plus one BinStat per non-empty bin, in bin order. This is the
// diagnostic form of the evaluator; EqualWidth and Adaptive are thin
// wrappers over the same accumulation.
//
// Errors: ErrEmptyInput, ErrLengthMismatch, and binning.ErrBadBoundaries
// for malformed edges.
func Breakdown(conf []float64, correct []bool, edges []float64) (float64, []BinStat, error) {
	if len(conf) == 0 {
		return 0, nil, ErrEmptyInput
	}
	if len(conf) != len(correct) {
		return 0, nil, ErrLengthMismatch
	}

	return aggregate(conf, correct, edges)
}

// ClampAccuracy pins a within-bin accuracy to [AccClampLo, AccClampHi],
// the smoothing applied by the per-bin search objective so bins at exactly
// 0 or 1 accuracy keep a usable gradient direction.
func ClampAccuracy(a float64) float64 {
	if a > AccClampHi {
		return AccClampHi
	}
	if a < AccClampLo {
		return AccClampLo
	}

	return a
}

// BinError is the bin-local objective |acc − mean(conf)| over one bin's
// member confidences. An empty member set scores 0 (nothing to correct).
//
// Callers decide whether acc was clamped; see ClampAccuracy.
func BinError(acc float64, conf []float64) float64 {
	if len(conf) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range conf {
		sum += v
	}

	return math.Abs(acc - sum/float64(len(conf)))
}

// aggregate walks the bins once and accumulates the weighted
// |accuracy − confidence| gaps. Empty bins contribute nothing.
func aggregate(conf []float64, correct []bool, edges []float64) (float64, []BinStat, error) {
	assign, err := binning.Assign(conf, edges)
	if err != nil {
		return 0, nil, err
	}
	nBins := len(edges) - 1
	count := make([]int, nBins)
	hits := make([]int, nBins)
	sumConf := make([]float64, nBins)
	for s, b := range assign {
		count[b]++
		sumConf[b] += conf[s]
		if correct[s] {
			hits[b]++
		}
	}

	total := 0.0
	stats := make([]BinStat, 0, nBins)
	n := float64(len(conf))
	for b := 0; b < nBins; b++ {
		if count[b] == 0 {
			continue
		}
		acc := float64(hits[b]) / float64(count[b])
		avg := sumConf[b] / float64(count[b])
		contrib := float64(count[b]) / n * math.Abs(acc-avg)
		total += contrib
		stats = append(stats, BinStat{
			Bin:            b,
			Lower:          edges[b],
			Upper:          edges[b+1],
			Samples:        count[b],
			Accuracy:       acc,
			MeanConfidence: avg,
			Error:          contrib,
		})
	}

	return total, stats, nil
}

// derive extracts (confidence, correctness) pairs from raw logits.
func derive(l *mat.Dense, labels []int) ([]float64, []bool, error) {
	if _, _, err := logits.Validate(l, labels); err != nil {
		return nil, nil, mapLogitsErr(err)
	}
	conf, pred := logits.Confidences(l)
	correct, err := logits.Correctness(pred, labels)
	if err != nil {
		return nil, nil, mapLogitsErr(err)
	}

	return conf, correct, nil
}

// checkPairs validates the shared (conf, correct, nBins) contract.
func checkPairs(conf []float64, correct []bool, nBins int) error {
	if len(conf) == 0 {
		return ErrEmptyInput
	}
	if len(conf) != len(correct) {
		return ErrLengthMismatch
	}
	if nBins < 1 {
		return ErrBadBinCount
	}

	return nil
}

// mapLogitsErr translates logits-package sentinels into this package's
// InvalidInput taxonomy so callers match on one error set.
func mapLogitsErr(err error) error {
	switch err {
	case logits.ErrEmptyInput:
		return ErrEmptyInput
	default:
		return ErrLengthMismatch
	}
}
