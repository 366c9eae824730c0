package ece

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/binning"
	"github.com/kalibr/tempscale/logits"
)

// Classwise computes one calibration error per class and their mean.
//
// For class j, "confidence" is the softmax probability assigned to j for
// every sample and "correctness" is whether the true label equals j; each
// class is binned independently over nBins equal-width bins. The per-class
// vector feeds the per-class temperature search; the mean is the scalar
// summary.
//
// Errors: ErrEmptyInput, ErrLengthMismatch, ErrBadBinCount.
//
// Complexity: O(N·C + C·B).
func Classwise(l *mat.Dense, labels []int, nBins int) (mean float64, per []float64, err error) {
	sm, c, err := classProbs(l, labels, nBins)
	if err != nil {
		return 0, nil, err
	}
	edges, err := binning.EqualWidth(nBins)
	if err != nil {
		return 0, nil, err
	}

	n, _ := sm.Dims()
	per = make([]float64, c)
	conf := make([]float64, n)
	correct := make([]bool, n)
	for j := 0; j < c; j++ {
		mat.Col(conf, j, sm)
		for i := 0; i < n; i++ {
			correct[i] = labels[i] == j
		}
		e, _, aerr := aggregate(conf, correct, edges)
		if aerr != nil {
			return 0, nil, aerr
		}
		per[j] = e
		mean += e
	}
	mean /= float64(c)

	return mean, per, nil
}

// PosNeg splits each class's calibration error into an over-confident part
// (bin mean confidence above bin accuracy) and an under-confident part,
// and also reports each class's empirical accuracy (recall on true-label
// samples). pos[j] + neg[j] equals the Classwise error of class j.
//
// Errors: ErrEmptyInput, ErrLengthMismatch, ErrBadBinCount.
//
// Complexity: O(N·C + C·B).
func PosNeg(l *mat.Dense, labels []int, nBins int) (pos, neg, acc []float64, err error) {
	sm, c, err := classProbs(l, labels, nBins)
	if err != nil {
		return nil, nil, nil, err
	}
	edges, err := binning.EqualWidth(nBins)
	if err != nil {
		return nil, nil, nil, err
	}

	n, _ := sm.Dims()
	pos = make([]float64, c)
	neg = make([]float64, c)
	acc = make([]float64, c)
	conf := make([]float64, n)
	correct := make([]bool, n)
	_, pred := logits.Confidences(l)
	for j := 0; j < c; j++ {
		mat.Col(conf, j, sm)
		var members, hits int
		for i := 0; i < n; i++ {
			correct[i] = labels[i] == j
			if labels[i] == j {
				members++
				if pred[i] == j {
					hits++
				}
			}
		}
		if members > 0 {
			acc[j] = float64(hits) / float64(members)
		}
		_, stats, aerr := aggregate(conf, correct, edges)
		if aerr != nil {
			return nil, nil, nil, aerr
		}
		for _, st := range stats {
			gap := st.MeanConfidence - st.Accuracy
			w := float64(st.Samples) / float64(n)
			if gap > 0 {
				pos[j] += w * gap
			} else {
				neg[j] += w * math.Abs(gap)
			}
		}
	}

	return pos, neg, acc, nil
}

// classProbs validates inputs and returns the softmax matrix plus C.
func classProbs(l *mat.Dense, labels []int, nBins int) (*mat.Dense, int, error) {
	if nBins < 1 {
		return nil, 0, ErrBadBinCount
	}
	_, c, err := logits.Validate(l, labels)
	if err != nil {
		return nil, 0, mapLogitsErr(err)
	}

	return logits.Softmax(l), c, nil
}
