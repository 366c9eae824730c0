// Package ece implements the calibration-error evaluator family used to
// drive and judge temperature scaling.
//
// All evaluators reduce a batch of (confidence, correctness) pairs — or the
// raw logits and labels they derive from — to one non-negative scalar:
//
//	ECE = Σ over non-empty bins of  (bin population / N) · |bin accuracy − bin mean confidence|
//
// Variants differ only in how bins are drawn:
//
//   - EqualWidth / EqualWidthLogits — fixed equal-width bins over [0,1].
//   - Adaptive — equal-population bins recomputed from the current
//     confidence distribution.
//   - Classwise — one error per class, confidence taken as that class's
//     softmax probability and correctness as true-label match; returns the
//     per-class vector together with its mean.
//   - PosNeg — per class, splits bin gaps into over-confident
//     (confidence > accuracy) and under-confident contributions.
//
// None of the whole-distribution evaluators clamp bin accuracy. The
// [0.01, 0.99] clamp exists only in the bin-local objective (BinError with
// ClampAccuracy) consumed by the per-bin temperature search, where accuracy
// pinned at exactly 0 or 1 would make the objective insensitive near the
// boundary. Callers choosing that objective inherit its shifted optimum.
//
// An evaluator is a pure function; Breakdown exposes the same aggregation
// as per-bin diagnostic records for reporting.
package ece
