// Package tempscale is a toolkit for post-hoc probability calibration of
// trained classifiers via temperature scaling.
//
// Given held-out logits and labels, it searches for one or more positive
// "temperature" divisors that rescale logits before softmax so reported
// confidence tracks empirical accuracy, and it measures calibration error
// before and after scaling.
//
// What is inside?
//
//	logits/   — softmax, confidence/prediction extraction, temperature
//	            application (scalar, per-class, per-sample), accuracy and
//	            confusion-matrix summaries
//	binning/  — confidence-range partitioning: equal-width boundaries,
//	            equal-population boundaries, tied-mass handling
//	ece/      — calibration-error evaluators: equal-width ECE, adaptive
//	            ECE, classwise ECE, positive/negative split ECE, plus
//	            per-bin diagnostic breakdowns
//	temper/   — the search engine: bounded scalar grid search and the
//	            iterative multi-scope solver (global / per-class /
//	            per-bin) with sparse-bin smoothing and convergence traces
//	logitio/  — persisted (validation, test) logit/label split files
//
// Why tempscale?
//
//   - Deterministic — fixed grids, seeded tie-breaking, reproducible runs
//   - Strict contracts — sentinel errors, fail-fast validation, no panics
//     on user input
//   - Structured diagnostics — per-iteration and per-bin records instead
//     of interleaved printing; callers decide what to log
//
// Quick start:
//
//	res, err := temper.Solve(valLogits, valLabels,
//	    temper.WithScope(temper.ScopePerClass),
//	    temper.WithBins(25),
//	    temper.WithMaxIters(10),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	scaled, _ := logits.ScaleColumns(testLogits, res.ClassTemps)
//
// The cmd/calibrate command wraps the same flow for persisted logit files.
//
//	go get github.com/kalibr/tempscale
package tempscale
