// Package logits provides the primitive operations every calibration step
// is built from: row-wise softmax, confidence/prediction extraction,
// temperature application for the three parameter shapes (scalar,
// per-class, per-sample), and classification accuracy summaries.
//
// Conventions:
//
//   - A logit matrix is a gonum *mat.Dense of shape N×C: N samples, C
//     classes, raw pre-softmax scores.
//   - A label vector is []int of length N with values in [0, C).
//   - Confidence is the maximum softmax probability of a sample; the
//     prediction is its argmax class.
//   - Temperatures are strictly positive divisors; every Scale* function
//     rejects zero or negative values with ErrBadTemperature.
//
// All functions are pure: inputs are never mutated, results are freshly
// allocated. This keeps solver iterations free of aliasing surprises.
package logits
