package logits

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Softmax returns the row-wise softmax of l as a freshly allocated matrix.
//
// Each row is shifted by its maximum before exponentiation, so arbitrarily
// large logits never overflow.
//
// Complexity: O(N·C) time, O(N·C) space.
func Softmax(l *mat.Dense) *mat.Dense {
	r, c := l.Dims()
	out := mat.NewDense(r, c, nil)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, l)
		shift := floats.Max(row)
		sum := 0.0
		for j := 0; j < c; j++ {
			row[j] = math.Exp(row[j] - shift)
			sum += row[j]
		}
		for j := 0; j < c; j++ {
			row[j] /= sum
		}
		out.SetRow(i, row)
	}

	return out
}

// Confidences returns, per sample, the maximum softmax probability and the
// argmax class of l. Ties resolve to the lowest class index (floats.MaxIdx
// semantics), which keeps repeated runs identical.
//
// Complexity: O(N·C).
func Confidences(l *mat.Dense) (conf []float64, pred []int) {
	sm := Softmax(l)
	r, c := sm.Dims()
	conf = make([]float64, r)
	pred = make([]int, r)
	row := make([]float64, c)
	for i := 0; i < r; i++ {
		mat.Row(row, i, sm)
		j := floats.MaxIdx(row)
		pred[i] = j
		conf[i] = row[j]
	}

	return conf, pred
}

// ScaleScalar returns l with every entry divided by the single temperature t.
//
// Errors: ErrEmptyInput, ErrBadTemperature.
func ScaleScalar(l *mat.Dense, t float64) (*mat.Dense, error) {
	r, c := l.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyInput
	}
	if t <= 0 {
		return nil, ErrBadTemperature
	}
	out := mat.NewDense(r, c, nil)
	out.Scale(1/t, l)

	return out, nil
}

// ScaleColumns returns l with column j divided by t[j] for every row —
// broadcasting a per-class temperature vector across samples.
//
// Errors: ErrEmptyInput, ErrShapeMismatch (len(t) != C), ErrBadTemperature.
func ScaleColumns(l *mat.Dense, t []float64) (*mat.Dense, error) {
	r, c := l.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyInput
	}
	if len(t) != c {
		return nil, ErrShapeMismatch
	}
	for _, v := range t {
		if v <= 0 {
			return nil, ErrBadTemperature
		}
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, l.At(i, j)/t[j])
		}
	}

	return out, nil
}

// ScaleRows returns l with row i divided by t[i] — a per-sample temperature
// vector as produced by per-bin optimization (samples sharing a bin share a
// value).
//
// Errors: ErrEmptyInput, ErrShapeMismatch (len(t) != N), ErrBadTemperature.
func ScaleRows(l *mat.Dense, t []float64) (*mat.Dense, error) {
	r, c := l.Dims()
	if r == 0 || c == 0 {
		return nil, ErrEmptyInput
	}
	if len(t) != r {
		return nil, ErrShapeMismatch
	}
	for _, v := range t {
		if v <= 0 {
			return nil, ErrBadTemperature
		}
	}
	out := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, l.At(i, j)/t[i])
		}
	}

	return out, nil
}

// Validate checks that l and labels describe the same N samples and that
// every label lies in [0, C). It returns (N, C) on success.
//
// Errors: ErrEmptyInput, ErrShapeMismatch, ErrBadLabel.
func Validate(l *mat.Dense, labels []int) (n, c int, err error) {
	n, c = l.Dims()
	if n == 0 || c == 0 {
		return 0, 0, ErrEmptyInput
	}
	if len(labels) != n {
		return 0, 0, ErrShapeMismatch
	}
	for _, lb := range labels {
		if lb < 0 || lb >= c {
			return 0, 0, ErrBadLabel
		}
	}

	return n, c, nil
}
