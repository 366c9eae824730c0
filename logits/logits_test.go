package logits_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/logits"
)

// TestSoftmax_RowsSumToOne verifies that every softmax row is a probability
// distribution and that the input matrix is left untouched.
func TestSoftmax_RowsSumToOne(t *testing.T) {
	l := mat.NewDense(2, 3, []float64{
		1, 2, 3,
		-1, 0, 1,
	})
	before := mat.DenseCopyOf(l)

	sm := logits.Softmax(l)
	r, c := sm.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)
	for i := 0; i < r; i++ {
		sum := 0.0
		for j := 0; j < c; j++ {
			p := sm.At(i, j)
			assert.GreaterOrEqual(t, p, 0.0, "probabilities must be non-negative")
			sum += p
		}
		assert.InDelta(t, 1.0, sum, 1e-12, "row %d must sum to 1", i)
	}
	assert.True(t, mat.Equal(before, l), "Softmax must not mutate its input")
}

// TestSoftmax_LargeLogitsStable ensures the max-shift keeps huge logits
// from overflowing to NaN or Inf.
func TestSoftmax_LargeLogitsStable(t *testing.T) {
	l := mat.NewDense(1, 3, []float64{1000, 1001, 1002})

	sm := logits.Softmax(l)
	for j := 0; j < 3; j++ {
		assert.False(t, math.IsNaN(sm.At(0, j)), "no NaN for shifted logits")
		assert.False(t, math.IsInf(sm.At(0, j), 0), "no Inf for shifted logits")
	}
	assert.Greater(t, sm.At(0, 2), sm.At(0, 1), "ordering preserved")
}

// TestConfidences_ArgmaxAndTies checks predictions, max probabilities and
// lowest-index tie resolution.
func TestConfidences_ArgmaxAndTies(t *testing.T) {
	l := mat.NewDense(3, 3, []float64{
		5, 1, 1, // clear winner: class 0
		0, 4, 0, // clear winner: class 1
		2, 2, 0, // tie between 0 and 1 -> lowest index wins
	})

	conf, pred := logits.Confidences(l)
	require.Len(t, conf, 3)
	assert.Equal(t, []int{0, 1, 0}, pred)
	assert.Greater(t, conf[0], 0.9, "dominant logit yields high confidence")
	assert.InDelta(t, conf[2], logits.Softmax(l).At(2, 0), 1e-15)
}

// TestScaleScalar_DividesAndValidates covers the happy path plus both
// sentinel failures.
func TestScaleScalar_DividesAndValidates(t *testing.T) {
	l := mat.NewDense(2, 2, []float64{2, 4, 6, 8})

	out, err := logits.ScaleScalar(l, 2.0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 4.0, out.At(1, 1))
	assert.Equal(t, 2.0, l.At(0, 0), "input must stay intact")

	_, err = logits.ScaleScalar(l, 0)
	assert.ErrorIs(t, err, logits.ErrBadTemperature, "zero temperature must error")
	_, err = logits.ScaleScalar(&mat.Dense{}, 1.0)
	assert.ErrorIs(t, err, logits.ErrEmptyInput, "empty matrix must error")
}

// TestScaleScalar_PreservesArgmax verifies the row-uniform invariant:
// dividing a row by one positive factor cannot change its argmax.
func TestScaleScalar_PreservesArgmax(t *testing.T) {
	l := mat.NewDense(4, 3, []float64{
		3, 1, 2,
		-1, -3, -2,
		0.5, 0.4, 0.6,
		10, 9, 8,
	})
	_, before := logits.Confidences(l)

	for _, temp := range []float64{0.1, 2.5, 9.9} {
		out, err := logits.ScaleScalar(l, temp)
		require.NoError(t, err)
		_, after := logits.Confidences(out)
		assert.Equal(t, before, after, "argmax must survive T=%v", temp)
	}
}

// TestScaleColumns_PerClassDivisors checks column-wise division and its
// shape/positivity validation.
func TestScaleColumns_PerClassDivisors(t *testing.T) {
	l := mat.NewDense(2, 3, []float64{
		2, 4, 6,
		8, 10, 12,
	})

	out, err := logits.ScaleColumns(l, []float64{2, 4, 6})
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 1.0, out.At(0, 1))
	assert.Equal(t, 1.0, out.At(0, 2))
	assert.Equal(t, 4.0, out.At(1, 0))

	_, err = logits.ScaleColumns(l, []float64{1, 1})
	assert.ErrorIs(t, err, logits.ErrShapeMismatch, "length must match class count")
	_, err = logits.ScaleColumns(l, []float64{1, -1, 1})
	assert.ErrorIs(t, err, logits.ErrBadTemperature, "negative divisor must error")
}

// TestScaleRows_PerSampleDivisors checks row-wise division and validation.
func TestScaleRows_PerSampleDivisors(t *testing.T) {
	l := mat.NewDense(2, 2, []float64{
		2, 4,
		9, 12,
	})

	out, err := logits.ScaleRows(l, []float64{2, 3})
	require.NoError(t, err)
	assert.Equal(t, 1.0, out.At(0, 0))
	assert.Equal(t, 2.0, out.At(0, 1))
	assert.Equal(t, 3.0, out.At(1, 0))
	assert.Equal(t, 4.0, out.At(1, 1))

	_, err = logits.ScaleRows(l, []float64{2})
	assert.ErrorIs(t, err, logits.ErrShapeMismatch, "length must match sample count")
	_, err = logits.ScaleRows(l, []float64{2, 0})
	assert.ErrorIs(t, err, logits.ErrBadTemperature, "zero divisor must error")
}

// TestValidate_Sentinels walks the fail-fast validation ladder.
func TestValidate_Sentinels(t *testing.T) {
	l := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	n, c, err := logits.Validate(l, []int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 3, c)

	_, _, err = logits.Validate(&mat.Dense{}, nil)
	assert.ErrorIs(t, err, logits.ErrEmptyInput)
	_, _, err = logits.Validate(l, []int{0})
	assert.ErrorIs(t, err, logits.ErrShapeMismatch)
	_, _, err = logits.Validate(l, []int{0, 3})
	assert.ErrorIs(t, err, logits.ErrBadLabel, "label == C is out of range")
	_, _, err = logits.Validate(l, []int{0, -1})
	assert.ErrorIs(t, err, logits.ErrBadLabel, "negative label is out of range")
}

// TestCorrectness_And_Accuracy covers the per-sample hit vector and its
// aggregate.
func TestCorrectness_And_Accuracy(t *testing.T) {
	pred := []int{0, 1, 2, 1}
	labels := []int{0, 1, 1, 1}

	correct, err := logits.Correctness(pred, labels)
	require.NoError(t, err)
	assert.Equal(t, []bool{true, true, false, true}, correct)

	acc, err := logits.Accuracy(pred, labels)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-15)

	_, err = logits.Accuracy(nil, nil)
	assert.ErrorIs(t, err, logits.ErrEmptyInput)
	_, err = logits.Accuracy(pred, []int{0})
	assert.ErrorIs(t, err, logits.ErrShapeMismatch)
}

// TestConfusion_CountsAndValidation checks the [true][predicted] layout.
func TestConfusion_CountsAndValidation(t *testing.T) {
	pred := []int{0, 1, 1, 2}
	labels := []int{0, 0, 1, 2}

	cm, err := logits.Confusion(pred, labels, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, cm[0][0])
	assert.Equal(t, 1, cm[0][1], "true 0 predicted 1")
	assert.Equal(t, 1, cm[1][1])
	assert.Equal(t, 1, cm[2][2])
	assert.Equal(t, 0, cm[1][0])

	_, err = logits.Confusion(pred, labels, 2)
	assert.ErrorIs(t, err, logits.ErrBadLabel, "class 2 outside [0, 2)")
	_, err = logits.Confusion(pred, []int{0}, 3)
	assert.ErrorIs(t, err, logits.ErrShapeMismatch)
}
