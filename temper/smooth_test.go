package temper_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kalibr/tempscale/temper"
)

// TestSmoothSparseBins_InteriorMean checks the plain interior case: a
// sparse bin flanked by two optimized neighbors takes their mean.
func TestSmoothSparseBins_InteriorMean(t *testing.T) {
	temps := []float64{2.0, 1.0, 4.0, 1.5}

	out, err := temper.SmoothSparseBins(temps, map[int]bool{1: true})
	require.NoError(t, err)
	assert.Equal(t, []float64{2.0, 3.0, 4.0, 1.5}, out)
	assert.Equal(t, 1.0, temps[1], "input must not be mutated")
}

// TestSmoothSparseBins_WalkSkipsSparseRuns verifies that the neighbor walk
// continues past adjacent sparse bins and that earlier repairs are visible
// to later ones.
func TestSmoothSparseBins_WalkSkipsSparseRuns(t *testing.T) {
	temps := []float64{2.0, 0, 0, 6.0, 1.0}
	sparse := map[int]bool{1: true, 2: true}

	out, err := temper.SmoothSparseBins(temps, sparse)
	require.NoError(t, err)
	// Bin 1: lower walk lands on 0 (2.0), upper walk skips bin 2 to bin 3
	// (6.0) => mean 4.0. Bin 2: lower walk skips bin 1 back to bin 0; out[0]
	// is unchanged, upper neighbor is bin 3 => (2.0+6.0)/2 = 4.0.
	assert.Equal(t, 4.0, out[1])
	assert.Equal(t, 4.0, out[2])
	assert.Equal(t, 2.0, out[0])
	assert.Equal(t, 6.0, out[3])
}

// TestSmoothSparseBins_UpperEdgeRule checks the asymmetric rule: an
// interior bin whose upward walk terminates at the last bin copies its
// lower neighbor instead of averaging.
func TestSmoothSparseBins_UpperEdgeRule(t *testing.T) {
	// Bin 2 is sparse and adjacent to the last bin (index 3): the upward
	// walk stops at 3, so bin 2 copies bin 1 alone.
	temps := []float64{1.0, 3.0, 0, 9.0}

	out, err := temper.SmoothSparseBins(temps, map[int]bool{2: true})
	require.NoError(t, err)
	assert.Equal(t, 3.0, out[2], "upper walk at the last bin copies the lower neighbor")
}

// TestSmoothSparseBins_Boundaries checks first and last bins, which only
// have one neighbor to borrow from.
func TestSmoothSparseBins_Boundaries(t *testing.T) {
	out, err := temper.SmoothSparseBins([]float64{0, 5.0, 7.0}, map[int]bool{0: true})
	require.NoError(t, err)
	assert.Equal(t, 5.0, out[0], "first bin copies its upper neighbor")

	out, err = temper.SmoothSparseBins([]float64{5.0, 7.0, 0}, map[int]bool{2: true})
	require.NoError(t, err)
	assert.Equal(t, 7.0, out[2], "last bin copies its lower neighbor")
}

// TestSmoothSparseBins_NoSparseIsCopy verifies the identity path still
// returns a fresh slice.
func TestSmoothSparseBins_NoSparseIsCopy(t *testing.T) {
	temps := []float64{1.0, 2.0}

	out, err := temper.SmoothSparseBins(temps, nil)
	require.NoError(t, err)
	assert.Equal(t, temps, out)
	out[0] = 9
	assert.Equal(t, 1.0, temps[0], "returned slice must not alias the input")
}

// TestSmoothSparseBins_Validation covers the sentinel ladder.
func TestSmoothSparseBins_Validation(t *testing.T) {
	_, err := temper.SmoothSparseBins(nil, nil)
	assert.ErrorIs(t, err, temper.ErrBadBinCount)
	_, err = temper.SmoothSparseBins([]float64{1}, map[int]bool{3: true})
	assert.ErrorIs(t, err, temper.ErrBadSparseIndex)

	out, err := temper.SmoothSparseBins([]float64{4.0}, map[int]bool{0: true})
	require.NoError(t, err)
	assert.Equal(t, []float64{4.0}, out, "a single bin has no neighbor and stays put")
}
