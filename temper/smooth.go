package temper

// SmoothSparseBins repairs per-bin temperatures for bins that were too
// sparse to optimize directly.
//
// Each sparse bin receives a value from its nearest neighbors, walking
// outward past other sparse bins until a non-sparse bin or the boundary is
// reached:
//
//   - interior bin with both walks ending short of the last bin — the mean
//     of the two neighbor values;
//   - interior bin whose upward walk ends at the last bin — the downward
//     neighbor's value alone (the asymmetric edge rule of the reference
//     behavior, reproduced for numeric parity);
//   - first/last bin — the single available neighbor's value.
//
// Bins are processed in ascending index order and earlier repairs are
// visible to later walks, so chains of sparse bins settle in one pass.
// The input slice is not mutated.
//
// Errors: ErrBadBinCount for an empty vector, ErrBadSparseIndex for a
// sparse index outside it.
//
// Complexity: O(B) amortized for B bins.
func SmoothSparseBins(temps []float64, sparse map[int]bool) ([]float64, error) {
	n := len(temps)
	if n == 0 {
		return nil, ErrBadBinCount
	}
	for b := range sparse {
		if b < 0 || b >= n {
			return nil, ErrBadSparseIndex
		}
	}

	out := append([]float64(nil), temps...)
	if n == 1 {
		return out, nil // no neighbor to borrow from
	}

	for b := 0; b < n; b++ {
		if !sparse[b] {
			continue
		}
		switch {
		case b > 0 && b < n-1:
			lower := b - 1
			for sparse[lower] && lower-1 >= 0 {
				lower--
			}
			upper := b + 1
			for sparse[upper] && upper+1 <= n-1 {
				upper++
			}
			if upper == n-1 {
				out[b] = out[lower]
			} else {
				out[b] = (out[lower] + out[upper]) / 2
			}
		case b == 0:
			upper := b + 1
			for sparse[upper] && upper+1 <= n-1 {
				upper++
			}
			out[b] = out[upper]
		default: // b == n-1
			lower := b - 1
			for sparse[lower] && lower-1 >= 0 {
				lower--
			}
			out[b] = out[lower]
		}
	}

	return out, nil
}
