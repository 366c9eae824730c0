package binning

import "sort"

// EqualWidth returns n+1 equally spaced edges over [0,1]: edge k = k/n.
// The first and last edges are exactly 0 and 1.
//
// Errors: ErrBadBinCount.
//
// Complexity: O(n).
func EqualWidth(n int) ([]float64, error) {
	if n < 1 {
		return nil, ErrBadBinCount
	}
	edges := make([]float64, n+1)
	for k := 0; k <= n; k++ {
		edges[k] = float64(k) / float64(n)
	}
	// Guard against accumulated FP drift at the top edge.
	edges[n] = 1.0

	return edges, nil
}

// EqualPopulation returns n+1 edges cut so each bin holds an equal share of
// the current confidence distribution. Interior edges are linear
// interpolation over the sorted confidence vector at positions k·N/n; the
// outer edges are pinned to 0 and 1 so the partition covers the full range
// regardless of where the data sits.
//
// Runs of identical confidence values larger than a bin's fair share
// collapse interior edges onto the tied value; see Heavy and SpreadTies for
// the recovery policy.
//
// Errors: ErrBadBinCount, ErrNoSamples.
//
// Complexity: O(N log N) time for the sort, O(N) space.
func EqualPopulation(conf []float64, n int) ([]float64, error) {
	if n < 1 {
		return nil, ErrBadBinCount
	}
	if len(conf) == 0 {
		return nil, ErrNoSamples
	}
	sorted := append([]float64(nil), conf...)
	sort.Float64s(sorted)

	npt := len(sorted)
	edges := make([]float64, n+1)
	for k := 1; k < n; k++ {
		pos := float64(k) * float64(npt) / float64(n)
		i := int(pos)
		if i >= npt-1 {
			edges[k] = sorted[npt-1]
			continue
		}
		frac := pos - float64(i)
		edges[k] = sorted[i]*(1-frac) + sorted[i+1]*frac
	}
	edges[0] = 0
	edges[n] = 1

	return edges, nil
}

// Assign maps each confidence value to its bin index under edges: value v
// lands in the bin whose interval (lower, upper] contains it; the first bin
// additionally contains 0. Collapsed (zero-width) intervals receive the
// tied value at their upper edge, matching the (lower, upper] convention.
//
// Errors: ErrNoSamples, ErrBadBoundaries, ErrOutOfRange.
//
// Complexity: O(N log B).
func Assign(conf, edges []float64) ([]int, error) {
	if len(conf) == 0 {
		return nil, ErrNoSamples
	}
	if err := checkEdges(edges); err != nil {
		return nil, err
	}
	n := len(edges) - 1
	out := make([]int, len(conf))
	for s, v := range conf {
		if v < 0 || v > 1 {
			return nil, ErrOutOfRange
		}
		if v <= edges[0] {
			out[s] = 0
			continue
		}
		// Smallest k with edges[k] >= v; bin index is k-1 because v lies in
		// (edges[k-1], edges[k]].
		k := sort.SearchFloat64s(edges, v)
		if k == 0 {
			k = 1
		}
		if edges[k] == v {
			// Walk forward over collapsed duplicate edges so a tied value
			// maps to the last interval ending at it, keeping Assign stable
			// for SpreadTies.
			for k < n && edges[k+1] == v {
				k++
			}
		}
		if k > n {
			k = n
		}
		out[s] = k - 1
	}

	return out, nil
}

// Heavy returns the confidence values whose sample count exceeds one bin's
// fair share ⌊N/n⌋, mapped to their counts. These are the ties that break
// equal-population binning.
//
// Errors: ErrBadBinCount, ErrNoSamples.
//
// Complexity: O(N log N).
func Heavy(conf []float64, n int) (map[float64]int, error) {
	if n < 1 {
		return nil, ErrBadBinCount
	}
	if len(conf) == 0 {
		return nil, ErrNoSamples
	}
	fair := len(conf) / n
	if fair < 1 {
		fair = 1
	}
	counts := make(map[float64]int, n)
	for _, v := range conf {
		counts[v]++
	}
	heavy := make(map[float64]int)
	for v, c := range counts {
		if c > fair {
			heavy[v] = c
		}
	}

	return heavy, nil
}

// checkEdges validates that edges form a usable partition: at least two
// entries, monotonically non-decreasing, within [0,1].
func checkEdges(edges []float64) error {
	if len(edges) < 2 {
		return ErrBadBoundaries
	}
	if edges[0] < 0 || edges[len(edges)-1] > 1 {
		return ErrBadBoundaries
	}
	for k := 1; k < len(edges); k++ {
		if edges[k] < edges[k-1] {
			return ErrBadBoundaries
		}
	}

	return nil
}
