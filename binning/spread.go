package binning

import "sort"

// SpreadTies redistributes tied confidence mass across bins.
//
// Under equal-population edges, a value v with count c exceeding the fair
// share ⌊N/n⌋ collapses k = ⌊c / fair⌋ consecutive interior edges onto v,
// and Assign parks all c samples in the last of those collapsed intervals.
// SpreadTies reassigns each tied sample to a pseudo-random bin within the k
// collapsed intervals the mass would occupy, restoring near-equal bin
// populations.
//
// Assignment is deterministic for a given (seed, value) pair: one
// independent RNG stream is derived per tied value, so the result does not
// depend on map iteration order. seed==0 selects a fixed default seed.
//
// The input assignment is not mutated; a fresh slice is returned.
//
// Errors: ErrBadBinCount, ErrNoSamples, ErrBadBoundaries when assign and
// conf lengths disagree.
//
// Complexity: O(N + H log H) for H heavy values.
func SpreadTies(assign []int, conf []float64, nBins int, heavy map[float64]int, seed int64) ([]int, error) {
	if nBins < 1 {
		return nil, ErrBadBinCount
	}
	if len(conf) == 0 {
		return nil, ErrNoSamples
	}
	if len(assign) != len(conf) {
		return nil, ErrBadBoundaries
	}

	out := append([]int(nil), assign...)
	if len(heavy) == 0 {
		return out, nil
	}

	fair := len(conf) / nBins
	if fair < 1 {
		fair = 1
	}

	// Stable order over tied values keeps the per-value streams reproducible
	// even though each stream is independent anyway.
	values := make([]float64, 0, len(heavy))
	for v := range heavy {
		values = append(values, v)
	}
	sort.Float64s(values)

	for _, v := range values {
		span := heavy[v] / fair
		if span < 1 {
			span = 1
		}
		// Locate the bin Assign parked the mass in: the last bin of the
		// collapsed run. The span extends backward over the collapsed bins.
		last := -1
		for s := range conf {
			if conf[s] == v {
				last = out[s]
				break
			}
		}
		if last < 0 {
			continue // value absent from conf; stale heavy map entry
		}
		first := last - span + 1
		if first < 0 {
			first = 0
		}
		rng := valueStream(seed, v)
		for s := range conf {
			if conf[s] == v {
				out[s] = first + rng.Intn(last-first+1)
			}
		}
	}

	return out, nil
}
