// Package binning partitions the confidence range [0,1] into bins for
// calibration-error aggregation and per-bin temperature search.
//
// Two boundary policies are provided:
//
//   - EqualWidth — fixed boundaries linspace(0, 1, n+1); stateless and
//     identical on every call.
//   - EqualPopulation — boundaries placed by linear interpolation over the
//     sorted confidence vector so each bin holds (approximately) the same
//     number of samples; recomputed from the current distribution each
//     time. Outer edges are pinned to 0 and 1 so the bins always partition
//     the full range.
//
// Both return n+1 monotonically non-decreasing edges defining n half-open
// intervals (lower, upper]; the first bin additionally includes 0.
//
// Degenerate mass: well-trained classifiers pile many samples onto a single
// confidence value (typically near 1.0). When one value exceeds a bin's
// fair share of samples, equal-population edges collapse and a single bin
// would trap the whole run. Heavy detects such values and SpreadTies
// assigns their samples pseudo-randomly — seeded, deterministic — across
// the span of bins the mass would occupy. This is the tie policy of the
// package: tied mass is spread, never treated as its own pseudo-bin.
//
// All functions are pure; SpreadTies returns a fresh assignment slice.
package binning
