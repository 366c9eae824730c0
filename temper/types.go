// Package temper defines configuration, result types and sentinel errors
// for the temperature-search engine.
//
// A solve is configured with Options (functional-options style), selects a
// Scope — the subset of the parameter a single grid search optimizes
// jointly — and returns a Result carrying the final temperature
// parameterization, the convergence trace and per-bin diagnostics.
//
// Errors (sentinel):
//
//	– ErrBadBinCount       if Bins < 1.
//	– ErrBadIterCap        if MaxIters < 1.
//	– ErrBadInitTemp       if InitTemp <= 0.
//	– ErrBadGrid           if the temperature grid is empty or inverted.
//	– ErrBadEpsilon        if Epsilon < 0.
//	– ErrBadSparseIndex    if a sparse-bin index is out of range.
//	– ErrBadSparseThreshold if MinBinSamples < 0.
//	– ErrUnsupportedScope  if Scope is not one of the declared constants.
//	– ErrUnsupportedObjective if Objective is unknown.
//	– ErrEmptySubset       if no scope holds any optimizable samples.
package temper

import "errors"

// Sentinel errors returned by the temper package. Input-shape violations
// (labels vs logits, label range) are forwarded from package logits.
var (
	// ErrBadBinCount indicates a bin count below 1.
	ErrBadBinCount = errors.New("temper: bin count must be at least 1")

	// ErrBadIterCap indicates an iteration cap below 1.
	ErrBadIterCap = errors.New("temper: iteration cap must be at least 1")

	// ErrBadInitTemp indicates a non-positive initial temperature seed.
	ErrBadInitTemp = errors.New("temper: initial temperature must be positive")

	// ErrBadGrid indicates a malformed candidate grid (min <= 0,
	// max < min, or step <= 0).
	ErrBadGrid = errors.New("temper: malformed temperature grid")

	// ErrBadEpsilon indicates a negative plateau epsilon.
	ErrBadEpsilon = errors.New("temper: epsilon must be non-negative")

	// ErrBadSparseIndex indicates a sparse-bin index outside the vector.
	ErrBadSparseIndex = errors.New("temper: sparse bin index out of range")

	// ErrBadSparseThreshold indicates a negative MinBinSamples.
	ErrBadSparseThreshold = errors.New("temper: sparse-bin threshold must be non-negative")

	// ErrUnsupportedScope indicates a Scope value outside the declared set.
	ErrUnsupportedScope = errors.New("temper: unsupported scope")

	// ErrUnsupportedObjective indicates an unknown calibration objective.
	ErrUnsupportedObjective = errors.New("temper: unsupported objective")

	// ErrEmptySubset indicates that every scope was empty (or sparse) and
	// nothing could be optimized; this points at an upstream input problem,
	// a single empty scope is recovered silently.
	ErrEmptySubset = errors.New("temper: no scope holds enough samples to optimize")
)

// Scope selects the subset of the temperature parameter a single grid
// search optimizes jointly.
type Scope int

const (
	// ScopeGlobal — one scalar divisor for every logit; iterated MaxIters
	// times cumulatively.
	ScopeGlobal Scope = iota

	// ScopePerClass — one divisor per output class (column), refined to a
	// fixed point by repeated passes over the classes.
	ScopePerClass

	// ScopePerBin — one divisor per confidence bin, shared by the bin's
	// member samples and re-derived from the scaled distribution each
	// outer iteration.
	ScopePerBin
)

// String implements fmt.Stringer for diagnostics and CLI flags.
func (s Scope) String() string {
	switch s {
	case ScopeGlobal:
		return "global"
	case ScopePerClass:
		return "class"
	case ScopePerBin:
		return "bin"
	default:
		return "unknown"
	}
}

// Objective selects the calibration-error function the search minimizes.
type Objective int

const (
	// ObjectiveEqualWidth — expected calibration error over fixed
	// equal-width bins (the default).
	ObjectiveEqualWidth Objective = iota

	// ObjectiveAdaptive — ECE over equal-population bins recomputed from
	// the evaluated confidence distribution.
	ObjectiveAdaptive
)

// Options configures a temperature solve.
//
// Fields:
//   - Scope / Objective — what is optimized and how it is scored.
//   - Bins          — bin count for objectives and per-bin scope. Default 25.
//   - MaxIters      — outer iteration cap. Default 1.
//   - InitTemp      — temperature seed when WarmStart is disabled. Default 2.5.
//   - WarmStart     — replace InitTemp with the global grid optimum before
//     the scope search. Default true.
//   - AccuracyGuard — accept a candidate only if argmax accuracy does not
//     regress below the best seen in that search. Only per-class scaling
//     can move the argmax; the guard is inert for row-uniform (global /
//     per-bin) scaling. Default false.
//   - GridMin/GridMax/GridStep — candidate temperature sweep. Default
//     0.1..10.0 by 0.1 (100 candidates).
//   - Epsilon       — plateau threshold on the convergence trace and the
//     minimum improvement for per-bin acceptance. Default 1e-6.
//   - MinBinSamples — bins below this population are excluded from direct
//     search and repaired by smoothing. Default 20.
//   - Parallel      — max goroutines for independent evaluations within one
//     sweep; <= 1 means sequential. Results are identical either way.
//   - Seed          — tie-spreading RNG seed; 0 selects a fixed default.
type Options struct {
	Scope         Scope
	Objective     Objective
	Bins          int
	MaxIters      int
	InitTemp      float64
	WarmStart     bool
	AccuracyGuard bool
	GridMin       float64
	GridMax       float64
	GridStep      float64
	Epsilon       float64
	MinBinSamples int
	Parallel      int
	Seed          int64
}

// Option represents a functional option for configuring a solve.
type Option func(*Options)

// WithScope selects the optimization scope.
func WithScope(s Scope) Option { return func(o *Options) { o.Scope = s } }

// WithObjective selects the calibration-error objective.
func WithObjective(ob Objective) Option { return func(o *Options) { o.Objective = ob } }

// WithBins sets the bin count used by objectives and the per-bin scope.
func WithBins(n int) Option { return func(o *Options) { o.Bins = n } }

// WithMaxIters sets the outer iteration cap.
func WithMaxIters(n int) Option { return func(o *Options) { o.MaxIters = n } }

// WithInitTemp sets the initial temperature seed used when the warm start
// is disabled.
func WithInitTemp(t float64) Option { return func(o *Options) { o.InitTemp = t } }

// WithWarmStart toggles seeding the scope search with the global grid
// optimum (enabled by default).
func WithWarmStart(enabled bool) Option { return func(o *Options) { o.WarmStart = enabled } }

// WithAccuracyGuard requires candidate temperatures to not regress
// accuracy below the best observed during the search.
func WithAccuracyGuard(enabled bool) Option { return func(o *Options) { o.AccuracyGuard = enabled } }

// WithGrid overrides the candidate temperature sweep [min, max] with the
// given step.
func WithGrid(min, max, step float64) Option {
	return func(o *Options) {
		o.GridMin, o.GridMax, o.GridStep = min, max, step
	}
}

// WithEpsilon sets the plateau/acceptance threshold.
func WithEpsilon(eps float64) Option { return func(o *Options) { o.Epsilon = eps } }

// WithMinBinSamples sets the sparse-bin population threshold.
func WithMinBinSamples(n int) Option { return func(o *Options) { o.MinBinSamples = n } }

// WithParallel bounds the number of goroutines used for independent
// subsearches within one iteration.
func WithParallel(n int) Option { return func(o *Options) { o.Parallel = n } }

// WithSeed sets the tie-spreading RNG seed (0 = fixed default).
func WithSeed(seed int64) Option { return func(o *Options) { o.Seed = seed } }

// DefaultOptions returns the reference configuration: equal-width ECE over
// 25 bins, one iteration, warm start enabled, grid 0.1..10.0 step 0.1,
// epsilon 1e-6, sparse threshold 20, sequential execution.
func DefaultOptions() Options {
	return Options{
		Scope:         ScopeGlobal,
		Objective:     ObjectiveEqualWidth,
		Bins:          25,
		MaxIters:      1,
		InitTemp:      2.5,
		WarmStart:     true,
		AccuracyGuard: false,
		GridMin:       0.1,
		GridMax:       10.0,
		GridStep:      0.1,
		Epsilon:       1e-6,
		MinBinSamples: 20,
		Parallel:      0,
		Seed:          0,
	}
}
