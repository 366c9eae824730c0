// Package logitio persists evaluation splits — raw logit matrices with
// their true labels — in a versioned msgpack container.
//
// A File holds a validation split (fitted on) and a test split (reported
// on). The schema constant is embedded in every file and checked on load;
// it is bumped whenever the layout changes, so stale files fail loudly
// with ErrSchema rather than decoding into garbage. Saves are atomic:
// the payload is written to a temp file in the target directory and
// renamed into place.
//
// Shapes are validated on load (ragged logit rows, label/row count
// mismatch, out-of-range labels) so downstream code can assume
// rectangular data.
package logitio
