// Package logitio - versioned msgpack persistence for logit splits.
package logitio

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
	"gonum.org/v1/gonum/mat"
)

// SchemaVersion identifies the on-disk layout; bump on any File or Split
// field change.
const SchemaVersion uint16 = 1

// Sentinel errors returned by the logitio package.
var (
	// ErrSchema indicates a file written under a different schema version.
	ErrSchema = errors.New("logitio: unsupported schema version")

	// ErrBadShape indicates ragged logit rows, a label count that does not
	// match the row count, or a label outside [0, C).
	ErrBadShape = errors.New("logitio: malformed split shape")

	// ErrEmptySplit indicates a split with no samples or no classes.
	ErrEmptySplit = errors.New("logitio: split must be non-empty")
)

// Split is one evaluation partition: N logit rows and their true labels.
type Split struct {
	Logits [][]float64
	Labels []int
}

// File is the persisted container: the validation split temperatures are
// fitted on and the test split results are reported on.
type File struct {
	Schema uint16
	Val    Split
	Test   Split
}

// Matrix converts the split's logits to a dense matrix.
//
// Errors: ErrEmptySplit, ErrBadShape for ragged rows.
func (s Split) Matrix() (*mat.Dense, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	n, c := len(s.Logits), len(s.Logits[0])
	out := mat.NewDense(n, c, nil)
	for i, row := range s.Logits {
		out.SetRow(i, row)
	}

	return out, nil
}

// validate checks rectangularity and label range.
func (s Split) validate() error {
	if len(s.Logits) == 0 || len(s.Logits[0]) == 0 {
		return ErrEmptySplit
	}
	c := len(s.Logits[0])
	for _, row := range s.Logits {
		if len(row) != c {
			return ErrBadShape
		}
	}
	if len(s.Labels) != len(s.Logits) {
		return ErrBadShape
	}
	for _, lb := range s.Labels {
		if lb < 0 || lb >= c {
			return ErrBadShape
		}
	}

	return nil
}

// Load reads and validates a split file.
//
// Errors: ErrSchema for a version mismatch, ErrEmptySplit / ErrBadShape
// for malformed splits, plus any I/O or decode error.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out File
	if err = msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, err
	}
	if out.Schema != SchemaVersion {
		return nil, ErrSchema
	}
	if err = out.Val.validate(); err != nil {
		return nil, err
	}
	if err = out.Test.validate(); err != nil {
		return nil, err
	}

	return &out, nil
}

// Save validates and writes the file atomically: encode to a temp file in
// the target directory, then rename into place. The Schema field is set
// by Save; callers never manage it.
func Save(path string, f *File) error {
	f.Schema = SchemaVersion
	if err := f.Val.validate(); err != nil {
		return err
	}
	if err := f.Test.validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "logitio-*.mp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err = msgpack.NewEncoder(tmp).Encode(f); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
