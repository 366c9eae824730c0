package logits

// Correctness returns, per sample, whether the prediction matches the true
// label.
//
// Errors: ErrEmptyInput, ErrShapeMismatch.
func Correctness(pred, labels []int) ([]bool, error) {
	if len(pred) == 0 {
		return nil, ErrEmptyInput
	}
	if len(pred) != len(labels) {
		return nil, ErrShapeMismatch
	}
	out := make([]bool, len(pred))
	for i := range pred {
		out[i] = pred[i] == labels[i]
	}

	return out, nil
}

// Accuracy returns the fraction of samples whose prediction matches the
// true label.
//
// Errors: ErrEmptyInput, ErrShapeMismatch.
func Accuracy(pred, labels []int) (float64, error) {
	correct, err := Correctness(pred, labels)
	if err != nil {
		return 0, err
	}
	hits := 0
	for _, ok := range correct {
		if ok {
			hits++
		}
	}

	return float64(hits) / float64(len(pred)), nil
}

// Confusion builds the C×C confusion matrix: entry [t][p] counts samples
// with true label t predicted as p.
//
// Errors: ErrEmptyInput, ErrShapeMismatch, ErrBadLabel when any label or
// prediction falls outside [0, classes).
func Confusion(pred, labels []int, classes int) ([][]int, error) {
	if len(pred) == 0 {
		return nil, ErrEmptyInput
	}
	if len(pred) != len(labels) || classes <= 0 {
		return nil, ErrShapeMismatch
	}
	cm := make([][]int, classes)
	for i := range cm {
		cm[i] = make([]int, classes)
	}
	for i := range pred {
		if labels[i] < 0 || labels[i] >= classes || pred[i] < 0 || pred[i] >= classes {
			return nil, ErrBadLabel
		}
		cm[labels[i]][pred[i]]++
	}

	return cm, nil
}
