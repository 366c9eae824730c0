package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/ece"
	"github.com/kalibr/tempscale/logits"
	"github.com/kalibr/tempscale/temper"
)

// reporter renders the fit result for the terminal. quiet disables color
// so output stays pipeline-friendly.
type reporter struct {
	quiet bool
	bins  int
}

// metrics is one split's calibration summary.
type metrics struct {
	ewECE float64
	adECE float64
	cwECE float64
	acc   float64
}

func (r reporter) print(w io.Writer, res *temper.Result, before, after *mat.Dense, labels []int) error {
	if r.quiet {
		color.NoColor = true
	}
	head := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	pre, err := r.measure(before, labels)
	if err != nil {
		return err
	}
	post, err := r.measure(after, labels)
	if err != nil {
		return err
	}

	head.Fprintln(w, "calibration (test split)")
	fmt.Fprintf(w, "  %-18s %10s %10s\n", "metric", "before", "after")
	fmt.Fprintf(w, "  %-18s %10.5f %10.5f\n", "ece (equal-width)", pre.ewECE, post.ewECE)
	fmt.Fprintf(w, "  %-18s %10.5f %10.5f\n", "ece (adaptive)", pre.adECE, post.adECE)
	fmt.Fprintf(w, "  %-18s %10.5f %10.5f\n", "ece (classwise)", pre.cwECE, post.cwECE)
	fmt.Fprintf(w, "  %-18s %10.5f %10.5f\n", "accuracy", pre.acc, post.acc)

	head.Fprintln(w, "temperatures")
	switch res.Scope {
	case temper.ScopeGlobal:
		fmt.Fprintf(w, "  scalar: %.4f\n", res.Temperature)
	case temper.ScopePerClass:
		fmt.Fprintf(w, "  per-class: %s\n", formatVec(res.ClassTemps))
	case temper.ScopePerBin:
		fmt.Fprintf(w, "  per-bin: %s\n", formatVec(res.BinTemps))
		fmt.Fprintf(w, "  boundaries: %s\n", formatVec(res.Boundaries))
	}

	head.Fprintln(w, "search")
	fmt.Fprintf(w, "  trace: %s\n", formatVec(res.Trace))
	fmt.Fprintf(w, "  best iteration: %d\n", res.BestIter)
	if res.Converged {
		good.Fprintln(w, "  converged")
	} else {
		warn.Fprintln(w, "  iteration cap reached")
	}

	if len(res.Breakdown) > 0 {
		head.Fprintln(w, "per-bin breakdown (validation split, fitted)")
		fmt.Fprintf(w, "  %4s %8s %8s %6s %8s %8s\n",
			"bin", "lower", "upper", "n", "acc", "conf")
		for _, st := range res.Breakdown {
			fmt.Fprintf(w, "  %4d %8.4f %8.4f %6d %8.4f %8.4f\n",
				st.Bin, st.Lower, st.Upper, st.Samples, st.Accuracy, st.MeanConfidence)
		}
	}

	return nil
}

// measure computes the summary metrics of one logit matrix.
func (r reporter) measure(l *mat.Dense, labels []int) (metrics, error) {
	var m metrics
	var err error
	if m.ewECE, err = ece.EqualWidthLogits(l, labels, r.bins); err != nil {
		return m, err
	}
	if m.adECE, err = ece.AdaptiveLogits(l, labels, r.bins); err != nil {
		return m, err
	}
	if m.cwECE, _, err = ece.Classwise(l, labels, r.bins); err != nil {
		return m, err
	}
	_, pred := logits.Confidences(l)
	if m.acc, err = logits.Accuracy(pred, labels); err != nil {
		return m, err
	}

	return m, nil
}

// formatVec renders a float slice compactly.
func formatVec(v []float64) string {
	out := "["
	for i, x := range v {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%.4f", x)
	}

	return out + "]"
}
