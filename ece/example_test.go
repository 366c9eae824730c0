package ece_test

import (
	"fmt"

	"github.com/kalibr/tempscale/ece"
)

// ExampleEqualWidth scores a small batch whose confidences overshoot its
// accuracy in every bin.
func ExampleEqualWidth() {
	conf := []float64{0.3, 0.4, 0.8, 0.9}
	correct := []bool{true, false, true, true}

	e, err := ece.EqualWidth(conf, correct, 2)
	if err != nil {
		fmt.Println("ece:", err)
		return
	}
	fmt.Printf("ece=%.2f\n", e)
	// Output:
	// ece=0.15
}

// ExampleBreakdown inspects the per-bin diagnostics behind the scalar.
func ExampleBreakdown() {
	conf := []float64{0.3, 0.4, 0.8, 0.9}
	correct := []bool{true, false, true, true}

	total, stats, err := ece.Breakdown(conf, correct, []float64{0, 0.5, 1})
	if err != nil {
		fmt.Println("breakdown:", err)
		return
	}
	fmt.Printf("total=%.2f\n", total)
	for _, st := range stats {
		fmt.Printf("bin %d: acc=%.2f conf=%.2f\n", st.Bin, st.Accuracy, st.MeanConfidence)
	}
	// Output:
	// total=0.15
	// bin 0: acc=0.50 conf=0.35
	// bin 1: acc=1.00 conf=0.85
}
