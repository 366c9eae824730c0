package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Temperature-scaling calibration for classifier logits",
	Long: `calibrate fits temperature parameters that recalibrate classifier
confidence: logits are divided by the fitted temperature(s) before softmax,
closing the gap between reported confidence and empirical accuracy without
moving any prediction made by a row-uniform divisor.

Splits are read from a versioned msgpack file holding a validation part
(fitted on) and a test part (reported on).`,
}

func main() {
	rootCmd.AddCommand(fitCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
