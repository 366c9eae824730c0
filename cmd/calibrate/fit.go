package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/kalibr/tempscale/binning"
	"github.com/kalibr/tempscale/logitio"
	"github.com/kalibr/tempscale/logits"
	"github.com/kalibr/tempscale/temper"
)

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "Fit temperatures on the validation split and report on the test split",
	Long: `Fit searches the temperature grid on the validation split at the chosen
scope (global scalar, per-class vector, or per-bin vector), then applies
the result to the test split and reports calibration before and after.`,
	RunE: runFit,
}

func init() {
	fitCmd.Flags().String("logits", "", "path to the msgpack split file (required)")
	fitCmd.Flags().Int("num-bins", 0, "confidence bins for the objective")
	fitCmd.Flags().Int("iters", 0, "iteration cap")
	fitCmd.Flags().Float64("init-temp", 0, "seed temperature when warm start is off")
	fitCmd.Flags().String("scope", "", "optimization scope (global|class|bin)")
	fitCmd.Flags().String("cverror", "", "objective (equal-width|adaptive)")
	fitCmd.Flags().Bool("acc", false, "reject candidates that lower argmax accuracy")
	fitCmd.Flags().Int64("seed", 0, "seed for tie spreading (0 = fixed default)")
	fitCmd.Flags().Int("min-bin-samples", 0, "bins under this population are smoothed, not searched")
	fitCmd.Flags().String("config", "", "toml file supplying flag defaults")
	fitCmd.Flags().Bool("quiet", false, "plain uncolored output")

	_ = fitCmd.MarkFlagRequired("logits")
}

func runFit(cmd *cobra.Command, _ []string) error {
	cfgPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	cfg, err := loadFitConfig(cfgPath)
	if err != nil {
		return err
	}
	overlayFlags(cmd, &cfg)

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return err
	}
	path, err := cmd.Flags().GetString("logits")
	if err != nil {
		return err
	}

	scope, err := parseScope(cfg.Scope)
	if err != nil {
		return err
	}
	objective, err := parseObjective(cfg.CVError)
	if err != nil {
		return err
	}

	file, err := logitio.Load(path)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	val, err := file.Val.Matrix()
	if err != nil {
		return err
	}
	test, err := file.Test.Matrix()
	if err != nil {
		return err
	}

	opts := []temper.Option{
		temper.WithScope(scope),
		temper.WithObjective(objective),
		temper.WithBins(cfg.NumBins),
		temper.WithMaxIters(cfg.Iters),
		temper.WithInitTemp(cfg.InitTemp),
		temper.WithAccuracyGuard(cfg.Acc),
		temper.WithSeed(cfg.Seed),
		temper.WithMinBinSamples(cfg.MinBinSamples),
	}
	if cmd.Flags().Changed("init-temp") {
		opts = append(opts, temper.WithWarmStart(false))
	}

	res, err := temper.Solve(val, file.Val.Labels, opts...)
	if err != nil {
		return fmt.Errorf("solve: %w", err)
	}

	scaled, err := applyResult(test, res)
	if err != nil {
		return fmt.Errorf("apply to test split: %w", err)
	}

	rep := reporter{quiet: quiet, bins: cfg.NumBins}

	return rep.print(cmd.OutOrStdout(), res, test, scaled, file.Test.Labels)
}

// overlayFlags copies explicitly set flags over the config values.
func overlayFlags(cmd *cobra.Command, cfg *fitConfig) {
	f := cmd.Flags()
	if f.Changed("num-bins") {
		cfg.NumBins, _ = f.GetInt("num-bins")
	}
	if f.Changed("iters") {
		cfg.Iters, _ = f.GetInt("iters")
	}
	if f.Changed("init-temp") {
		cfg.InitTemp, _ = f.GetFloat64("init-temp")
	}
	if f.Changed("scope") {
		cfg.Scope, _ = f.GetString("scope")
	}
	if f.Changed("cverror") {
		cfg.CVError, _ = f.GetString("cverror")
	}
	if f.Changed("acc") {
		cfg.Acc, _ = f.GetBool("acc")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("min-bin-samples") {
		cfg.MinBinSamples, _ = f.GetInt("min-bin-samples")
	}
}

// applyResult scales the test split with the fitted parameterization.
//
// Per-bin temperatures transfer by assigning each test confidence to the
// fitted boundaries and looking up its bin's divisor.
func applyResult(test *mat.Dense, res *temper.Result) (*mat.Dense, error) {
	switch res.Scope {
	case temper.ScopeGlobal:
		return logits.ScaleScalar(test, res.Temperature)
	case temper.ScopePerClass:
		return logits.ScaleColumns(test, res.ClassTemps)
	case temper.ScopePerBin:
		conf, _ := logits.Confidences(test)
		assign, err := binning.Assign(conf, res.Boundaries)
		if err != nil {
			return nil, err
		}
		n, _ := test.Dims()
		temps := make([]float64, n)
		for s, b := range assign {
			temps[s] = res.BinTemps[b]
		}

		return logits.ScaleRows(test, temps)
	default:
		return nil, temper.ErrUnsupportedScope
	}
}
