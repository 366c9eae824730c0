package main

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/kalibr/tempscale/temper"
)

// fitConfig mirrors the fit command's flags; a toml file may supply any
// subset and explicitly set flags win over it.
type fitConfig struct {
	NumBins       int     `toml:"num_bins"`
	Iters         int     `toml:"iters"`
	InitTemp      float64 `toml:"init_temp"`
	Scope         string  `toml:"scope"`
	CVError       string  `toml:"cverror"`
	Acc           bool    `toml:"acc"`
	Seed          int64   `toml:"seed"`
	MinBinSamples int     `toml:"min_bin_samples"`
}

// defaultFitConfig matches temper.DefaultOptions.
func defaultFitConfig() fitConfig {
	o := temper.DefaultOptions()

	return fitConfig{
		NumBins:       o.Bins,
		Iters:         o.MaxIters,
		InitTemp:      o.InitTemp,
		Scope:         "global",
		CVError:       "equal-width",
		Acc:           o.AccuracyGuard,
		Seed:          o.Seed,
		MinBinSamples: o.MinBinSamples,
	}
}

// loadFitConfig overlays a toml file onto the defaults.
func loadFitConfig(path string) (fitConfig, error) {
	cfg := defaultFitConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// parseScope maps the flag vocabulary onto temper scopes.
func parseScope(s string) (temper.Scope, error) {
	switch s {
	case "global":
		return temper.ScopeGlobal, nil
	case "class":
		return temper.ScopePerClass, nil
	case "bin":
		return temper.ScopePerBin, nil
	default:
		return 0, fmt.Errorf("unknown scope %q (want global|class|bin)", s)
	}
}

// parseObjective maps the flag vocabulary onto temper objectives.
func parseObjective(s string) (temper.Objective, error) {
	switch s {
	case "equal-width":
		return temper.ObjectiveEqualWidth, nil
	case "adaptive":
		return temper.ObjectiveAdaptive, nil
	default:
		return 0, fmt.Errorf("unknown cverror %q (want equal-width|adaptive)", s)
	}
}
