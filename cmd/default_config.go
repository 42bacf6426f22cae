package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/brewsim/brewsim/sim/brewery"
)

// defaultsCmd prints the built-in configuration as YAML, ready to be edited
// and passed back with --config.
var defaultsCmd = &cobra.Command{
	Use:   "defaults",
	Short: "Print the default brewery configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := yaml.Marshal(brewery.DefaultConfig())
		if err != nil {
			return fmt.Errorf("encoding defaults: %w", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

// resolveConfig loads path over the defaults (or the defaults alone when path
// is empty) and applies the flags the user set explicitly. Flags left at
// their defaults never overwrite values from the file.
func resolveConfig(cmd *cobra.Command, path string) (brewery.Config, error) {
	cfg := brewery.DefaultConfig()
	if path != "" {
		loaded, err := brewery.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
		logrus.Infof("Loaded brewery config from %s", path)
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.Horizon = horizon
	}
	if flags.Changed("tank-policy") {
		cfg.Brewhouse.TankPolicy = tankPolicy
	}
	if flags.Changed("continuous") {
		cfg.Brewhouse.Continuous = continuous
	}
	if flags.Changed("trace") {
		cfg.Trace = traceLevel
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid brewery config: %w", err)
	}
	return cfg, nil
}
