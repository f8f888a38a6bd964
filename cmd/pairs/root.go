package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Bhuwann/pair-trading-app/internal/config"
	"github.com/Bhuwann/pair-trading-app/internal/util"
)

type rootOptions struct {
	configPath string
	logLevel   string
	pretty     bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "pairs",
		Short:         "Compare two tickers and backtest a z-score pairs strategy on their spread",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to YAML config (defaults plus PAIRS_* env when empty)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override log level")
	root.PersistentFlags().BoolVar(&opts.pretty, "pretty", false, "human readable logs")

	root.AddCommand(newCompareCmd(opts), newConfigCmd(opts))
	return root
}

// setup loads configuration and builds the logger every subcommand uses.
func (o *rootOptions) setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	level := cfg.App.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	return cfg, util.NewLoggerTo(cmd.ErrOrStderr(), level, o.pretty), nil
}
