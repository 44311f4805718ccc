// Package cli implements the flowtrace command line.
package cli

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/flowtrace/internal/config"
	"github.com/katalvlaran/flowtrace/internal/logging"
)

// Build information, injected at link time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	noColor    bool

	cfg *config.Config
	log zerolog.Logger
}

// NewRootCommand assembles the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{cfg: config.Default(), log: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "flowtrace",
		Short: "flowtrace - replayable max-flow traces",
		Long: `flowtrace computes maximum flow with Edmonds-Karp, Dinic or
highest-label Push-Relabel and records every algorithmic step.

Examples:
  # Trace Dinic on a built-in network
  flowtrace run --preset textbook --algorithm dinic

  # Show the network state after the second record
  flowtrace run --file network.yaml --step 1

  # Run all engines side by side
  flowtrace compare --preset dense-graph

  # Serve the HTTP API
  flowtrace serve --addr :8080`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to a YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable coloured output")

	root.AddCommand(a.runCommand())
	root.AddCommand(a.compareCommand())
	root.AddCommand(a.presetsCommand())
	root.AddCommand(a.serveCommand())
	root.AddCommand(versionCommand())

	return root
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

// setup loads the configuration, applies flag overrides and configures logging.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if cmd.Flags().Changed("no-color") {
		cfg.Log.NoColor = a.noColor
	}
	if err = cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.Setup(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.NoColor)
	if err != nil {
		return err
	}
	if cfg.Log.NoColor {
		color.NoColor = true
	}
	a.cfg, a.log = cfg, logger

	return nil
}
