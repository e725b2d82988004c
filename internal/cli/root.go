// Package cli implements the gamesearch command line.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"gamesearch/internal/config"
	"gamesearch/internal/logger"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	configFile string
	logLevel   string
	logFormat  string

	cfg *config.Config
	log *zap.Logger
}

// NewRootCmd creates the gamesearch command tree.
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:   "gamesearch",
		Short: "Search Steam games and gather their Linux compatibility data",
		Long: `gamesearch looks up games on the Steam store and, for every match, gathers
details, ProtonDB rating, Steam Deck compatibility and DLCs concurrently.

Results can be printed once with "search" or served over HTTP with "serve".`,
		// Don't show usage when there's an error
		SilenceUsage: true,
		// Don't show errors (we'll handle them ourselves)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.log != nil {
				_ = opts.log.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default ./config.yaml or $HOME/.gamesearch/config.yaml)")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: json, text or none")

	root.AddCommand(newSearchCmd(opts))
	root.AddCommand(newServeCmd(opts))

	return root
}

// load reads the configuration and builds the logger. Flags take
// precedence over the config file and the environment.
func (o *globalOptions) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.LogFormat = o.logFormat
	}

	log, err := logger.New(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}

	o.cfg = cfg
	o.log = log
	return nil
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}
