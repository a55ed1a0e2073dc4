// Package cmd holds the command line: serve, tunnel and slit.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"schrodinger/config"
	"schrodinger/logger"
	"schrodinger/model"
)

type rootOptions struct {
	configPath string
	logLevel   string
	params     model.Params
}

// NewRootCommand builds the command tree. Subcommands see the parameters
// loaded from --config in opts.params.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "schrodinger",
		Short:         "Crank-Nicolson propagation of the time-dependent Schrödinger equation",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				p.Log.Level = opts.logLevel
			}
			logger.Init(p.Log.Level, p.Log.Format)
			opts.params = p
			return nil
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "conf/config.ini", "configuration file (empty for built-in defaults)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (overrides config)")

	root.AddCommand(newServeCommand(opts), newTunnelCommand(opts), newSlitCommand(opts))
	return root
}

// Execute runs the command line until it finishes or receives SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
