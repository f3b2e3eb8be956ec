package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hiddengems/internal/desktop"
)

type runOptions struct {
	headless    bool
	logLevel    string
	development bool
}

func (o *runOptions) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.headless, "headless", false, "Supervise the backend without opening a window")
	cmd.Flags().StringVar(&o.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	cmd.Flags().BoolVar(&o.development, "dev", false, "Include source locations in log output")
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the backend if needed and open the application window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDesktop(cmd, ctx, opts)
		},
	}
	opts.register(cmd)
	return cmd
}

func runDesktop(cmd *cobra.Command, ctx *commandContext, opts *runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return desktop.Run(cmd.Context(), cfg, desktop.Options{
		LogLevel:    opts.logLevel,
		Development: opts.development,
		Headless:    opts.headless,
		ConfigPath:  ctx.loadedConfigPath(),
	})
}
