package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hiddengems/internal/logging"
	"hiddengems/internal/supervisor"
)

func newBackendCommand(ctx *commandContext) *cobra.Command {
	backendCmd := &cobra.Command{
		Use:   "backend",
		Short: "Manage the web backend without opening a window",
	}
	backendCmd.AddCommand(newBackendStartCommand(ctx))
	return backendCmd
}

func newBackendStartCommand(ctx *commandContext) *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the backend if it is not already listening",
		Long: "Start the backend if it is not already listening and wait for its port to open.\n" +
			"The backend keeps running after this command exits.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			logger, err := logging.NewFromConfig(cfg, logLevel, "stderr")
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			stdout := cmd.OutOrStdout()
			sup := supervisor.New(supervisor.NewBackendConfig(cfg), logger)
			result := sup.EnsureRunning(cmd.Context())
			if result.Launched {
				fmt.Fprintln(stdout, "Backend not running, launching...")
			}
			switch result.State {
			case supervisor.StateAlreadyRunning:
				fmt.Fprintf(stdout, "Backend already running at %s\n", cfg.BackendAddress())
				return nil
			case supervisor.StateReady:
				fmt.Fprintf(stdout, "Backend started at %s (pid %d)\n", cfg.BackendAddress(), result.PID)
				fmt.Fprintf(stdout, "Output: %s\n", cfg.BackendLogPath())
				return nil
			case supervisor.StateTimedOut:
				fmt.Fprintf(stdout, "Backend process %d is still starting; output: %s\n", result.PID, cfg.BackendLogPath())
			}
			return result.Err
		},
	}
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")
	return cmd
}
