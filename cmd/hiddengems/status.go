package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"hiddengems/internal/config"
	"hiddengems/internal/deps"
	"hiddengems/internal/netprobe"
	"hiddengems/internal/process"
	"hiddengems/internal/supervisor"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

type backendStatus struct {
	reachable  bool
	launching  bool
	executable string
	resolveErr error
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether the backend is reachable and what would be launched",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			status := inspectBackend(cmd, cfg)

			stdout := cmd.OutOrStdout()
			colorize := shouldColorize(stdout)
			fmt.Fprintln(stdout, statusHeadline(cfg, status, colorize))
			fmt.Fprintln(stdout, renderTable([]string{"Setting", "Value"}, statusRows(ctx, cfg, status)))
			fmt.Fprintln(stdout)
			fmt.Fprintln(stdout, renderTable([]string{"Dependency", "Status", "Detail"},
				dependencyRows(deps.Launcher(cfg.Backend.Candidates, cfg.Backend.BaseDir), colorize)))
			return nil
		},
	}
}

func inspectBackend(cmd *cobra.Command, cfg *config.Config) backendStatus {
	var status backendStatus
	status.reachable = netprobe.Probe(cmd.Context(), cfg.Backend.Host, cfg.Backend.Port, cfg.ProbeTimeout())
	if !status.reachable {
		if busy, err := supervisor.LaunchInProgress(cfg.LockPath()); err == nil {
			status.launching = busy
		}
	}
	status.executable, status.resolveErr = process.NewResolver(cfg.Backend.Candidates).Resolve(cfg.Backend.BaseDir)
	return status
}

func statusHeadline(cfg *config.Config, status backendStatus, colorize bool) string {
	var line, color string
	switch {
	case status.reachable:
		line, color = fmt.Sprintf("Backend running at %s", cfg.BackendAddress()), ansiGreen
	case status.launching:
		line, color = fmt.Sprintf("Backend starting at %s (another launcher holds the lock)", cfg.BackendAddress()), ansiYellow
	case status.resolveErr != nil:
		line, color = fmt.Sprintf("Backend not reachable at %s and no executable found", cfg.BackendAddress()), ansiRed
	default:
		line, color = fmt.Sprintf("Backend not reachable at %s", cfg.BackendAddress()), ansiYellow
	}
	if colorize {
		return color + line + ansiReset
	}
	return line
}

func statusRows(ctx *commandContext, cfg *config.Config, status backendStatus) [][]string {
	executable := status.executable
	if status.resolveErr != nil {
		executable = "not found"
	}
	configPath := ctx.loadedConfigPath()
	if configPath == "" {
		configPath = "(defaults)"
	}
	return [][]string{
		{"Address", cfg.BackendAddress()},
		{"Reachable", yesNo(status.reachable)},
		{"Executable", executable},
		{"Base dir", cfg.Backend.BaseDir},
		{"Window URL", cfg.Window.URL},
		{"Config", configPath},
		{"Backend log", cfg.BackendLogPath()},
	}
}

func dependencyRows(statuses []deps.Status, colorize bool) [][]string {
	rows := make([][]string, 0, len(statuses))
	for _, st := range statuses {
		label, color := "OK", ansiGreen
		detail := st.Command
		if !st.Available {
			label, color, detail = "MISSING", ansiRed, st.Detail
			if st.Optional {
				label, color = "OPTIONAL", ansiYellow
			}
		}
		if colorize {
			label = color + label + ansiReset
		}
		rows = append(rows, []string{st.Name, label, detail})
	}
	return rows
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
