package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/faizmokh/jalan/internal/files"
	"github.com/faizmokh/jalan/internal/trip"
	"github.com/faizmokh/jalan/internal/ui"
	"github.com/faizmokh/jalan/internal/version"
)

// DebugEnv enables TUI debug logging to <base>/debug.log when set.
const DebugEnv = "JALAN_DEBUG"

// NewRootCommand creates the top-level Cobra command to host subcommands and TUI launcher.
func NewRootCommand(ctx context.Context, planner *trip.Planner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jalan",
		Short:   "Plan balanced days and count down the rest of your city stay.",
		Version: version.Info(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := os.LookupEnv(DebugEnv); ok {
				if err := planner.Manager().EnsureBase(); err != nil {
					return err
				}
				logFile, err := tea.LogToFile(planner.Manager().DebugLogPath(), "jalan")
				if err != nil {
					return fmt.Errorf("open debug log: %w", err)
				}
				defer logFile.Close()
				log.Printf("starting TUI, base=%s", planner.Manager().BasePath())
			} else {
				log.SetOutput(io.Discard)
			}

			m := ui.NewModel(ctx, planner)
			if _, err := tea.NewProgram(m).Run(); err != nil {
				return fmt.Errorf("run TUI: %w", err)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(
		newTodayCommand(ctx, planner),
		newGenerateCommand(ctx, planner),
		newToggleCommand(ctx, planner),
		newListCommand(ctx, planner),
		newCountdownCommand(planner),
		newDepartCommand(planner),
		newStatsCommand(planner),
		newDiscoverCommand(planner),
		newVersionCommand(),
	)

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build metadata.",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jalan %s\n", version.Info())
		},
	}
}

// ExecuteCommand is a thin wrapper that executes the Cobra root command.
func ExecuteCommand(ctx context.Context) error {
	manager, err := files.NewManager("")
	if err != nil {
		return err
	}
	planner, err := trip.Open(manager)
	if err != nil {
		return err
	}
	cmd := NewRootCommand(ctx, planner)
	return cmd.ExecuteContext(ctx)
}

// Main is a helper used by cmd/jalan/main.go to keep wiring contained in one package.
func Main(ctx context.Context) {
	if err := ExecuteCommand(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
