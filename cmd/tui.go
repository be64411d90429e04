package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/ygelfand/mpvctl/internal/commands"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Short:   "Launch the interactive controller",
	GroupID: "tui",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(nil)
	},
}

// runTUI attaches to mpv, optionally loads files, and runs the controller
// until the user quits.
func runTUI(files []string) error {
	config.IsTUI = true
	cfg := config.Get()
	// Always log TUI sessions to a file for easier debugging
	cfg.LogFile = filepath.Join(cfg.CacheDir, "tui.log")
	cfg.SetupLogging()
	slog.Info("TUI Starting", "log_file", cfg.LogFile, "verbosity", cfg.Verbosity, "socket", cfg.SocketPath)

	engine := commands.NewEngine()
	if err := engine.Attach(context.Background()); err != nil {
		slog.Error("TUI: Failed to attach to mpv", "error", err)
		return err
	}
	defer engine.Close()

	if len(files) > 0 {
		if err := engine.Load(files...); err != nil {
			return err
		}
	}

	return runProgram(engine, cfg)
}

func runProgram(engine *mpv.Engine, cfg *config.Config) error {
	slog.Debug("TUI: Initializing controller and program")
	p := tea.NewProgram(tui.NewController(engine, cfg), tea.WithAltScreen(), tea.WithMouseCellMotion())

	// Reloads arrive on the watcher goroutine; the program applies them on its own.
	if err := cfg.Watch(func(cc config.ControllerConfig) {
		p.Send(tui.ControllerConfigMsg{Config: cc})
	}); err != nil {
		slog.Warn("TUI: config reload disabled", "error", err)
	}

	if _, err := p.Run(); err != nil {
		slog.Error("TUI: Program run failed", "error", err)
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	slog.Info("TUI Finished normally")
	return nil
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
