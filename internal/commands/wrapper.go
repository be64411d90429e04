package commands

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/presenters"
)

// RunnerFunc defines the signature for a command handler that receives an mpv engine
type RunnerFunc func(ctx context.Context, engine *mpv.Engine, cmd *cobra.Command, args []string, opts *MpvCtlOptions) error

// NewEngine builds an engine from the global configuration.
func NewEngine() *mpv.Engine {
	cfg := config.Get()
	return mpv.New(mpv.Options{
		SocketPath: cfg.SocketPath,
		MpvPath:    cfg.MpvPath,
		Args:       cfg.MpvArgs,
		Window:     cfg.MpvWindow,
	})
}

// EnsureMpv checks that there is either a running mpv to connect to or an
// mpv binary to launch.
func EnsureMpv() error {
	cfg := config.Get()
	if _, err := os.Stat(cfg.SocketPath); err == nil {
		return nil
	}
	if _, err := exec.LookPath(cfg.MpvPath); err != nil {
		return fmt.Errorf("no mpv socket at %s and %q is not installed: %w", cfg.SocketPath, cfg.MpvPath, err)
	}
	return nil
}

// CurrentOptions collects the global flags for commands that do not go
// through an engine wrapper.
func CurrentOptions() *MpvCtlOptions {
	return &MpvCtlOptions{
		OutputFormat: viper.GetString("output"),
		Verbosity:    viper.GetInt("verbose"),
		Sort:         viper.GetString("sort"),
	}
}

// RunWithEngine wraps a cobra command RunE function to inject an engine
// connected to an already running mpv.
func RunWithEngine(runner RunnerFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		engine := NewEngine()
		if err := engine.Connect(); err != nil {
			return fmt.Errorf("no running mpv (start one with `mpvctl play`): %w", err)
		}
		defer engine.Close()
		return runner(cmd.Context(), engine, cmd, args, CurrentOptions())
	}
}

// RunWithAttachedEngine is like RunWithEngine but spawns mpv when none is running.
func RunWithAttachedEngine(runner RunnerFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		engine := NewEngine()
		if err := engine.Attach(ctx); err != nil {
			return err
		}
		defer engine.Close()
		return runner(ctx, engine, cmd, args, CurrentOptions())
	}
}

// Print sorts a presenter by --sort (or its default column) and renders it in
// the configured output format.
func Print(p presenters.Presenter, opts *MpvCtlOptions) error {
	sortCol := opts.Sort
	if sortCol == "" {
		sortCol = p.DefaultSort()
	}
	if sortCol != "" && !p.SortBy(sortCol) {
		return fmt.Errorf("cannot sort by %q (sortable: %s)", sortCol, strings.Join(p.SortableColumns(), ", "))
	}
	return presenters.ToOutput(p).Print()
}
