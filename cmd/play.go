package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/ygelfand/mpvctl/internal/commands"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/ui"
)

var headless bool

var playCmd = &cobra.Command{
	Use:     "play <file|url>...",
	Short:   "Play one or more files",
	Args:    cobra.MinimumNArgs(1),
	GroupID: "player",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !headless {
			return runTUI(args)
		}
		return commands.RunWithAttachedEngine(playHeadless)(cmd, args)
	},
}

func playHeadless(ctx context.Context, engine *mpv.Engine, cmd *cobra.Command, args []string, opts *commands.MpvCtlOptions) error {
	slog.Info("Playing", "files", args)
	if err := engine.Load(args...); err != nil {
		return fmt.Errorf("failed to load: %w", err)
	}
	if err := engine.ShowText(fmt.Sprintf("mpvctl: %d item(s) queued", len(args)), 2*time.Second); err != nil {
		slog.Debug("OSD message failed", "error", err)
	}

	ui.RenderSummary("Playing", []struct{ Label, Value string }{
		{"Items", fmt.Sprint(len(args))},
		{"Socket", config.Get().SocketPath},
		{"Detach", "Ctrl+C"},
	})

	select {
	case <-ctx.Done():
	case <-engine.Done():
		slog.Info("mpv exited")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().BoolVar(&headless, "headless", false, "Do not start the controller; wait until mpv exits")
}
