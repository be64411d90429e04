package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/ygelfand/mpvctl/internal/commands"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/media"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/presenters"
)

var watchCmd = &cobra.Command{
	Use:     "watch",
	Short:   "Print controller state changes as they happen",
	GroupID: "player",
	RunE:    commands.RunWithEngine(runWatch),
}

func runWatch(ctx context.Context, engine *mpv.Engine, cmd *cobra.Command, args []string, opts *commands.MpvCtlOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	stop := make(chan struct{})
	defer close(stop)

	// Snapshots arrive on the IPC reader goroutine; the media state is only
	// touched from this one.
	snaps := make(chan media.Snapshot, 16)
	unsubscribe := engine.Subscribe(func(s media.Snapshot) {
		select {
		case snaps <- s:
		case <-stop:
		}
	})
	defer unsubscribe()

	source := media.NewSource(engine.Snapshot())
	state := newWatchedState(source, config.Get())
	defer state.Close()

	last := ""
	emit := func() {
		line := presenters.TransitionLine(state.Summary())
		if line == last {
			return
		}
		last = line
		fmt.Printf("%s %s\n", time.Now().Format(time.TimeOnly), line)
	}
	state.Subscribe(func(*media.MediaState) { emit() })
	state.Controller().Subscribe(func(*media.ControllerState) { emit() })
	emit()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-engine.Done():
			slog.Info("mpv exited")
			state.SetPlayer(nil)
			return nil
		case s := <-snaps:
			source.Set(s)
		}
	}
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
