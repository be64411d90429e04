package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/ygelfand/mpvctl/internal/commands"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/media"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/presenters"
)

var statusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Show the player and controller state",
	GroupID: "player",
	RunE: commands.RunWithEngine(func(ctx context.Context, engine *mpv.Engine, cmd *cobra.Command, args []string, opts *commands.MpvCtlOptions) error {
		props := engine.Props()
		state := newWatchedState(media.NewSource(props.Snapshot()), config.Get())
		defer state.Close()

		return commands.Print(&presenters.ControllerPresenter{
			Status: presenters.ControllerStatus{
				Summary: state.Summary(),
				Props:   &props,
			},
		}, opts)
	}),
}

// newWatchedState builds a media state with the configured controller
// policies that auto-shows on playback changes, as the TUI does.
func newWatchedState(p media.Player, cfg *config.Config) *media.MediaState {
	state := media.NewMediaState(p,
		media.WithHideOnTouch(cfg.Controller.HideOnTouch),
		media.WithAutoShow(cfg.Controller.AutoShow),
	)
	state.Subscribe(func(s *media.MediaState) {
		s.Controller().MaybeShow(false)
	})
	state.Controller().MaybeShow(false)
	return state
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
