package presenters

import (
	"fmt"
	"strings"

	"github.com/ygelfand/mpvctl/internal/media"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/ui"
)

// ControllerStatus is the printable state of the player and its controller.
type ControllerStatus struct {
	Summary media.Summary `json:"controller" yaml:"controller"`
	Props   *mpv.Props    `json:"mpv,omitempty" yaml:"mpv,omitempty"`
}

// ControllerPresenter formats the controller state as a field/value table
type ControllerPresenter struct {
	Status ControllerStatus

	sorted bool
}

func (p *ControllerPresenter) Title() string {
	return "Controller"
}

func (p *ControllerPresenter) Headers() []string {
	return []string{"FIELD", "VALUE"}
}

func (p *ControllerPresenter) Rows() [][]string {
	s := p.Status.Summary
	rows := [][]string{
		{"attached", yesNo(s.Attached)},
	}
	if s.Player != nil {
		rows = append(rows,
			[]string{"playback_state", s.Player.PlaybackState.String()},
			[]string{"play_when_ready", yesNo(s.Player.PlayWhenReady)},
			[]string{"timeline_empty", yesNo(s.Player.TimelineEmpty)},
		)
	}
	rows = append(rows,
		[]string{"visibility", s.Visibility.String()},
		[]string{"showing", yesNo(s.Showing)},
		[]string{"hide_on_touch", yesNo(s.HideOnTouch)},
		[]string{"auto_show", yesNo(s.AutoShow)},
		[]string{"should_show_indefinitely", yesNo(s.ShouldShowIndefinitely)},
		[]string{"show_pause", yesNo(s.ShowPause)},
	)
	if props := p.Status.Props; props != nil {
		rows = append(rows,
			[]string{"title", props.Title},
			[]string{"position", fmt.Sprintf("%s / %s", ui.FormatDuration(props.TimePos), ui.FormatDuration(props.Duration))},
			[]string{"playlist_count", fmt.Sprint(props.PlaylistCount)},
		)
	}
	if p.sorted {
		sortRows(rows, 0)
	}
	return rows
}

func (p *ControllerPresenter) Raw() interface{} {
	return p.Status
}

// SortableColumns only offers FIELD; by default rows follow the player,
// then controller, then media grouping.
func (p *ControllerPresenter) SortableColumns() []string { return []string{"FIELD"} }
func (p *ControllerPresenter) DefaultSort() string       { return "" }

func (p *ControllerPresenter) SortBy(column string) bool {
	if columnIndex(p.SortableColumns(), column) < 0 {
		return false
	}
	p.sorted = true
	return true
}

// TransitionLine renders one line of `mpvctl watch` output.
func TransitionLine(s media.Summary) string {
	var b strings.Builder
	state := "detached"
	if s.Player != nil {
		state = s.Player.PlaybackState.String()
		if !s.Player.PlayWhenReady {
			state += "/paused"
		}
	}
	fmt.Fprintf(&b, "player=%s visibility=%s show_pause=%v indefinite=%v",
		state, s.Visibility, s.ShowPause, s.ShouldShowIndefinitely)
	return b.String()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
