package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ygelfand/mpvctl/internal/media"
	"github.com/ygelfand/mpvctl/internal/ui"
)

func (c *Controller) renderBaseView() string {
	layout := ui.GetLayout()
	if layout.TotalWidth() == 0 {
		return "Initializing..."
	}

	width := layout.TotalWidth()
	surfaceHeight := layout.SurfaceHeight()

	surface := lipgloss.NewStyle().
		Width(width).
		Height(surfaceHeight).
		Align(lipgloss.Center, lipgloss.Center).
		Render(c.renderSurface())

	ctl := c.state.Controller()
	switch ctl.Visibility() {
	case media.Visible:
		surface = ui.OverlayBottom(surface, c.renderController(), width, surfaceHeight)
	case media.PartiallyVisible:
		surface = ui.OverlayBottom(surface, c.renderProgress(width), width, surfaceHeight)
	}

	footer := lipgloss.NewStyle().
		Width(width).
		Background(c.theme.BrightBlack()).
		Foreground(c.theme.White()).
		Padding(0, 1).
		Render(" q: quit | enter: controller | space: play/pause | ←/→: seek | s: settings | ?: help ")

	return lipgloss.JoinVertical(lipgloss.Left, surface, footer)
}

// renderSurface draws what sits behind the controller: the title while
// something is loaded, otherwise the connection state.
func (c *Controller) renderSurface() string {
	dim := lipgloss.NewStyle().Foreground(c.theme.BrightBlack())
	snap, attached := c.state.PlayerState()
	switch {
	case !attached:
		return dim.Render("mpv not connected (r to reconnect)")
	case snap.TimelineEmpty:
		return dim.Render("nothing loaded")
	}
	title := c.props.Title
	if title == "" {
		title = "untitled"
	}
	return lipgloss.NewStyle().
		Foreground(c.theme.BrightYellow()).
		Bold(true).
		Render(ui.Ellipsis(title, max(ui.GetLayout().ControllerWidth(), 10)))
}

func (c *Controller) statusGlyph() string {
	snap, attached := c.state.PlayerState()
	switch {
	case !attached || snap.PlaybackState == media.StateIdle:
		return c.glyphs.Idle
	case snap.PlaybackState == media.StateEnded:
		return c.glyphs.Ended
	case snap.PlaybackState == media.StateBuffering:
		return c.glyphs.Buffering
	case c.state.Controller().ShowPause():
		// Playing: offer pause.
		return c.glyphs.Pause
	}
	return c.glyphs.Play
}

func (c *Controller) renderController() string {
	layout := ui.GetLayout()
	width := layout.ControllerWidth()
	accent := ui.Accent(c.theme)

	title := lipgloss.NewStyle().
		Foreground(c.theme.BrightYellow()).
		Bold(true).
		Render(ui.Ellipsis(c.props.Title, width))

	timeStr := fmt.Sprintf("%s / %s", ui.FormatDuration(c.props.TimePos), ui.FormatDuration(c.props.Duration))
	glyph := lipgloss.NewStyle().Foreground(c.theme.BrightCyan()).Width(4).Render(c.statusGlyph())
	timeCol := lipgloss.NewStyle().Width(len(timeStr) + 1).Align(lipgloss.Right).Render(timeStr)
	barWidth := max(width-lipgloss.Width(glyph)-lipgloss.Width(timeCol), 10)

	row := lipgloss.JoinHorizontal(lipgloss.Center, glyph, c.renderBar(barWidth), timeCol)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(accent).
		Width(layout.TotalWidth()-2).
		Padding(0, 1).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, row))
}

// renderProgress is the single-row controller shown after a seek.
func (c *Controller) renderProgress(width int) string {
	timeStr := " " + ui.FormatDuration(c.props.TimePos)
	return c.renderBar(max(width-lipgloss.Width(timeStr), 1)) + timeStr
}

func (c *Controller) renderBar(width int) string {
	filled := int(float64(width) * c.props.Progress())
	empty := width - filled
	return lipgloss.NewStyle().Foreground(ui.Accent(c.theme)).Render(strings.Repeat("█", max(filled, 0))) +
		lipgloss.NewStyle().Foreground(c.theme.BrightBlack()).Render(strings.Repeat("░", max(empty, 0)))
}
