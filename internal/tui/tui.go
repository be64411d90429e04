package tui

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/media"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/tui/widget/help"
	"github.com/ygelfand/mpvctl/internal/tui/widget/settings"
	"github.com/ygelfand/mpvctl/internal/ui"
	"go.dalton.dog/bubbleup"
)

const (
	seekStep    = 5
	seekBigStep = 60
)

// Engine is the part of the mpv engine the TUI drives.
type Engine interface {
	Props() mpv.Props
	Updates() <-chan struct{}
	Done() <-chan struct{}
	Attach(ctx context.Context) error
	TogglePause() error
	Seek(seconds float64) error
	Stop() error
	Quit() error
}

type (
	engineUpdateMsg   struct{}
	engineClosedMsg   struct{}
	engineAttachedMsg struct{}
	hideTickMsg       struct{ gen int }

	// ControllerConfigMsg carries controller settings reloaded from disk.
	ControllerConfigMsg struct {
		Config config.ControllerConfig
	}
)

type Controller struct {
	cfg    *config.Config
	engine Engine

	source *media.Source
	state  *media.MediaState

	navigator *Navigator
	alert     bubbleup.AlertModel
	theme     tint.Tint
	glyphs    ui.Glyphs

	props   mpv.Props
	hideGen int
	rearm   bool
}

func NewController(engine Engine, cfg *config.Config) *Controller {
	theme := ui.ThemeByID(cfg.Theme)
	ui.GetLayout().SetTheme(theme)

	alert := bubbleup.NewAlertModel(40, true, 10*time.Second).
		WithPosition(bubbleup.TopRightPosition)
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       "error",
		ForeColor: "#FF0000",
		Prefix:    "✗ ",
	})
	alert.RegisterNewAlertType(bubbleup.AlertDefinition{
		Key:       "info",
		ForeColor: "#5bc0de",
		Prefix:    "• ",
	})

	c := &Controller{
		cfg:       cfg,
		engine:    engine,
		navigator: NewNavigator(),
		alert:     alert,
		theme:     theme,
		glyphs:    ui.GlyphsFor(cfg.IconType),
		props:     engine.Props(),
	}

	c.source = media.NewSource(c.props.Snapshot())
	c.state = media.NewMediaState(c.source,
		media.WithHideOnTouch(cfg.Controller.HideOnTouch),
		media.WithAutoShow(cfg.Controller.AutoShow),
	)
	c.state.Subscribe(func(s *media.MediaState) {
		// Playback changes (pause, end, detach) may call for the controller.
		s.Controller().MaybeShow(false)
	})
	c.state.Controller().Subscribe(func(*media.ControllerState) {
		c.hideGen++
		c.rearm = true
	})
	c.state.Controller().MaybeShow(false)
	return c
}

// State exposes the media state owned by the controller.
func (c *Controller) State() *media.MediaState {
	return c.state
}

func (c *Controller) Init() tea.Cmd {
	return tea.Batch(c.waitForEngine(), c.alert.Init(), c.scheduleHide())
}

func (c *Controller) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := c.update(msg)
	return c, tea.Batch(cmd, c.scheduleHide())
}

func (c *Controller) update(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd

	if err, ok := msg.(error); ok {
		slog.Error("TUI error", "error", err, "stack", string(debug.Stack()))
		cmds = append(cmds, c.alert.NewAlertCmd("error", err.Error()))
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		ui.GetLayout().Update(msg.Width, msg.Height)

	case settings.SettingsFinishedMsg:
		c.applyConfig(msg.Config)
		return nil

	case ui.ThemeChangedMsg:
		c.setTheme(msg.Theme)
		return nil

	case ControllerConfigMsg:
		c.cfg.Controller = msg.Config
		c.applyConfig(c.cfg)
		return c.alert.NewAlertCmd("info", "controller settings reloaded")

	case engineUpdateMsg:
		c.props = c.engine.Props()
		if c.source != nil {
			c.source.Set(c.props.Snapshot())
		}
		return c.waitForEngine()

	case engineClosedMsg:
		slog.Info("TUI: mpv disconnected")
		c.props = mpv.Props{}
		c.source = nil
		c.state.SetPlayer(nil)
		return c.alert.NewAlertCmd("info", "mpv disconnected, press r to reconnect")

	case engineAttachedMsg:
		slog.Info("TUI: mpv attached")
		c.props = c.engine.Props()
		c.source = media.NewSource(c.props.Snapshot())
		c.state.SetPlayer(c.source)
		return c.waitForEngine()

	case hideTickMsg:
		ctl := c.state.Controller()
		if msg.gen == c.hideGen && ctl.IsShowing() && !ctl.ShouldShowIndefinitely() {
			slog.Log(context.Background(), config.LevelTrace, "TUI: auto-hiding controller")
			ctl.SetShowing(false)
		}
		return nil
	}

	if navCmd, captured := c.navigator.Update(msg); captured {
		return navCmd
	}

	switch msg := msg.(type) {
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			c.state.Controller().ToggleVisibility()
		}

	case tea.KeyMsg:
		slog.Log(context.Background(), config.LevelTrace, "TUI: key press", "key", msg.String())
		ctl := c.state.Controller()
		switch {
		case IsKey(msg, keys.Quit):
			if c.cfg.CloseVideoOnQuit && c.attached() {
				return tea.Sequence(c.engineCmd(c.engine.Quit), tea.Quit)
			}
			return tea.Quit
		case IsKey(msg, keys.Touch):
			ctl.ToggleVisibility()
		case IsKey(msg, keys.Show):
			ctl.MaybeShow(true)
		case IsKey(msg, keys.Hide):
			ctl.SetShowing(false)
		case IsKey(msg, keys.PlayPause):
			return c.whenAttached(c.engine.TogglePause)
		case IsKey(msg, keys.SeekBack):
			return c.seek(-seekStep)
		case IsKey(msg, keys.SeekFwd):
			return c.seek(seekStep)
		case IsKey(msg, keys.SeekBackBig):
			return c.seek(-seekBigStep)
		case IsKey(msg, keys.SeekFwdBig):
			return c.seek(seekBigStep)
		case IsKey(msg, keys.Stop):
			return c.whenAttached(c.engine.Stop)
		case IsKey(msg, keys.Reconnect):
			if !c.attached() {
				return c.reconnect()
			}
		case IsKey(msg, keys.Settings):
			return c.navigator.Push(settings.NewSettingsOverlayModel(c.cfg, c.cfg.Save, c.theme))
		case IsKey(msg, keys.Help):
			return c.navigator.Push(help.NewHelpOverlayModel(keys.helpKeys(), c.theme))
		}
	}

	var alertCmd tea.Cmd
	var alertModel tea.Model
	alertModel, alertCmd = c.alert.Update(msg)
	c.alert = alertModel.(bubbleup.AlertModel)
	cmds = append(cmds, alertCmd)

	return tea.Batch(cmds...)
}

// seek moves playback and reveals the progress bar if the controller is hidden.
func (c *Controller) seek(seconds float64) tea.Cmd {
	if !c.attached() {
		return nil
	}
	ctl := c.state.Controller()
	if !ctl.IsShowing() {
		ctl.SetVisibility(media.PartiallyVisible)
	}
	return c.engineCmd(func() error { return c.engine.Seek(seconds) })
}

func (c *Controller) attached() bool {
	return c.state.Player() != nil
}

func (c *Controller) whenAttached(fn func() error) tea.Cmd {
	if !c.attached() {
		return nil
	}
	return c.engineCmd(fn)
}

func (c *Controller) engineCmd(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return err
		}
		return nil
	}
}

func (c *Controller) waitForEngine() tea.Cmd {
	updates, done := c.engine.Updates(), c.engine.Done()
	return func() tea.Msg {
		select {
		case <-updates:
			return engineUpdateMsg{}
		case <-done:
			return engineClosedMsg{}
		}
	}
}

func (c *Controller) reconnect() tea.Cmd {
	return func() tea.Msg {
		if err := c.engine.Attach(context.Background()); err != nil {
			return err
		}
		return engineAttachedMsg{}
	}
}

// scheduleHide arms the auto-hide timer after any controller change. Ticks
// from earlier generations are ignored when they fire.
func (c *Controller) scheduleHide() tea.Cmd {
	if !c.rearm {
		return nil
	}
	c.rearm = false

	ctl := c.state.Controller()
	timeout := c.cfg.Controller.ShowTimeout
	if timeout <= 0 || !ctl.IsShowing() || ctl.ShouldShowIndefinitely() {
		return nil
	}
	gen := c.hideGen
	return tea.Tick(timeout, func(time.Time) tea.Msg { return hideTickMsg{gen: gen} })
}

func (c *Controller) applyConfig(cfg *config.Config) {
	ctl := c.state.Controller()
	ctl.SetHideOnTouch(cfg.Controller.HideOnTouch)
	ctl.SetAutoShow(cfg.Controller.AutoShow)
	c.glyphs = ui.GlyphsFor(cfg.IconType)
	c.setTheme(ui.ThemeByID(cfg.Theme))
	c.rearm = true
}

func (c *Controller) setTheme(t tint.Tint) {
	ui.GetLayout().SetTheme(t)
	c.theme = t
	c.navigator.SetTheme(t)
}

func (c *Controller) View() string {
	base := c.renderBaseView()
	base = c.navigator.Render(base)
	return c.alert.Render(base)
}
