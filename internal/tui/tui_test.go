package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/media"
	"github.com/ygelfand/mpvctl/internal/mpv"
	"github.com/ygelfand/mpvctl/internal/tui/widget/settings"
)

type fakeEngine struct {
	props   mpv.Props
	updates chan struct{}
	done    chan struct{}
	seeks   []float64
	toggles int
}

func newFakeEngine(props mpv.Props) *fakeEngine {
	return &fakeEngine{
		props:   props,
		updates: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (f *fakeEngine) Props() mpv.Props                 { return f.props }
func (f *fakeEngine) Updates() <-chan struct{}         { return f.updates }
func (f *fakeEngine) Done() <-chan struct{}            { return f.done }
func (f *fakeEngine) Attach(ctx context.Context) error { return nil }
func (f *fakeEngine) TogglePause() error               { f.toggles++; return nil }
func (f *fakeEngine) Seek(seconds float64) error       { f.seeks = append(f.seeks, seconds); return nil }
func (f *fakeEngine) Stop() error                      { return nil }
func (f *fakeEngine) Quit() error                      { return nil }

var playingProps = mpv.Props{PlaylistCount: 1, TimePos: 30, Duration: 120, Title: "Big Buck Bunny"}

func testConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Controller.ShowTimeout = 0
	return cfg
}

// drain runs cmd and any batched commands, returning the produced messages.
// Only use it on commands that do not wait on the engine.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, drain(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

func press(c *Controller, msg tea.KeyMsg) tea.Cmd {
	_, cmd := c.Update(msg)
	return cmd
}

var (
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	leftKey  = tea.KeyMsg{Type: tea.KeyLeft}
	spaceKey = tea.KeyMsg{Type: tea.KeySpace}
	quitKey  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

func TestTouchTogglesController(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	ctl := c.State().Controller()

	if ctl.Visibility() != media.Invisible {
		t.Fatalf("initial visibility = %v, want invisible while playing", ctl.Visibility())
	}
	press(c, enterKey)
	if ctl.Visibility() != media.Visible {
		t.Fatalf("after touch = %v, want visible", ctl.Visibility())
	}
	press(c, enterKey)
	if ctl.Visibility() != media.Invisible {
		t.Fatalf("after second touch = %v, want invisible", ctl.Visibility())
	}
}

func TestMouseClickTogglesController(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	c.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !c.State().Controller().IsShowing() {
		t.Fatal("left click should show the controller")
	}
}

func TestPauseUpdateAutoShows(t *testing.T) {
	eng := newFakeEngine(playingProps)
	c := NewController(eng, testConfig())

	paused := playingProps
	paused.Pause = true
	eng.props = paused
	c.Update(engineUpdateMsg{})

	ctl := c.State().Controller()
	if ctl.Visibility() != media.Visible {
		t.Fatalf("visibility after pause = %v, want visible", ctl.Visibility())
	}
	if ctl.ShowPause() {
		t.Error("ShowPause should be false while paused")
	}
}

func TestSeekShowsProgressOnly(t *testing.T) {
	eng := newFakeEngine(playingProps)
	c := NewController(eng, testConfig())

	drain(press(c, leftKey))

	if got := c.State().Controller().Visibility(); got != media.PartiallyVisible {
		t.Fatalf("visibility after seek = %v, want partially_visible", got)
	}
	if len(eng.seeks) != 1 || eng.seeks[0] != -seekStep {
		t.Fatalf("seeks = %v, want [-%d]", eng.seeks, seekStep)
	}

	// Seeking with the full controller up leaves it alone.
	press(c, enterKey)
	drain(press(c, leftKey))
	if got := c.State().Controller().Visibility(); got != media.Visible {
		t.Fatalf("visibility = %v, want visible", got)
	}
}

func TestPlayPauseCallsEngine(t *testing.T) {
	eng := newFakeEngine(playingProps)
	c := NewController(eng, testConfig())
	drain(press(c, spaceKey))
	if eng.toggles != 1 {
		t.Fatalf("toggles = %d, want 1", eng.toggles)
	}
}

func TestHideTickGenerations(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	ctl := c.State().Controller()
	press(c, enterKey)

	c.Update(hideTickMsg{gen: c.hideGen - 1})
	if !ctl.IsShowing() {
		t.Fatal("stale tick hid the controller")
	}

	c.Update(hideTickMsg{gen: c.hideGen})
	if ctl.IsShowing() {
		t.Fatal("current tick should hide the controller")
	}
}

func TestHideTickKeepsIndefiniteController(t *testing.T) {
	eng := newFakeEngine(mpv.Props{PlaylistCount: 1, Pause: true})
	c := NewController(eng, testConfig())
	ctl := c.State().Controller()
	if !ctl.IsShowing() {
		t.Fatal("paused player should auto-show the controller")
	}
	c.Update(hideTickMsg{gen: c.hideGen})
	if !ctl.IsShowing() {
		t.Fatal("controller hid while it should show indefinitely")
	}
}

func TestEngineClosedDetaches(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	c.Update(engineClosedMsg{})

	if c.State().Player() != nil {
		t.Fatal("player still attached after engine closed")
	}
	ctl := c.State().Controller()
	if !ctl.ShouldShowIndefinitely() || ctl.ShowPause() {
		t.Error("detached controller should show indefinitely without pause")
	}
	if ctl.Visibility() != media.Visible {
		t.Errorf("visibility = %v, want visible", ctl.Visibility())
	}

	c.Update(engineAttachedMsg{})
	if c.State().Player() == nil {
		t.Fatal("player not attached after reconnect")
	}
}

func TestSettingsFinishedAppliesPolicies(t *testing.T) {
	cfg := testConfig()
	c := NewController(newFakeEngine(playingProps), cfg)

	cfg.Controller.HideOnTouch = false
	c.Update(settings.SettingsFinishedMsg{Config: cfg})

	press(c, enterKey)
	press(c, enterKey)
	if got := c.State().Controller().Visibility(); got != media.Visible {
		t.Fatalf("visibility = %v, want visible with hide_on_touch off", got)
	}
}

func TestControllerConfigMsg(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	c.Update(ControllerConfigMsg{Config: config.ControllerConfig{HideOnTouch: false, AutoShow: false}})

	ctl := c.State().Controller()
	if ctl.HideOnTouch() || ctl.AutoShow() {
		t.Fatal("reloaded controller policies not applied")
	}
}

func TestQuit(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	for _, msg := range drain(press(c, quitKey)) {
		if _, ok := msg.(tea.QuitMsg); ok {
			return
		}
	}
	t.Fatal("q did not quit")
}

func TestViewShowsTitle(t *testing.T) {
	c := NewController(newFakeEngine(playingProps), testConfig())
	c.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	press(c, enterKey)

	if view := c.View(); !strings.Contains(view, "Big Buck Bunny") {
		t.Fatalf("view does not contain the title:\n%s", view)
	}
}
