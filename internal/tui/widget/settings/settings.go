package settings

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/ui"
)

type SettingsFinishedMsg struct {
	Config *config.Config
}

// ShowTimeouts are the auto-hide delays offered in the picker.
var ShowTimeouts = []time.Duration{0, 2 * time.Second, 3 * time.Second, 5 * time.Second, 10 * time.Second}

type settingItem struct {
	id          string
	title       string
	description string
	current     string
}

func (i settingItem) Title() string       { return i.title }
func (i settingItem) Description() string { return i.description + " (Current: " + i.current + ")" }
func (i settingItem) FilterValue() string { return i.title }

type selectionItem struct {
	id    string
	value string
}

func (i selectionItem) Title() string       { return i.value }
func (i selectionItem) Description() string { return "" }
func (i selectionItem) FilterValue() string { return i.value }

type SettingsOverlayModel struct {
	cfg           *config.Config
	save          func() error
	list          list.Model
	selectionList list.Model
	width, height int
	theme         tint.Tint
	tints         []tint.Tint
	isSelecting   bool
	activeSetting string
}

// NewSettingsOverlayModel edits cfg in place; save is called after every change.
func NewSettingsOverlayModel(cfg *config.Config, save func() error, theme tint.Tint) *SettingsOverlayModel {
	l := list.New(nil, list.NewDefaultDelegate(), 68, 20)
	l.Title = "Player Settings"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetKeys("q")

	s := list.New(nil, list.NewDefaultDelegate(), 68, 20)
	s.SetShowStatusBar(false)
	s.SetFilteringEnabled(false)

	m := &SettingsOverlayModel{
		cfg:           cfg,
		save:          save,
		list:          l,
		selectionList: s,
		theme:         theme,
		tints:         ui.Themes(),
	}
	m.updateItems()
	return m
}

func timeoutLabel(d time.Duration) string {
	if d == 0 {
		return "never"
	}
	return d.String()
}

func (m *SettingsOverlayModel) updateItems() {
	cfg := m.cfg
	items := []list.Item{
		settingItem{id: "hide_on_touch", title: "Hide On Touch", description: "Enter/click hides a visible controller", current: fmt.Sprintf("%v", cfg.Controller.HideOnTouch)},
		settingItem{id: "auto_show", title: "Auto Show", description: "Show controller when paused or ended", current: fmt.Sprintf("%v", cfg.Controller.AutoShow)},
		settingItem{id: "show_timeout", title: "Auto Hide", description: "Hide controller after inactivity", current: timeoutLabel(cfg.Controller.ShowTimeout)},
		settingItem{id: "theme", title: "Theme", description: "UI color scheme", current: cfg.Theme},
		settingItem{id: "icon_type", title: "Icon Mode", description: "Glyphs on the controller", current: string(cfg.IconType)},
		settingItem{id: "close_video_on_quit", title: "Close Video On Quit", description: "Quit mpv when exiting app", current: fmt.Sprintf("%v", cfg.CloseVideoOnQuit)},
	}
	m.list.SetItems(items)
}

func (m *SettingsOverlayModel) Init() tea.Cmd {
	return nil
}

func (m *SettingsOverlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listW := min(m.width-2, 88)
		listH := min(m.height-10, 30)
		m.list.SetSize(listW, listH)
		m.selectionList.SetSize(listW, listH)
	case ui.ThemeChangedMsg:
		m.theme = msg.Theme
		return m, nil
	}

	if m.isSelecting {
		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
			m.isSelecting = false
			return m, nil
		}

		oldIndex := m.selectionList.Index()
		m.selectionList, cmd = m.selectionList.Update(msg)
		newIndex := m.selectionList.Index()

		if m.activeSetting == "theme" && oldIndex != newIndex {
			selected := m.tints[newIndex]
			m.theme = selected
			return m, tea.Batch(cmd, func() tea.Msg { return ui.ThemeChangedMsg{Theme: selected} })
		}

		if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
			if selected, ok := m.selectionList.SelectedItem().(selectionItem); ok {
				m.applySetting(m.activeSetting, selected.id)
			}
			m.isSelecting = false
			m.updateItems()
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q", "s":
			cfg := m.cfg
			return nil, func() tea.Msg { return SettingsFinishedMsg{Config: cfg} }
		case "enter":
			if item, ok := m.list.SelectedItem().(settingItem); ok {
				if m.handleToggle(item.id) {
					return m, nil
				}
				m.prepareSelection(item.id)
				m.isSelecting = true
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *SettingsOverlayModel) handleToggle(id string) bool {
	cfg := m.cfg
	handled := true

	switch id {
	case "hide_on_touch":
		cfg.Controller.HideOnTouch = !cfg.Controller.HideOnTouch
	case "auto_show":
		cfg.Controller.AutoShow = !cfg.Controller.AutoShow
	case "close_video_on_quit":
		cfg.CloseVideoOnQuit = !cfg.CloseVideoOnQuit
	default:
		handled = false
	}

	if handled {
		m.persist()
		m.updateItems()
	}

	return handled
}

func (m *SettingsOverlayModel) prepareSelection(id string) {
	m.activeSetting = id
	var items []list.Item
	current := ""

	switch id {
	case "theme":
		m.selectionList.Title = "Choose Theme"
		for _, t := range m.tints {
			items = append(items, selectionItem{id: t.ID(), value: t.ID()})
		}
		current = m.cfg.Theme
	case "icon_type":
		m.selectionList.Title = "Choose Icon Mode"
		items = []list.Item{
			selectionItem{id: string(config.IconTypeASCII), value: "ASCII"},
			selectionItem{id: string(config.IconTypeEmoji), value: "Emoji"},
			selectionItem{id: string(config.IconTypeNerdFonts), value: "Nerd Fonts"},
		}
		current = string(m.cfg.IconType)
	case "show_timeout":
		m.selectionList.Title = "Hide Controller After"
		for _, d := range ShowTimeouts {
			items = append(items, selectionItem{id: d.String(), value: timeoutLabel(d)})
		}
		current = m.cfg.Controller.ShowTimeout.String()
	}

	m.selectionList.SetItems(items)
	for i, it := range items {
		if it.(selectionItem).id == current {
			m.selectionList.Select(i)
			break
		}
	}
}

func (m *SettingsOverlayModel) applySetting(setting, value string) {
	cfg := m.cfg
	switch setting {
	case "theme":
		cfg.Theme = value
	case "icon_type":
		cfg.IconType = config.IconType(value)
	case "show_timeout":
		if d, err := time.ParseDuration(value); err == nil {
			cfg.Controller.ShowTimeout = d
		}
	}
	m.persist()
}

func (m *SettingsOverlayModel) persist() {
	if m.save == nil {
		return
	}
	if err := m.save(); err != nil {
		slog.Error("Settings: failed to save config", "error", err)
	}
}

func (m *SettingsOverlayModel) View() string {
	overlayStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true).
		BorderForeground(ui.Accent(m.theme)).
		Padding(1, 2).
		Background(lipgloss.Color("#111111"))

	var content string
	if m.isSelecting {
		content = m.selectionList.View()
	} else {
		content = m.list.View()
	}

	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		content,
		"\n [enter] change | [esc/q/s] back/close",
	))
}
