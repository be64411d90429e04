package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	tint "github.com/lrstanley/bubbletint"
	"github.com/ygelfand/mpvctl/internal/ui"
)

// Overlay is a model drawn over the player surface. Returning a nil model
// from Update dismisses it.
type Overlay interface {
	tea.Model
}

// Navigator is the stack of open overlays. Only the top one receives input.
type Navigator struct {
	overlays      []Overlay
	width, height int
}

func NewNavigator() *Navigator {
	return &Navigator{}
}

func (n *Navigator) Push(o Overlay) tea.Cmd {
	n.overlays = append(n.overlays, o)
	cmds := []tea.Cmd{o.Init()}
	if n.width > 0 && n.height > 0 {
		_, cmd := o.Update(tea.WindowSizeMsg{Width: n.width, Height: n.height})
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (n *Navigator) Pop() {
	if len(n.overlays) > 0 {
		n.overlays = n.overlays[:len(n.overlays)-1]
	}
}

func (n *Navigator) Len() int {
	return len(n.overlays)
}

func (n *Navigator) top() Overlay {
	if len(n.overlays) == 0 {
		return nil
	}
	return n.overlays[len(n.overlays)-1]
}

// Update forwards msg to the top overlay. The bool reports whether the
// overlay captured the message; key and mouse input always is while any
// overlay is open.
func (n *Navigator) Update(msg tea.Msg) (tea.Cmd, bool) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		n.width, n.height = size.Width, size.Height
	}

	overlay := n.top()
	if overlay == nil {
		return nil, false
	}

	next, cmd := overlay.Update(msg)
	if next == nil {
		n.Pop()
		return cmd, true
	}
	n.overlays[len(n.overlays)-1] = next.(Overlay)

	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return cmd, true
	}
	return cmd, false
}

func (n *Navigator) Render(base string) string {
	for _, o := range n.overlays {
		base = ui.Overlay(base, o.View(), n.width, n.height)
	}
	return base
}

// SetTheme restyles every open overlay, not only the focused one.
func (n *Navigator) SetTheme(theme tint.Tint) {
	msg := ui.ThemeChangedMsg{Theme: theme}
	for i, o := range n.overlays {
		if next, _ := o.Update(msg); next != nil {
			n.overlays[i] = next.(Overlay)
		}
	}
}

// IsKey is a helper to check if a key matches a binding
func IsKey(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
