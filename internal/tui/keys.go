package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/ygelfand/mpvctl/internal/ui"
)

type keyMap struct {
	Touch       key.Binding
	PlayPause   key.Binding
	SeekBack    key.Binding
	SeekFwd     key.Binding
	SeekBackBig key.Binding
	SeekFwdBig  key.Binding
	Show        key.Binding
	Hide        key.Binding
	Stop        key.Binding
	Reconnect   key.Binding
	Settings    key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Touch:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter/click", "Toggle Controller")),
	PlayPause:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "Play/Pause")),
	SeekBack:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "Back 5s")),
	SeekFwd:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "Forward 5s")),
	SeekBackBig: key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "Back 60s")),
	SeekFwdBig:  key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "Forward 60s")),
	Show:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Show Controller")),
	Hide:        key.NewBinding(key.WithKeys("h"), key.WithHelp("h", "Hide Controller")),
	Stop:        key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Stop Playback")),
	Reconnect:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "Reconnect to mpv")),
	Settings:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Settings")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
}

func (k keyMap) helpKeys() []ui.HelpKey {
	var out []ui.HelpKey
	for _, b := range []key.Binding{
		k.Touch, k.PlayPause, k.SeekBack, k.SeekFwd, k.SeekBackBig, k.SeekFwdBig,
		k.Show, k.Hide, k.Stop, k.Reconnect, k.Settings, k.Help, k.Quit,
	} {
		h := b.Help()
		out = append(out, ui.HelpKey{Key: h.Key, Desc: h.Desc})
	}
	return out
}
