package cmd

import (
	"testing"
	"time"

	"github.com/ygelfand/mpvctl/internal/config"
)

func TestSetConfigValue(t *testing.T) {
	tests := []struct {
		key, value string
		check      func(*config.Config) bool
	}{
		{"controller.hide_on_touch", "false", func(c *config.Config) bool { return !c.Controller.HideOnTouch }},
		{"controller.auto_show", "no", func(c *config.Config) bool { return !c.Controller.AutoShow }},
		{"controller.show_timeout", "10s", func(c *config.Config) bool { return c.Controller.ShowTimeout == 10*time.Second }},
		{"icon_type", "emoji", func(c *config.Config) bool { return c.IconType == config.IconTypeEmoji }},
		{"close_video_on_quit", "on", func(c *config.Config) bool { return c.CloseVideoOnQuit }},
		{"socket_path", "/tmp/x.sock", func(c *config.Config) bool { return c.SocketPath == "/tmp/x.sock" }},
		{"output", "json-pretty", func(c *config.Config) bool { return c.OutputFormat == "json-pretty" }},
		{"cache_dir", "/tmp/mpvctl-cache", func(c *config.Config) bool {
			return c.CacheDir == "/tmp/mpvctl-cache" && c.SocketPath == config.DefaultSocketPath("/tmp/mpvctl-cache")
		}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := config.Defaults()
			if err := setConfigValue(cfg, tt.key, tt.value); err != nil {
				t.Fatalf("setConfigValue(%q, %q): %v", tt.key, tt.value, err)
			}
			if !tt.check(cfg) {
				t.Errorf("%s not applied", tt.key)
			}
		})
	}
}

func TestSetConfigValueErrors(t *testing.T) {
	tests := []struct{ key, value string }{
		{"controller.hide_on_touch", "maybe"},
		{"controller.show_timeout", "-1s"},
		{"controller.show_timeout", "soon"},
		{"icon_type", "sixel"},
		{"output", "xml"},
		{"no_such_key", "1"},
	}
	for _, tt := range tests {
		if err := setConfigValue(config.Defaults(), tt.key, tt.value); err == nil {
			t.Errorf("setConfigValue(%q, %q) succeeded, want error", tt.key, tt.value)
		}
	}
}

func TestFlatten(t *testing.T) {
	got := flatten("", map[string]any{
		"theme": "mpvctl",
		"controller": map[string]any{
			"auto_show": true,
		},
	})
	if got["theme"] != "mpvctl" || got["controller.auto_show"] != true || len(got) != 2 {
		t.Fatalf("flatten() = %v", got)
	}
}

func TestNewWatchedStateAutoShowsDetached(t *testing.T) {
	cfg := config.Defaults()
	state := newWatchedState(nil, cfg)
	defer state.Close()

	if !state.Controller().IsShowing() {
		t.Fatal("detached state should auto-show the controller")
	}
}
