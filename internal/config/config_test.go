package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	c := Defaults()
	if !c.Controller.HideOnTouch || !c.Controller.AutoShow {
		t.Errorf("controller defaults = %+v, want hide_on_touch and auto_show on", c.Controller)
	}
	if c.Controller.ShowTimeout != 3*time.Second {
		t.Errorf("ShowTimeout = %s, want 3s", c.Controller.ShowTimeout)
	}
	if c.SocketPath == "" || c.MpvPath != "mpv" {
		t.Errorf("mpv defaults = %q %q", c.SocketPath, c.MpvPath)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mpvctl.yaml")
	data := []byte(`
theme: dracula
icon_type: emoji
cache_dir: ` + dir + `
controller:
  hide_on_touch: false
  show_timeout: 5s
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	v := viper.New()
	SetDefaults(v)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	c := Defaults()
	if err := c.Load(v); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if c.Theme != "dracula" || c.IconType != IconTypeEmoji {
		t.Errorf("theme/icon = %q/%q", c.Theme, c.IconType)
	}
	if c.Controller.HideOnTouch {
		t.Error("hide_on_touch should be false from file")
	}
	if !c.Controller.AutoShow {
		t.Error("auto_show should keep its default")
	}
	if c.Controller.ShowTimeout != 5*time.Second {
		t.Errorf("ShowTimeout = %s, want 5s", c.Controller.ShowTimeout)
	}
	if c.SocketPath != DefaultSocketPath(dir) {
		t.Errorf("SocketPath = %q, want %q", c.SocketPath, DefaultSocketPath(dir))
	}
}

func TestLoadRejectsNegativeTimeout(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("controller.show_timeout", "-1s")

	if err := Defaults().Load(v); err == nil {
		t.Error("Load() should reject a negative show_timeout")
	}
}

func TestSetupLoggingLevels(t *testing.T) {
	tests := []struct {
		verbosity int
		want      slog.Level
	}{
		{0, slog.LevelInfo},
		{1, slog.LevelDebug},
		{2, LevelTrace},
		{5, LevelTrace},
	}

	defer slog.SetDefault(slog.Default())
	for _, tt := range tests {
		c := Defaults()
		c.Verbosity = tt.verbosity
		c.LogFile = filepath.Join(t.TempDir(), "test.log")
		c.SetupLogging()
		if got := c.LogLevel.Level(); got != tt.want {
			t.Errorf("verbosity %d: level = %v, want %v", tt.verbosity, got, tt.want)
		}
		if !c.Enabled(tt.want) {
			t.Errorf("verbosity %d: Enabled(%v) = false", tt.verbosity, tt.want)
		}
	}
}

func TestSetupLoggingTraceLabel(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	c := Defaults()
	c.Verbosity = 2
	c.LogFile = filepath.Join(t.TempDir(), "trace.log")
	c.SetupLogging()
	c.Logger.Log(t.Context(), LevelTrace, "hello")

	data, err := os.ReadFile(c.LogFile)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); !strings.Contains(got, "level=TRACE") {
		t.Errorf("log output %q should contain level=TRACE", got)
	}
}

func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("saved config is not YAML: %v\n%s", err, data)
	}
	return m
}

func TestSaveLeavesDerivedKeysOut(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mpvctl.yaml")
	if err := os.WriteFile(path, []byte("verbose: 1\nmpv_args: [--mute=yes]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := Defaults()
	c.ConfigPath = path
	c.CacheDir = dir
	c.SocketPath = DefaultSocketPath(dir)
	c.Verbosity = 2 // from -vv on this run only
	c.MpvArgs = []string{"--mute=yes"}
	c.Controller.AutoShow = false
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	m := readYAML(t, path)
	if m["verbose"] != 1 {
		t.Errorf("verbose = %v, want the file's 1", m["verbose"])
	}
	if _, ok := m["socket_path"]; ok {
		t.Errorf("socket_path derived from cache_dir should not be saved: %v", m["socket_path"])
	}
	ctl, _ := m["controller"].(map[string]any)
	if ctl["auto_show"] != false || ctl["show_timeout"] != "3s" {
		t.Errorf("controller = %v", ctl)
	}
}

func TestSaveNewFileWithoutVerbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mpvctl.yaml")
	c := Defaults()
	c.ConfigPath = path
	c.Verbosity = 2
	c.SocketPath = "/run/user/mpv.sock"
	if err := c.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	m := readYAML(t, path)
	if _, ok := m["verbose"]; ok {
		t.Error("verbose should not be written")
	}
	if m["socket_path"] != "/run/user/mpv.sock" {
		t.Errorf("explicit socket_path = %v, want it saved", m["socket_path"])
	}
}

func TestWatchReportsControllerChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mpvctl.yaml")
	if err := os.WriteFile(path, []byte("controller:\n  auto_show: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := Defaults()
	c.ConfigPath = path
	got := make(chan ControllerConfig, 16)
	if err := c.Watch(func(cc ControllerConfig) {
		select {
		case got <- cc:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch() error = %v", err)
	}

	// Replace the file in one step so no half-written version is read.
	tmp := filepath.Join(dir, "next.yaml.tmp")
	if err := os.WriteFile(tmp, []byte("controller:\n  auto_show: false\n  show_timeout: 7s\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cc := <-got:
			if cc.AutoShow || cc.ShowTimeout != 7*time.Second {
				continue
			}
			if !cc.HideOnTouch {
				t.Error("hide_on_touch should keep its default")
			}
			// The watcher hands values over; the config itself is owned by
			// the caller's goroutine.
			if !c.Controller.AutoShow {
				t.Error("Watch modified the config")
			}
			return
		case <-deadline:
			t.Fatal("no reload reported after the config file changed")
		default:
			_ = c.Controller.AutoShow
			time.Sleep(5 * time.Millisecond)
		}
	}
}
