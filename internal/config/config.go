package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// IsTUI is set while the interactive UI owns the terminal.
var IsTUI bool

// FullVersion returns a concatenated version string
func FullVersion() string {
	return fmt.Sprintf("%s-%s-%s", Version, GitCommit, BuildDate)
}

type IconType string

const (
	IconTypeASCII     IconType = "ascii"
	IconTypeEmoji     IconType = "emoji"
	IconTypeNerdFonts IconType = "nerdfonts"
)

// ControllerConfig holds the on-screen controller policies.
type ControllerConfig struct {
	HideOnTouch bool          `mapstructure:"hide_on_touch" yaml:"hide_on_touch"`
	AutoShow    bool          `mapstructure:"auto_show" yaml:"auto_show"`
	ShowTimeout time.Duration `mapstructure:"show_timeout" yaml:"show_timeout"` // 0 disables auto-hide
}

// Config holds the global configuration for mpvctl
type Config struct {
	// Global settings
	OutputFormat     string   `mapstructure:"output"`
	Verbosity        int      `mapstructure:"verbose"`
	Theme            string   `mapstructure:"theme"`
	IconType         IconType `mapstructure:"icon_type"` // ascii, emoji, nerdfonts
	CacheDir         string   `mapstructure:"cache_dir"`
	DefaultToTui     bool     `mapstructure:"default_to_tui"`
	CloseVideoOnQuit bool     `mapstructure:"close_video_on_quit"`

	// mpv
	SocketPath string   `mapstructure:"socket_path"`
	MpvPath    string   `mapstructure:"mpv_path"`
	MpvArgs    []string `mapstructure:"mpv_args"`
	MpvWindow  bool     `mapstructure:"mpv_window"`

	Controller ControllerConfig `mapstructure:"controller"`

	// Runtime only
	ConfigPath string       `mapstructure:"-"`
	LogFile    string       `mapstructure:"-"`
	Logger     *slog.Logger `mapstructure:"-"`
	LogLevel   *slog.LevelVar
}

var (
	instance *Config
	once     sync.Once
)

const (
	LevelTrace slog.Level = -8
)

// Get returns the global configuration singleton
func Get() *Config {
	once.Do(func() {
		instance = Defaults()
	})
	return instance
}

// Defaults returns a configuration populated with built-in defaults.
func Defaults() *Config {
	home, _ := os.UserHomeDir()
	lvl := &slog.LevelVar{}
	lvl.Set(slog.LevelInfo)
	cacheDir := filepath.Join(home, ".mpvctl", "cache")
	return &Config{
		Logger:       slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})),
		LogLevel:     lvl,
		CacheDir:     cacheDir,
		SocketPath:   DefaultSocketPath(cacheDir),
		MpvPath:      "mpv",
		MpvWindow:    true,
		DefaultToTui: true,
		IconType:     IconTypeASCII,
		Controller: ControllerConfig{
			HideOnTouch: true,
			AutoShow:    true,
			ShowTimeout: 3 * time.Second,
		},
	}
}

// DefaultSocketPath returns the IPC socket location used when none is configured.
func DefaultSocketPath(cacheDir string) string {
	if runtime.GOOS == "windows" {
		return `\\.\pipe\mpvctl-socket`
	}
	return filepath.Join(cacheDir, "mpv.sock")
}

// SetDefaults registers the built-in defaults with viper so that config files
// only need to carry overrides.
func SetDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("output", "table")
	v.SetDefault("icon_type", d.IconType)
	v.SetDefault("cache_dir", d.CacheDir)
	v.SetDefault("default_to_tui", d.DefaultToTui)
	v.SetDefault("mpv_path", d.MpvPath)
	v.SetDefault("mpv_window", d.MpvWindow)
	v.SetDefault("controller.hide_on_touch", d.Controller.HideOnTouch)
	v.SetDefault("controller.auto_show", d.Controller.AutoShow)
	v.SetDefault("controller.show_timeout", d.Controller.ShowTimeout)
}

// Load unmarshals v into c, filling derived fields.
func (c *Config) Load(v *viper.Viper) error {
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if !v.IsSet("socket_path") || c.SocketPath == "" {
		c.SocketPath = DefaultSocketPath(c.CacheDir)
	}
	if c.Controller.ShowTimeout < 0 {
		return fmt.Errorf("controller.show_timeout must not be negative: %s", c.Controller.ShowTimeout)
	}
	return nil
}

// SetupLogging initializes the global logger based on verbosity
func (c *Config) SetupLogging() {
	var level slog.Level
	switch {
	case c.Verbosity >= 2:
		level = LevelTrace
	case c.Verbosity >= 1:
		level = slog.LevelDebug
	default:
		level = slog.LevelInfo
	}

	c.LogLevel.Set(level)

	opts := &slog.HandlerOptions{
		Level: c.LogLevel,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey {
				level := a.Value.Any().(slog.Level)
				if level == LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}

	var writer io.Writer = os.Stderr
	if c.LogFile != "" {
		_ = os.MkdirAll(filepath.Dir(c.LogFile), 0755)
		f, err := os.OpenFile(c.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err == nil {
			writer = f
		} else if IsTUI {
			// stderr would draw over the alt screen
			writer = io.Discard
		}
	}

	handler := slog.NewTextHandler(writer, opts)
	c.Logger = slog.New(handler)
	slog.SetDefault(c.Logger)
}

// Enabled returns true if the given level is enabled
func (c *Config) Enabled(level slog.Level) bool {
	return c.LogLevel.Level() <= level
}

// Save persists the current configuration to disk. It writes through its own
// viper instance so keys that only live in the file, such as verbose, are
// kept as they are, and the socket path is only written when it is not the
// one derived from cache_dir.
func (c *Config) Save() error {
	path := c.ConfigPath
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".mpvctl.yaml")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	v.Set("output", c.OutputFormat)
	v.Set("theme", c.Theme)
	v.Set("icon_type", string(c.IconType))
	v.Set("cache_dir", c.CacheDir)
	v.Set("default_to_tui", c.DefaultToTui)
	v.Set("close_video_on_quit", c.CloseVideoOnQuit)
	v.Set("mpv_path", c.MpvPath)
	v.Set("mpv_window", c.MpvWindow)
	if len(c.MpvArgs) > 0 || v.IsSet("mpv_args") {
		v.Set("mpv_args", c.MpvArgs)
	}
	if v.IsSet("socket_path") || c.SocketPath != DefaultSocketPath(c.CacheDir) {
		v.Set("socket_path", c.SocketPath)
	}
	v.Set("controller.hide_on_touch", c.Controller.HideOnTouch)
	v.Set("controller.auto_show", c.Controller.AutoShow)
	v.Set("controller.show_timeout", c.Controller.ShowTimeout.String())

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	c.ConfigPath = path
	return nil
}

// Watch re-reads the controller section whenever the config file changes on
// disk and passes the new values to fn. fn runs on the watcher goroutine and
// c itself is left untouched; callers hand the values to their own goroutine.
// It does nothing when no config file is in use.
func (c *Config) Watch(fn func(ControllerConfig)) error {
	if c.ConfigPath == "" {
		return nil
	}

	// A private instance: the global viper is not safe for concurrent use.
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix("MPVCTL")
	v.AutomaticEnv()
	v.SetConfigFile(c.ConfigPath)
	if filepath.Ext(c.ConfigPath) == "" {
		v.SetConfigType("yaml")
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config for watching: %w", err)
	}

	v.OnConfigChange(func(ev fsnotify.Event) {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
			return
		}
		cc := ControllerConfig{
			HideOnTouch: v.GetBool("controller.hide_on_touch"),
			AutoShow:    v.GetBool("controller.auto_show"),
			ShowTimeout: v.GetDuration("controller.show_timeout"),
		}
		if cc.ShowTimeout < 0 {
			slog.Error("config: reload rejected", "file", ev.Name, "show_timeout", cc.ShowTimeout)
			return
		}
		slog.Info("config: controller settings reloaded", "file", ev.Name)
		fn(cc)
	})
	v.WatchConfig()
	return nil
}
