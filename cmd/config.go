package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/mpvctl/internal/commands"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/presenters"
	"github.com/ygelfand/mpvctl/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change mpvctl settings",
	Annotations: map[string]string{
		ui.AnnotationSkipEngine: "true",
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Annotations: map[string]string{
		ui.AnnotationSkipEngine: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := viper.AllSettings()
		flat := flatten("", settings)
		rows := make([][]string, 0, len(flat))
		for k, v := range flat {
			rows = append(rows, []string{k, fmt.Sprint(v)})
		}
		return commands.Print(&presenters.SimplePresenter{
			T:          "Configuration",
			H:          []string{"KEY", "VALUE"},
			R:          rows,
			RawData:    settings,
			DefaultCol: "KEY",
		}, commands.CurrentOptions())
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Persist a setting to the config file",
	Args:  cobra.ExactArgs(2),
	Annotations: map[string]string{
		ui.AnnotationSkipEngine: "true",
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		if err := setConfigValue(cfg, args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		ui.RenderSuccess(fmt.Sprintf("%s = %s", args[0], args[1]))
		return nil
	},
}

func setConfigValue(cfg *config.Config, key, value string) error {
	parseBool := func() (bool, error) {
		switch value {
		case "true", "yes", "on", "1":
			return true, nil
		case "false", "no", "off", "0":
			return false, nil
		}
		return false, fmt.Errorf("%s: expected a boolean, got %q", key, value)
	}

	var err error
	switch key {
	case "output":
		if !ui.ValidOutputFormat(value) {
			return fmt.Errorf("output: unknown format %q (table, json, json-pretty, yaml, csv, txt)", value)
		}
		cfg.OutputFormat = value
	case "theme":
		cfg.Theme = value
	case "icon_type":
		switch t := config.IconType(value); t {
		case config.IconTypeASCII, config.IconTypeEmoji, config.IconTypeNerdFonts:
			cfg.IconType = t
		default:
			return fmt.Errorf("icon_type: unknown icon set %q", value)
		}
	case "cache_dir":
		// A socket derived from the old cache dir follows it.
		if cfg.SocketPath == config.DefaultSocketPath(cfg.CacheDir) {
			cfg.SocketPath = config.DefaultSocketPath(value)
		}
		cfg.CacheDir = value
	case "socket_path":
		cfg.SocketPath = value
	case "mpv_path":
		cfg.MpvPath = value
	case "default_to_tui":
		cfg.DefaultToTui, err = parseBool()
	case "close_video_on_quit":
		cfg.CloseVideoOnQuit, err = parseBool()
	case "mpv_window":
		cfg.MpvWindow, err = parseBool()
	case "controller.hide_on_touch":
		cfg.Controller.HideOnTouch, err = parseBool()
	case "controller.auto_show":
		cfg.Controller.AutoShow, err = parseBool()
	case "controller.show_timeout":
		var d time.Duration
		if d, err = time.ParseDuration(value); err == nil {
			if d < 0 {
				return fmt.Errorf("%s must not be negative", key)
			}
			cfg.Controller.ShowTimeout = d
		}
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return err
}

func flatten(prefix string, m map[string]any) map[string]any {
	out := make(map[string]any)
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			for nk, nv := range flatten(key, nested) {
				out[nk] = nv
			}
			continue
		}
		out[key] = v
	}
	return out
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}
