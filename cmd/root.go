package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ygelfand/mpvctl/internal/commands"
	"github.com/ygelfand/mpvctl/internal/config"
	"github.com/ygelfand/mpvctl/internal/ui"
)

var (
	cfgFile    string
	outputType string
	socketPath string
	sortCol    string
)

var rootCmd = &cobra.Command{
	Use:           "mpvctl",
	Short:         "A terminal controller for mpv",
	Version:       config.Version,
	Long:          `mpvctl attaches to mpv over its IPC socket and drives it from an on-screen playback controller`,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip check if annotation is present
		if cmd.Annotations[ui.AnnotationSkipEngine] == "true" {
			return nil
		}
		// Skip for built-in help and completion
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return commands.EnsureMpv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if config.Get().DefaultToTui {
			return runTUI(nil)
		}
		cmd.Help()
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		ui.RenderError(err)
		os.Exit(1)
	}
}

func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("mpvctl version {{.Version}} (commit: %s, date: %s)\n", config.GitCommit, config.BuildDate))
	cobra.OnInitialize(initConfig)

	rootCmd.AddGroup(&cobra.Group{ID: "tui", Title: "Interactive"})
	rootCmd.AddGroup(&cobra.Group{ID: "player", Title: "Player"})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mpvctl.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputType, "output", "o", "table", "Output format (table, json, json-pretty, yaml, csv, txt)")
	rootCmd.PersistentFlags().CountP("verbose", "v", "increase verbosity")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "mpv IPC socket (default is <cache_dir>/mpv.sock)")
	viper.BindPFlag("socket_path", rootCmd.PersistentFlags().Lookup("socket"))

	rootCmd.PersistentFlags().StringVar(&sortCol, "sort", "", "column to sort by")
	viper.BindPFlag("sort", rootCmd.PersistentFlags().Lookup("sort"))
}

func initConfig() {
	cfg := config.Get()
	cfg.Verbosity = viper.GetInt("verbose")
	cfg.SetupLogging()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			ui.RenderError(fmt.Errorf("failed to get home directory: %w", err))
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mpvctl")
	}

	viper.SetEnvPrefix("MPVCTL")
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		cfg.ConfigPath = viper.ConfigFileUsed()
	}

	if err := cfg.Load(viper.GetViper()); err != nil {
		ui.RenderError(err)
		os.Exit(1)
	}

	// Ensure flags override config
	if outputType != "" && outputType != "table" {
		cfg.OutputFormat = outputType
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}

	if !ui.ValidOutputFormat(cfg.OutputFormat) {
		ui.RenderError(fmt.Errorf("invalid output format: %s", cfg.OutputFormat))
		os.Exit(1)
	}

	// Sync back to viper for parts that still use it
	viper.Set("output", cfg.OutputFormat)
	cfg.SetupLogging()
}
