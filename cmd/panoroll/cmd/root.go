package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/MeKo-Tech/panoroll/internal/config"
	"github.com/MeKo-Tech/panoroll/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Global configuration loader.
	configLoader *config.Loader
	// Global configuration.
	globalConfig *config.Config
	// Configuration file path.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "panoroll",
	Short: "Batch rotation of equirectangular panoramas",
	Long: `panoroll rotates equirectangular (360-degree) panoramic images by a yaw
angle and writes the results to an output directory. Rotation is a lossless
circular pixel shift along the horizontal axis, processed in parallel across
all input files. Output files keep the input's base filename and container
format.

Supported formats: JPEG, PNG, BMP, TIFF, WebP (WebP is read-only)

Examples:
  panoroll rotate pano1.jpg pano2.png --angle 90 --output-dir rotated/
  panoroll rotate shoots/ --recursive --angle -45 --output-dir out/ --workers 8
  panoroll list shoots/`,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.PersistentFlags().GetBool("version")
		if v {
			ver, commit, date := version.Info()
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "panoroll version %s\n", ver)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Commit: %s\n", commit)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Date: %s\n", date)
			return nil
		}
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCommand returns the root command for testing purposes.
// This allows tests to execute commands without calling os.Exit().
func GetRootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags that apply to all commands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is search in ., $HOME, $HOME/.config/panoroll, /etc/panoroll)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output (equivalent to --log-level=debug)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("version", false, "print version information and exit")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if globalConfig == nil {
			initConfig()
		}

		var logLevel slog.Level
		if globalConfig.Verbose {
			logLevel = slog.LevelDebug
		} else {
			switch globalConfig.LogLevel {
			case "debug":
				logLevel = slog.LevelDebug
			case "info":
				logLevel = slog.LevelInfo
			case "warn":
				logLevel = slog.LevelWarn
			case "error":
				logLevel = slog.LevelError
			default:
				logLevel = slog.LevelInfo
			}
		}

		logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: logLevel,
		}))
		slog.SetDefault(logger)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	configLoader = config.NewLoader()

	var err error
	if cfgFile != "" {
		globalConfig, err = configLoader.LoadWithFile(cfgFile)
	} else {
		globalConfig, err = configLoader.Load()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
}

// GetConfig returns the global configuration.
func GetConfig() *config.Config {
	if globalConfig == nil {
		initConfig()
	}

	// Reload so CLI flag bindings registered after the initial load are
	// reflected through viper's precedence.
	loader := GetConfigLoader()
	var cfg config.Config
	if err := loader.GetViper().Unmarshal(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error unmarshaling updated configuration: %v\n", err)
		return globalConfig
	}

	return &cfg
}

// GetConfigLoader returns the global configuration loader.
func GetConfigLoader() *config.Loader {
	if configLoader == nil {
		configLoader = config.NewLoader()
	}
	return configLoader
}
