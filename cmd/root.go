package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logger  *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tariffai",
	Short: "Tariff-AI - Telecom plan recommendation engine",
	Long: `Tariff-AI estimates monthly bills for telecom customers against a plan
catalog and recommends the best-fitting plans per customer. Bills are
projected from each customer's usage split across day, evening, night and
international minutes; recommendations blend projected cost with how well a
plan's free-minute structure matches the usage pattern.

Examples:
  # Score a customer population against a catalog
  tariffai recommend batch --usage customers.csv --catalog plans.csv

  # Recommend plans for a single ad-hoc customer
  tariffai recommend customer --total 600 --day 0.5 --eve 0.3 --night 0.2

  # Inspect and validate a plan catalog
  tariffai catalog list --catalog plans.csv
  tariffai catalog validate --catalog plans.csv

  # Run the recommendation API server
  tariffai serve --port 8080`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initializeLogger()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			initializeLogger()
		}
		logger.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tariffai.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().String("catalog", "", "plan catalog file or URL (default: builtin catalog)")
	rootCmd.PersistentFlags().String("output", "table", "output format (table, json, yaml, csv)")
	rootCmd.PersistentFlags().String("output-file", "", "output file path")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Bind flags to viper
	bindFlags := []string{
		"verbose",
		"log-level",
		"log-format",
		"catalog",
		"output",
		"output-file",
		"no-color",
	}
	for _, name := range bindFlags {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to bind flag:", name, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".tariffai" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".tariffai")
	}

	// Environment variables
	viper.SetEnvPrefix("TARIFFAI")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// initializeLogger sets up the logger based on configuration
func initializeLogger() {
	levelStr := viper.GetString("log-level")
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var handler slog.Handler
	handlerOpts := &slog.HandlerOptions{
		Level: level,
	}

	if viper.GetString("log-format") == "json" {
		handler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}

	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// GetLogger returns the configured logger instance
func GetLogger() *slog.Logger {
	if logger == nil {
		initializeLogger()
	}
	return logger
}
