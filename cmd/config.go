package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/config"
	"github.com/gokul-sureshkumar/Tariff-AI/pkg/reporter"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage Tariff-AI configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config directory and default config file",
	RunE:  runConfigInit,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	if _, err := config.InitializeConfig(); err != nil {
		return err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return err
	}

	logger.Info("Configuration initialized", "path", configPath)
	fmt.Printf("Configuration initialized at %s\n", configPath)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	if viperOutputFormat() == "json" {
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Print(string(data))
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	logger := GetLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	var problems []string
	if cfg.Batch.Workers < 1 {
		problems = append(problems, "batch.workers must be at least 1")
	}
	if cfg.Batch.TopN < 1 {
		problems = append(problems, "batch.top_n must be at least 1")
	}
	if cfg.Batch.CheckpointEvery < 1 {
		problems = append(problems, "batch.checkpoint_every must be at least 1")
	}
	if _, err := reporter.ParseReporterType(cfg.Output.Format); err != nil {
		problems = append(problems, fmt.Sprintf("output.format: %v", err))
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		problems = append(problems, "server.port must be in 1..65535")
	}
	if cfg.Logging.Format != "text" && cfg.Logging.Format != "json" {
		problems = append(problems, "logging.format must be text or json")
	}

	if len(problems) > 0 {
		for _, p := range problems {
			fmt.Println(p)
		}
		return fmt.Errorf("configuration has %d problems", len(problems))
	}

	logger.Info("Configuration is valid")
	fmt.Println("Configuration is valid")
	return nil
}
