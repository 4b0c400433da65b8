package config

import (
	"os"
	"path/filepath"
)

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// BatchConfig represents batch scoring configuration
type BatchConfig struct {
	Workers         int  `yaml:"workers" json:"workers"`
	TopN            int  `yaml:"top_n" json:"top_n"`
	CheckpointEvery int  `yaml:"checkpoint_every" json:"checkpoint_every"`
	Resume          bool `yaml:"resume" json:"resume"`
	ShowProgress    bool `yaml:"show_progress" json:"show_progress"`
}

// CatalogConfig represents plan catalog configuration
type CatalogConfig struct {
	// Path points at a CSV or YAML catalog file. Empty means the embedded
	// builtin catalog.
	Path string `yaml:"path" json:"path"`

	// URL fetches the catalog over HTTP(S) instead of from disk.
	URL string `yaml:"url" json:"url"`

	// Validate rejects individual malformed plans at load time.
	Validate bool `yaml:"validate" json:"validate"`
}

// OutputConfig represents output configuration
type OutputConfig struct {
	Format  string `yaml:"format" json:"format"`
	File    string `yaml:"file" json:"file"`
	NoColor bool   `yaml:"no_color" json:"no_color"`
	Verbose bool   `yaml:"verbose" json:"verbose"`
}

// ServerConfig represents the recommendation API server configuration
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// Config represents the full Tariff-AI configuration
type Config struct {
	CheckpointDir string `yaml:"checkpoint_dir" json:"checkpoint_dir"`

	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Batch   BatchConfig   `yaml:"batch" json:"batch"`
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`
	Output  OutputConfig  `yaml:"output" json:"output"`
	Server  ServerConfig  `yaml:"server" json:"server"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	tariffDir := filepath.Join(homeDir, ".tariffai")

	return &Config{
		CheckpointDir: filepath.Join(tariffDir, "checkpoints"),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Batch: BatchConfig{
			Workers:         4,
			TopN:            3,
			CheckpointEvery: 25,
			Resume:          false,
			ShowProgress:    true,
		},
		Catalog: CatalogConfig{
			Path:     "",
			URL:      "",
			Validate: true,
		},
		Output: OutputConfig{
			Format:  "table",
			File:    "",
			NoColor: false,
			Verbose: false,
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
	}
}

// GetTariffDir returns the Tariff-AI configuration directory
func GetTariffDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".tariffai"), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	tariffDir, err := GetTariffDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(tariffDir, "config.yaml"), nil
}

// GetCheckpointDir returns the checkpoint directory path
func GetCheckpointDir() (string, error) {
	tariffDir, err := GetTariffDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(tariffDir, "checkpoints"), nil
}

// EnsureDirectories creates the necessary directories if they don't exist
func EnsureDirectories() error {
	tariffDir, err := GetTariffDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(tariffDir, 0755); err != nil {
		return err
	}

	checkpointDir, err := GetCheckpointDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(checkpointDir, 0755)
}
