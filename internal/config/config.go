// Package config handles loading tasktrack.toml configuration files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultProduct is the product name used in export file names.
const DefaultProduct = "TaskTracker"

// EnvDataDir overrides the storage directory when set.
const EnvDataDir = "TASKTRACK_DIR"

// Config represents the tasktrack.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Report  Report  `toml:"report"`
}

// Storage contains persistence-related configuration.
type Storage struct {
	// Dir is the directory state records are written under.
	// Defaults to ~/.local/share/tasktrack.
	Dir string `toml:"dir"`
}

// Report contains reporting-related configuration.
type Report struct {
	// Product is the product name embedded in export file names.
	Product string `toml:"product"`

	// WorkType is the default work-type filter for monthly reports
	// (onsite, remote, or all).
	WorkType string `toml:"work-type"`
}

// Load loads configuration from the working directory and the global config
// file. Returns built-in defaults if no config files exist.
func Load(projectDir string) (*Config, error) {
	globalPath, err := globalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, globalMeta, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(projectDir, "tasktrack.toml"))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, globalMeta, projectMeta)
	applyDefaults(merged)
	return merged, nil
}

// DataDir resolves the storage directory, honoring the TASKTRACK_DIR
// environment override.
func (c *Config) DataDir() (string, error) {
	if dir := os.Getenv(EnvDataDir); dir != "" {
		return dir, nil
	}
	if c.Storage.Dir != "" {
		return c.Storage.Dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".local", "share", "tasktrack"), nil
}

func globalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "tasktrack", "config.toml"), nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}

	return &cfg, meta, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, globalMeta, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Dir = mergeString(projectMeta.IsDefined("storage", "dir"), projectCfg.Storage.Dir, globalCfg.Storage.Dir)
	merged.Report.Product = mergeString(projectMeta.IsDefined("report", "product"), projectCfg.Report.Product, globalCfg.Report.Product)
	merged.Report.WorkType = mergeString(projectMeta.IsDefined("report", "work-type"), projectCfg.Report.WorkType, globalCfg.Report.WorkType)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func applyDefaults(cfg *Config) {
	if cfg.Report.Product == "" {
		cfg.Report.Product = DefaultProduct
	}
	if cfg.Report.WorkType == "" {
		cfg.Report.WorkType = "all"
	}
}
