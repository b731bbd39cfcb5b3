// Package config manages YAML-based configuration and CLI flags.
package config

import (
	"flag"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration options for the explorer server.
// Imported directories are deliberately not part of it: a chosen
// directory lives only for the session.
type Config struct {
	Port    int      `yaml:"port"`
	Watch   bool     `yaml:"watch"`
	Open    bool     `yaml:"open"`
	Exclude []string `yaml:"exclude"`

	// Internal: path to config file for saving
	configPath string
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Port:    8080,
		Watch:   true,
		Open:    false,
		Exclude: []string{".git", ".svn", "node_modules"},
	}
}

// GetConfigDir returns the config directory path
func GetConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/local-explorer"
	}
	return filepath.Join(home, ".config", "local-explorer")
}

// GetConfigPath returns the full path to the config file
func GetConfigPath() string {
	return filepath.Join(GetConfigDir(), "config.yaml")
}

// Load loads configuration from file and command line flags
func Load() (*Config, error) {
	cfg := DefaultConfig()

	port := flag.Int("port", 0, "HTTP server port")
	watch := flag.Bool("watch", true, "Enable file watching")
	open := flag.Bool("open", false, "Open browser on startup")
	configFile := flag.String("config", "", "Configuration file path")

	flag.Parse()

	// Determine config file path
	var cfgPath string
	if *configFile != "" {
		cfgPath = *configFile
	} else {
		// Try ~/.config/local-explorer/config.yaml first
		globalConfig := GetConfigPath()
		if _, err := os.Stat(globalConfig); err == nil {
			cfgPath = globalConfig
		} else {
			// Fall back to local explorer.yaml
			if _, err := os.Stat("explorer.yaml"); err == nil {
				cfgPath = "explorer.yaml"
			}
		}
	}

	// Load from config file if found
	if cfgPath != "" {
		if err := cfg.loadFromFile(cfgPath); err != nil && *configFile != "" {
			// Only return error if user explicitly specified config file
			return nil, err
		}
		cfg.configPath = cfgPath
	} else {
		// Set default config path for saving
		cfg.configPath = GetConfigPath()
	}

	// Command line flags override config file (only if explicitly set)
	if *port != 0 {
		cfg.Port = *port
	}
	// Bool flags - use command line value (they have explicit defaults)
	cfg.Watch = *watch
	cfg.Open = *open

	return cfg, nil
}

func (c *Config) loadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

// Save saves the current configuration to the config file
func (c *Config) Save() error {
	configDir := filepath.Dir(c.configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	// Create a copy without internal fields for saving
	saveConfig := struct {
		Port    int      `yaml:"port"`
		Watch   bool     `yaml:"watch"`
		Open    bool     `yaml:"open"`
		Exclude []string `yaml:"exclude"`
	}{
		Port:    c.Port,
		Watch:   c.Watch,
		Open:    c.Open,
		Exclude: c.Exclude,
	}

	data, err := yaml.Marshal(saveConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(c.configPath, data, 0644)
}

// GetConfigFilePath returns the path to the config file
func (c *Config) GetConfigFilePath() string {
	return c.configPath
}

// IsExcluded checks if a path should be excluded
func (c *Config) IsExcluded(path string) bool {
	base := filepath.Base(path)
	for _, exclude := range c.Exclude {
		if matched, _ := filepath.Match(exclude, base); matched {
			return true
		}
	}
	return false
}
