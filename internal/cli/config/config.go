// Package config loads the project-level CLI configuration (shopd.json),
// which lists the storefront API endpoints the CLI can talk to.
package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// ConfigFileName is looked up in the current working directory.
const ConfigFileName = "shopd.json"

// Store is one storefront API endpoint.
type Store struct {
	Alias string `json:"alias"`
	URL   string `json:"url"`
}

// Config is the project configuration.
type Config struct {
	Stores []Store `json:"stores"`
}

// LoadFromCurrentDir reads shopd.json from the working directory.
func LoadFromCurrentDir() (*Config, error) {
	return LoadFromFile(ConfigFileName)
}

// LoadFromFile reads a configuration file from the given path.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return &cfg, nil
}

// WriteToFile writes the configuration as indented JSON.
func (c *Config) WriteToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GetStoreByAlias finds a store by its alias.
func (c *Config) GetStoreByAlias(alias string) (*Store, error) {
	for i := range c.Stores {
		if c.Stores[i].Alias == alias {
			return &c.Stores[i], nil
		}
	}
	return nil, fmt.Errorf("store with alias '%s' not found in %s", alias, ConfigFileName)
}

// GetDefaultStore returns the first configured store.
func (c *Config) GetDefaultStore() (*Store, error) {
	if len(c.Stores) == 0 {
		return nil, fmt.Errorf("no stores configured. Run 'shopd init' first")
	}
	return &c.Stores[0], nil
}
