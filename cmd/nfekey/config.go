package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/fiscalbr/nfecore"
	"github.com/fiscalbr/nfecore/internal/config"
)

const defaultConfigFile = "nfekey.yaml"

// LoadConfig loads configuration from a YAML file and validates it
func LoadConfig(path string) (nfecore.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nfecore.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg nfecore.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nfecore.Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nfecore.Config{}, err
	}
	return cfg, nil
}

// SaveConfig writes cfg as YAML
func SaveConfig(cfg nfecore.Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// resolveConfig picks the configuration source: an explicit -config path,
// then nfekey.yaml found from the working directory up to the module root,
// then the environment (after loading envFile, if it exists).
func resolveConfig(path, envFile string) (nfecore.Config, error) {
	if path != "" {
		return LoadConfig(path)
	}

	if cwd, err := os.Getwd(); err == nil {
		if found, err := config.FindConfigFile(cwd, defaultConfigFile); err == nil {
			return LoadConfig(found)
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nfecore.Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}
	return nfecore.LoadConfigFromEnvironment()
}

// DefaultConfig returns the configuration written by "nfekey init"
func DefaultConfig(stateCode string) nfecore.Config {
	cfg := nfecore.Config{StateCode: stateCode}
	// Only fills defaults; a bad state code surfaces on the next load.
	_ = cfg.Validate()
	return cfg
}
