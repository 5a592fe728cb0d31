package models

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds optional settings read from config.yaml.
type Config struct {
	DBPath string `yaml:"db_path"`
	Format string `yaml:"format"`
}

// LoadConfig reads a yaml config file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DefaultConfigPath is config.yaml in the working directory.
func DefaultConfigPath() string {
	dir, _ := os.Getwd()
	return filepath.Join(dir, "config.yaml")
}
