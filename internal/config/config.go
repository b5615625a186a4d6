package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfigPath is looked up in the working directory when no --config
// flag is given.
const DefaultConfigPath = "config.yaml"

type Config struct {
	Input        string `yaml:"input"`
	Output       string `yaml:"output"`
	Backend      string `yaml:"backend"`
	MaxDimension int    `yaml:"maxDimension"`
	Logger       struct {
		Verbosity string `yaml:"verbosity"`
	} `yaml:"logger"`
}

// Default returns the configuration matching the reference behavior:
// fixed file names in the working directory, GPU required, diagnostics
// limited to the error level.
func Default() *Config {
	cfg := &Config{
		Input:   "ISIC_0073502.jpg",
		Output:  "GreyScaledImage.jpg",
		Backend: "auto",
	}
	cfg.Logger.Verbosity = "error"
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects values that would otherwise only fail deep inside the
// pipeline.
func (c *Config) Validate() error {
	switch c.Backend {
	case "", "auto", "opencl", "cpu":
	default:
		return fmt.Errorf("unknown backend %q (want auto, opencl or cpu)", c.Backend)
	}
	if c.Input == "" {
		return fmt.Errorf("input path must not be empty")
	}
	if c.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if c.MaxDimension < 0 {
		return fmt.Errorf("maxDimension must not be negative")
	}
	return nil
}
