package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultStatusQueryTimeout = time.Second * 10
const defaultPacingInterval = time.Second

// Config holds the optional file-based settings. Command-line flags take
// precedence over values read from the file.
type Config struct {
	Service struct {
		URL string `yaml:"url"`
	} `yaml:"service"`
	Timeouts struct {
		StatusQuery duration `yaml:"statusQuery"`
		Read        duration `yaml:"read"`
		Analysis    duration `yaml:"analysis"`
	} `yaml:"timeouts"`
	Pacing struct {
		Interval duration `yaml:"interval"`
	} `yaml:"pacing"`
}

// duration parses Go duration strings like "30s" from YAML.
type duration time.Duration

func (d *duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = duration(parsed)
	return nil
}

func (d duration) orElse(fallback time.Duration) time.Duration {
	if d == 0 {
		return fallback
	}
	return time.Duration(d)
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("malformed config file %s: %w", path, err)
	}
	return cfg, nil
}
