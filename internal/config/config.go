package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Device  DeviceConfig  `yaml:"device"`
	Output  OutputConfig  `yaml:"output"`
	Capture CaptureConfig `yaml:"capture"`
	Archive ArchiveConfig `yaml:"archive"`
}

type DeviceConfig struct {
	Path string `yaml:"path"`
	// TimeoutSeconds bounds each wait for the device to become readable.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Timeout returns the configured wait bound as a duration.
func (d DeviceConfig) Timeout() time.Duration {
	return time.Duration(d.TimeoutSeconds) * time.Second
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type CaptureConfig struct {
	Enable bool   `yaml:"enable"`
	Dir    string `yaml:"dir"`
}

type ArchiveConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

// Default returns the configuration used when no config file is given.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file, applies defaults and validates it.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}
	cfg.applyDefaults()

	if cfg.Capture.Enable && cfg.Capture.Dir == "" {
		return Config{}, fmt.Errorf("capture.dir is required when capture.enable is true")
	}
	if cfg.Archive.Enable && cfg.Archive.Path == "" {
		return Config{}, fmt.Errorf("archive.path is required when archive.enable is true")
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Device.TimeoutSeconds <= 0 {
		c.Device.TimeoutSeconds = 5
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "."
	}
}
