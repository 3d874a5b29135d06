// Package config loads and validates the daemon's YAML configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"gnssd/internal/storage"
)

// Config is the top-level daemon configuration.
type Config struct {
	NATS    NATSConfig     `yaml:"nats"`
	RTCM    RTCMConfig     `yaml:"rtcm"`
	Storage storage.Config `yaml:"storage"`
	Logs    LogConfig      `yaml:"logs"`

	// DevicePathMax bounds the device path copied from each AIS message.
	DevicePathMax int `yaml:"device_path_max"`
}

// NATSConfig configures the AIS JSON feed subscription.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
	Queue   string `yaml:"queue"`
}

// RTCMConfig configures the optional RTCM word-stream input: a file or
// FIFO of big-endian 32-bit values holding one 30-bit word each.
type RTCMConfig struct {
	Enable bool   `yaml:"enable"`
	Path   string `yaml:"path"`
}

// LogConfig configures rotated file logging. An empty directory logs to
// stderr only.
type LogConfig struct {
	Directory  string `yaml:"directory"`
	MaxSizeMB  int    `yaml:"maxSizeMB"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
	MaxBackups int    `yaml:"maxBackups"`
	Compress   bool   `yaml:"compress"`
}

// Load reads, parses and validates the configuration file, applying
// defaults for optional settings.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.NATS.URL == "" {
		cfg.NATS.URL = "nats://localhost:4222"
	}
	if cfg.NATS.Subject == "" {
		return Config{}, fmt.Errorf("nats.subject is required")
	}
	if cfg.RTCM.Enable && cfg.RTCM.Path == "" {
		return Config{}, fmt.Errorf("rtcm.path is required when rtcm.enable is true")
	}
	if cfg.DevicePathMax <= 0 {
		cfg.DevicePathMax = 64
	}
	if cfg.Logs.Directory != "" {
		if cfg.Logs.MaxSizeMB <= 0 {
			cfg.Logs.MaxSizeMB = 50
		}
		if cfg.Logs.MaxBackups <= 0 {
			cfg.Logs.MaxBackups = 5
		}
	}
	return cfg, nil
}
