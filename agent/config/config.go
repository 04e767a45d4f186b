// Package config loads the host agent settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultPort        = "/dev/ttyUSB0"
	DefaultBaud        = 115200
	DefaultProcRoot    = "/proc"
	DefaultReadTimeout = 500 * time.Millisecond
)

// Config is the agent configuration file.
type Config struct {
	// Port is the serial device of the display.
	Port string `yaml:"port"`
	// Baud is the link speed; the firmware runs at 115200.
	Baud int `yaml:"baud"`
	// ReadTimeout bounds every port read so shutdown is noticed.
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// IncludeMemory appends a memory usage bar after the cores.
	IncludeMemory *bool `yaml:"include_memory,omitempty"`
	// ProcRoot is where procfs is mounted.
	ProcRoot string `yaml:"proc_root"`

	// MetricsListen serves Prometheus metrics when set, e.g. "127.0.0.1:9105".
	MetricsListen string `yaml:"metrics_listen"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	memory := true
	return &Config{
		Port:          DefaultPort,
		Baud:          DefaultBaud,
		ReadTimeout:   DefaultReadTimeout,
		IncludeMemory: &memory,
		ProcRoot:      DefaultProcRoot,
	}
}

// Normalize fills in missing values with defaults.
func (c *Config) Normalize() {
	if c.Port == "" {
		c.Port = DefaultPort
	}
	if c.Baud <= 0 {
		c.Baud = DefaultBaud
	}
	if c.ReadTimeout <= 0 {
		c.ReadTimeout = DefaultReadTimeout
	}
	if c.IncludeMemory == nil {
		memory := true
		c.IncludeMemory = &memory
	}
	if c.ProcRoot == "" {
		c.ProcRoot = DefaultProcRoot
	}
}

// Memory reports whether the memory bar is sent.
func (c *Config) Memory() bool {
	return c.IncludeMemory == nil || *c.IncludeMemory
}

// Validate rejects settings the agent cannot run with.
func (c *Config) Validate() error {
	if c.ReadTimeout < 100*time.Millisecond {
		// tarm/serial counts the timeout in tenths of a second.
		return fmt.Errorf("read_timeout %v is below 100ms", c.ReadTimeout)
	}
	switch c.Baud {
	case 9600, 19200, 38400, 57600, 115200, 230400:
	default:
		return fmt.Errorf("unsupported baud rate %d", c.Baud)
	}
	return nil
}

// Load reads the YAML file at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}
