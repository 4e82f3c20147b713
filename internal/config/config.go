// Package config loads the optional settings file of the partid command.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	partid "github.com/deitch/partitionidentity"
)

type Config struct {
	// DiskRoot holds the by-<token> directories, /dev/disk by default
	DiskRoot string `yaml:"disk_root,omitempty"`

	// SysRoot is the sysfs mount, /sys by default
	SysRoot  string `yaml:"sys_root,omitempty"`
	LogLevel string `yaml:"log_level,omitempty"`

	// Identities are resolved by "partid resolve" when no arguments are given
	Identities []partid.PartitionIdentity `yaml:"identities,omitempty"`
}

var defaultConfig = Config{
	DiskRoot: "/dev/disk",
	SysRoot:  "/sys",
	LogLevel: "info",
}

// DefaultPaths are tried in order when Load is given no path.
func DefaultPaths() []string {
	paths := []string{"/etc/partid/config.yaml"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "partid", "config.yaml"))
	}
	return paths
}

// Load reads the config at path. With an empty path the DefaultPaths are tried,
// and if none exists the defaults are returned. An explicit path must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		for _, c := range DefaultPaths() {
			if _, err := os.Stat(c); err == nil {
				path = c
				break
			}
		}
	}

	cfg := defaultConfig
	if path == "" {
		return &cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.DiskRoot == "" {
		cfg.DiskRoot = defaultConfig.DiskRoot
	}
	if cfg.SysRoot == "" {
		cfg.SysRoot = defaultConfig.SysRoot
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = defaultConfig.LogLevel
	}
	if _, err := cfg.Level(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	return zapcore.ParseLevel(c.LogLevel)
}
