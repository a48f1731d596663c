package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type FileConfig struct {
	Everything EverythingConfig `yaml:"everything"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
	Heartbeat  HeartbeatConfig  `yaml:"heartbeat"`
}

type EverythingConfig struct {
	EsPath        string        `yaml:"es_path"`
	Instance      string        `yaml:"instance"`
	Timeout       time.Duration `yaml:"timeout"`
	MaxResultsCap int           `yaml:"max_results_cap"`
}

type ServerConfig struct {
	Mode   string `yaml:"mode"`
	Listen string `yaml:"listen"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type HeartbeatConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// Load reads the yaml config at path. A missing file is not an error:
// the bridge is zero-config by default and everything can be discovered
// at runtime or overridden through environment variables.
func Load(path string) (*FileConfig, error) {
	var cfg FileConfig

	if path != "" {
		path = expandPath(path)
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		case os.IsNotExist(err):
			// fall through to defaults
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.normalize()
	return &cfg, nil
}

func (c *FileConfig) normalize() {
	c.Everything.EsPath = expandClean(c.Everything.EsPath)
	c.Logging.File = expandClean(c.Logging.File)

	if c.Everything.Timeout == 0 {
		c.Everything.Timeout = 30 * time.Second
	}
	if c.Everything.MaxResultsCap == 0 {
		c.Everything.MaxResultsCap = 1000
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "stdio"
	}
	if c.Server.Listen == "" {
		c.Server.Listen = "127.0.0.1:19092"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Heartbeat.Interval == 0 {
		c.Heartbeat.Interval = 60 * time.Second
	}
}

func expandPath(p string) string {
	p = os.ExpandEnv(p)
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Clean(p)
}

func expandClean(p string) string {
	if p == "" {
		return ""
	}
	return expandPath(p)
}
