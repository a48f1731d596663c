package config

import (
	"log/slog"
	"os"
	"strings"
	"time"
)

// Config is the detected, immutable runtime descriptor every query
// operation reads. It is built exactly once at startup; downstream code
// never mutates it.
type Config struct {
	EsPath        string
	Instance      string
	Timeout       time.Duration
	MaxResultsCap int
	Errors        []string
	Warnings      []string
	VersionInfo   string
}

// IsValid reports whether es.exe was found and Everything responded.
func (c *Config) IsValid() bool {
	return c.EsPath != "" && len(c.Errors) == 0
}

// AutoDetect locates es.exe and the live Everything instance.
//
// Detection order:
//  1. EVERYTHING_ES_PATH / EVERYTHING_INSTANCE env vars (then file config)
//  2. es / es.exe on PATH, verified via -get-everything-version
//  3. Common installation directories
//  4. Windows Registry
//  5. Instance auto-detection (default, then 1.5a)
//  6. Connectivity test
//
// Discovery failure is recorded in Errors, never returned as an error:
// the process stays up and every call fails fast against an invalid
// config.
func AutoDetect(fc *FileConfig, logger *slog.Logger) *Config {
	loc := NewLocator(logger)
	return autoDetect(fc, loc, logger)
}

func autoDetect(fc *FileConfig, loc *Locator, logger *slog.Logger) *Config {
	cfg := &Config{
		Timeout:       fc.Everything.Timeout,
		MaxResultsCap: fc.Everything.MaxResultsCap,
	}

	envPath := strings.TrimSpace(os.Getenv("EVERYTHING_ES_PATH"))
	if envPath == "" {
		envPath = fc.Everything.EsPath
	}
	instance := strings.TrimSpace(os.Getenv("EVERYTHING_INSTANCE"))
	if instance == "" {
		instance = fc.Everything.Instance
	}
	if instance != "" {
		cfg.Instance = instance
		logger.Info("using configured instance", "instance", instance)
	}

	cfg.EsPath = loc.Find(envPath)
	if cfg.EsPath == "" {
		cfg.Errors = append(cfg.Errors,
			"es.exe not found. Install from https://github.com/voidtools/es/releases "+
				"or set the EVERYTHING_ES_PATH environment variable. "+
				"Everything (https://www.voidtools.com/) must be installed and running.")
		return cfg
	}
	logger.Info("found es.exe", "path", cfg.EsPath)

	if cfg.Instance == "" {
		cfg.Instance = loc.DetectInstance(cfg.EsPath)
		if cfg.Instance != "" {
			logger.Info("auto-detected instance", "instance", cfg.Instance)
		}
	}

	ok, info := loc.TestConnection(cfg.EsPath, cfg.Instance)
	if ok {
		cfg.VersionInfo = info
		logger.Info("Everything connection OK", "info", info)
	} else {
		cfg.Errors = append(cfg.Errors,
			"Cannot connect to Everything: "+info+". "+
				"Ensure Everything is running (check your system tray). "+
				"If you use Everything 1.5 alpha, try EVERYTHING_INSTANCE=1.5a")
	}

	return cfg
}
