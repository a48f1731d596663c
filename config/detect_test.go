package config

import (
	"strings"
	"testing"
	"time"
)

func baseFileConfig() *FileConfig {
	fc := &FileConfig{}
	fc.normalize()
	return fc
}

func TestAutoDetect_NotFoundRecordsError(t *testing.T) {
	l := scriptedLocator(probeScript{})

	cfg := autoDetect(baseFileConfig(), l, testLogger())

	if cfg.IsValid() {
		t.Fatalf("expected invalid config when es.exe is missing")
	}
	if len(cfg.Errors) != 1 || !strings.Contains(cfg.Errors[0], "es.exe not found") {
		t.Fatalf("unexpected errors: %v", cfg.Errors)
	}
}

func TestAutoDetect_HappyPath(t *testing.T) {
	found := `C:\Program Files\Everything\es.exe`
	l := scriptedLocator(probeScript{
		"-get-everything-version": {res: runResult{stdout: "1.4.1.1024\n"}},
	})
	l.isFile = func(p string) bool { return p == found }
	l.searchDirs = []string{`C:\Program Files\Everything`}

	cfg := autoDetect(baseFileConfig(), l, testLogger())

	if !cfg.IsValid() {
		t.Fatalf("expected valid config, errors: %v", cfg.Errors)
	}
	if cfg.EsPath != found {
		t.Fatalf("expected path %q, got %q", found, cfg.EsPath)
	}
	if cfg.VersionInfo != "Everything v1.4.1.1024" {
		t.Fatalf("unexpected version info: %q", cfg.VersionInfo)
	}
	if cfg.Timeout != 30*time.Second || cfg.MaxResultsCap != 1000 {
		t.Fatalf("expected normalized defaults to carry over, got %v / %d",
			cfg.Timeout, cfg.MaxResultsCap)
	}
}

func TestAutoDetect_ConnectivityFailure(t *testing.T) {
	found := `C:\bin\es.exe`
	l := NewLocator(testLogger())
	calls := 0
	l.run = func(_ time.Duration, _ string, args ...string) (runResult, error) {
		calls++
		// Verification during Find succeeds, every later probe fails.
		if calls == 1 {
			return runResult{stdout: "1.4.1\n"}, nil
		}
		return runResult{exit: 8, stderr: "Error 8: Everything IPC window not found.\n"}, nil
	}
	l.lookPath = func(name string) (string, error) { return found, nil }
	l.isFile = func(string) bool { return false }
	l.isDir = func(string) bool { return false }
	l.registry = func(func(string) bool) string { return "" }
	l.searchDirs = nil

	cfg := autoDetect(baseFileConfig(), l, testLogger())

	if cfg.IsValid() {
		t.Fatalf("expected invalid config when the engine is unreachable")
	}
	if len(cfg.Errors) == 0 || !strings.Contains(cfg.Errors[0], "Cannot connect to Everything") {
		t.Fatalf("unexpected errors: %v", cfg.Errors)
	}
	if !strings.Contains(cfg.Errors[0], "IPC window not found") {
		t.Fatalf("expected engine stderr to surface, got: %v", cfg.Errors)
	}
}

func TestAutoDetect_EnvInstanceOverride(t *testing.T) {
	t.Setenv("EVERYTHING_INSTANCE", "1.5a")

	found := `C:\bin\es.exe`
	l := scriptedLocator(probeScript{
		"-get-everything-version":               {res: runResult{stdout: "1.5.0\n"}},
		"-instance 1.5a -get-everything-version": {res: runResult{stdout: "1.5.0\n"}},
	})
	l.lookPath = func(name string) (string, error) { return found, nil }

	cfg := autoDetect(baseFileConfig(), l, testLogger())

	if cfg.Instance != "1.5a" {
		t.Fatalf("expected env instance override, got %q", cfg.Instance)
	}
	if !cfg.IsValid() {
		t.Fatalf("expected valid config, errors: %v", cfg.Errors)
	}
}

func TestAutoDetect_EnvPathOverride(t *testing.T) {
	override := `D:\portable\es.exe`
	t.Setenv("EVERYTHING_ES_PATH", override)

	l := scriptedLocator(probeScript{
		"-get-everything-version": {res: runResult{stdout: "1.4.1\n"}},
	})
	l.isFile = func(p string) bool { return p == override }

	cfg := autoDetect(baseFileConfig(), l, testLogger())

	if cfg.EsPath != override {
		t.Fatalf("expected env path override %q, got %q", override, cfg.EsPath)
	}
}
