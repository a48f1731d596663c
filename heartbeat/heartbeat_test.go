package heartbeat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"esmcp/config"
	"esmcp/executor"
	"esmcp/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTracker_OverallFollowsWorstComponent(t *testing.T) {
	tr := NewSystemHealthTracker()
	tr.Update("a", model.Healthy, "")
	tr.Update("b", model.Degraded, "slow")

	h := tr.GetHealth()
	if h.Overall != model.Degraded {
		t.Fatalf("expected degraded overall, got %v", h.Overall)
	}
	if h.OverallStr != "degraded" {
		t.Fatalf("unexpected overall string: %q", h.OverallStr)
	}
	if len(h.Components) != 2 {
		t.Fatalf("expected 2 components, got %d", len(h.Components))
	}
}

func TestTracker_FailCountResetsOnRecovery(t *testing.T) {
	tr := NewSystemHealthTracker()
	tr.Update("engine", model.Unhealthy, "down")
	tr.Update("engine", model.Unhealthy, "down")
	tr.Update("engine", model.Healthy, "")

	h := tr.GetHealth()
	comp := h.Components["engine"]
	if comp.FailCount != 0 {
		t.Fatalf("expected reset fail count, got %d", comp.FailCount)
	}
	if comp.LastHealthy.IsZero() {
		t.Fatalf("expected last healthy timestamp")
	}
}

func TestTracker_UnknownComponentDefaultsHealthy(t *testing.T) {
	tr := NewSystemHealthTracker()
	if got := tr.GetComponentLevel("missing"); got != model.Healthy {
		t.Fatalf("expected healthy default, got %v", got)
	}
}

type stubExecutor struct {
	executor.Executor
	versionErr error
}

func (s *stubExecutor) Version(context.Context) (string, error) {
	if s.versionErr != nil {
		return "", s.versionErr
	}
	return "1.4.1", nil
}

func TestCheckBinary_InvalidConfig(t *testing.T) {
	cfg := &config.Config{Errors: []string{"es.exe not found."}}
	c := NewChecks(cfg, &stubExecutor{}, testLogger())

	level, msg := c.CheckBinary(context.Background())
	if level != model.Critical {
		t.Fatalf("expected critical, got %v", level)
	}
	if !strings.Contains(msg, "es.exe not found") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCheckBinary_MissingFile(t *testing.T) {
	cfg := &config.Config{EsPath: `C:\definitely\missing\es.exe`}
	c := NewChecks(cfg, &stubExecutor{}, testLogger())

	level, msg := c.CheckBinary(context.Background())
	if level != model.Critical || !strings.Contains(msg, "es.exe missing") {
		t.Fatalf("unexpected: %v %q", level, msg)
	}
}

func TestCheckEngine_NotResponding(t *testing.T) {
	cfg := &config.Config{EsPath: `C:\x\es.exe`}
	c := NewChecks(cfg, &stubExecutor{versionErr: errors.New("IPC window not found")}, testLogger())

	level, msg := c.CheckEngine(context.Background())
	if level != model.Unhealthy {
		t.Fatalf("expected unhealthy, got %v", level)
	}
	if !strings.Contains(msg, "Everything not responding") {
		t.Fatalf("unexpected message: %q", msg)
	}
}

func TestCheckEngine_Healthy(t *testing.T) {
	cfg := &config.Config{EsPath: `C:\x\es.exe`}
	c := NewChecks(cfg, &stubExecutor{}, testLogger())

	level, _ := c.CheckEngine(context.Background())
	if level != model.Healthy {
		t.Fatalf("expected healthy, got %v", level)
	}
}
