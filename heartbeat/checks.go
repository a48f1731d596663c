package heartbeat

import (
	"context"
	"log/slog"
	"os"

	"esmcp/config"
	"esmcp/executor"
	"esmcp/model"
)

// Checks holds the component checkers registered with the heartbeat.
type Checks struct {
	cfg  *config.Config
	exec executor.Executor
	log  *slog.Logger
}

func NewChecks(cfg *config.Config, exec executor.Executor, logger *slog.Logger) *Checks {
	return &Checks{
		cfg:  cfg,
		exec: exec,
		log:  logger,
	}
}

// CheckBinary verifies the es.exe binary is still present on disk.
func (c *Checks) CheckBinary(_ context.Context) (model.HealthLevel, string) {
	if !c.cfg.IsValid() {
		msg := "es.exe not configured"
		if len(c.cfg.Errors) > 0 {
			msg = c.cfg.Errors[0]
		}
		return model.Critical, msg
	}
	if _, err := os.Stat(c.cfg.EsPath); err != nil {
		return model.Critical, "es.exe missing: " + c.cfg.EsPath
	}
	return model.Healthy, ""
}

// CheckEngine probes the Everything service through the CLI.
func (c *Checks) CheckEngine(ctx context.Context) (model.HealthLevel, string) {
	if !c.cfg.IsValid() {
		return model.Critical, "es.exe not configured"
	}
	if _, err := c.exec.Version(ctx); err != nil {
		return model.Unhealthy, "Everything not responding: " + err.Error()
	}
	return model.Healthy, ""
}
