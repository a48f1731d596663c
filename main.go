package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"esmcp/api"
	"esmcp/config"
	"esmcp/executor"
	"esmcp/heartbeat"
	"esmcp/internal/version"
	"esmcp/mcp"
)

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	showVersionShort := flag.Bool("v", false, "print version information")
	showVersion := flag.Bool("version", false, "print version information")
	flag.Parse()

	if *showVersionShort || *showVersion {
		fmt.Printf(
			"esmcp %s\ncommit: %s\nbuild: %s\n",
			version.Version,
			version.Commit,
			version.BuildTime,
		)
		return
	}

	fileCfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}

	logger := setupLogger(fileCfg)

	logger.Info("esmcp starting",
		"mode", fileCfg.Server.Mode,
		"version", version.Version,
		"commit", version.Commit,
		"build_time", version.BuildTime,
	)

	cfg := config.AutoDetect(fileCfg, logger.With("component", "detect"))
	for _, w := range cfg.Warnings {
		logger.Warn("detection warning", "warning", w)
	}
	if !cfg.IsValid() {
		// Stay up anyway: every tool call reports the errors, and the
		// health surface tells the operator what to fix.
		for _, e := range cfg.Errors {
			logger.Error("detection error", "error", e)
		}
	}

	exec := executor.NewCLI(cfg, logger.With("component", "executor"))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	checks := heartbeat.NewChecks(cfg, exec, logger.With("component", "checks"))
	hb := heartbeat.New(fileCfg.Heartbeat.Interval, logger.With("component", "heartbeat"))
	hb.Register("es_cli", checks.CheckBinary)
	hb.Register("engine", checks.CheckEngine)
	hb.Start(ctx)
	defer hb.Stop()

	srv, err := mcp.NewServer(&mcp.Ports{
		Executor:  exec,
		Heartbeat: hb,
	})
	if err != nil {
		logger.Error("failed to initialize MCP server", "err", err)
		os.Exit(1)
	}

	switch fileCfg.Server.Mode {
	case "http":
		runHTTP(ctx, fileCfg, cfg, exec, hb, srv, logger)
	default:
		if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("MCP server error", "err", err)
			os.Exit(1)
		}
	}

	logger.Info("esmcp stopped")
}

func runHTTP(
	ctx context.Context,
	fileCfg *config.FileConfig,
	cfg *config.Config,
	exec executor.Executor,
	hb *heartbeat.Heartbeat,
	mcpSrv *mcp.Server,
	logger *slog.Logger,
) {
	srv := api.NewServer(api.Deps{
		FileConfig: fileCfg,
		Config:     cfg,
		Executor:   exec,
		Heartbeat:  hb,
		MCPHandler: mcpSrv.HTTPHandler(),
		Logger:     logger.With("component", "api"),
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	logger.Info("esmcp ready", "listen", fileCfg.Server.Listen, "pid", os.Getpid())

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "err", err)
			os.Exit(1)
		}
		return
	}

	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "err", err)
	}
}

func defaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "esmcp", "config.yaml")
}

func setupLogger(cfg *config.FileConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	// stdout carries the MCP stdio protocol, so logs always go to stderr
	// or a file.
	if cfg.Logging.File != "" {
		dir := filepath.Dir(cfg.Logging.File)
		os.MkdirAll(dir, 0755)

		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			slog.Error("failed to open log file, using stderr", "err", err)
			return slog.New(slog.NewJSONHandler(os.Stderr, opts))
		}
		return slog.New(slog.NewJSONHandler(f, opts))
	}

	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
