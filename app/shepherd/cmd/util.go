package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/dlsheets/shepherd/internal/ai"
	"github.com/dlsheets/shepherd/internal/config"
	"github.com/dlsheets/shepherd/internal/conversation"
	"github.com/dlsheets/shepherd/internal/orchestrator"
	"github.com/dlsheets/shepherd/internal/telemetry"
)

// app bundles the wired-up collaborators shared by the chat and ask commands
type app struct {
	cfg       config.Config
	logger    *zap.Logger
	telemetry *telemetry.Provider
	store     *conversation.Store
	orch      *orchestrator.Orchestrator
}

// buildApp loads configuration and wires the session, store and orchestrator.
// A missing credential fails here, before any session exists.
func buildApp(ctx context.Context, logPath string) (*app, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := buildLogger(cfg, logPath)
	if err != nil {
		return nil, err
	}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{Endpoint: cfg.OTLPEndpoint})
	if err != nil {
		return nil, err
	}

	client, err := ai.NewClient(ctx, cfg, logger.Named("ai"))
	if err != nil {
		return nil, err
	}

	session, err := client.NewSession(ctx)
	if err != nil {
		return nil, err
	}

	store := conversation.NewStore()
	orch := orchestrator.New(store, session, client, client, logger.Named("orchestrator"))

	logger.Info("session established",
		zap.String("session_id", telemetry.NewSessionID()),
		zap.String("chat_model", cfg.ChatModel),
		zap.String("flash_model", cfg.FlashModel))

	return &app{
		cfg:       cfg,
		logger:    logger,
		telemetry: tp,
		store:     store,
		orch:      orch,
	}, nil
}

// shutdown flushes telemetry and logs. In-flight enrichment is given the
// chance to resolve first so its merges are logged.
func (a *app) shutdown(ctx context.Context) {
	a.orch.WaitForEnrichment()
	if err := a.telemetry.Shutdown(ctx); err != nil {
		a.logger.Warn("telemetry shutdown failed", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// buildLogger builds the zap logger. logPath redirects output away from the
// terminal, which the chat command needs to keep its screen intact.
func buildLogger(cfg config.Config, logPath string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if debug {
		zapCfg = zap.NewDevelopmentConfig()
	}

	if cfg.LogFile != "" {
		logPath = cfg.LogFile
	}
	if logPath != "" {
		zapCfg.OutputPaths = []string{logPath}
		zapCfg.ErrorOutputPaths = []string{logPath}
	}

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// defaultChatLogPath returns a log destination out of the way of the TUI
func defaultChatLogPath() string {
	return filepath.Join(os.TempDir(), "shepherd.log")
}
