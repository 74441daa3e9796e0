package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/analysis"
	"github.com/jonathan/proposal-assistant/internal/config"
	"github.com/jonathan/proposal-assistant/internal/db"
	"github.com/jonathan/proposal-assistant/internal/llm"
	"github.com/jonathan/proposal-assistant/internal/logging"
	"github.com/jonathan/proposal-assistant/internal/rules"
	"github.com/jonathan/proposal-assistant/internal/schemas"
	"github.com/jonathan/proposal-assistant/internal/server/ratelimit"
	"github.com/jonathan/proposal-assistant/internal/types"
	schemafiles "github.com/jonathan/proposal-assistant/schemas"
)

// loadSettings loads the configuration and builds the logger from it.
func loadSettings() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

// buildEngine creates the rules engine, applying the configured overrides.
func buildEngine(rulesFile string) (*rules.Engine, error) {
	set, err := rules.LoadTableSet(rulesFile)
	if err != nil {
		return nil, err
	}
	return rules.NewFromSet(set), nil
}

// buildGenerator returns nil without an API key; the analyzer then reports
// a configuration error for viable projects.
func buildGenerator(ctx context.Context, cfg *config.Config, logger *zap.Logger) (analysis.Generator, error) {
	if cfg.GeminiAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, proposal generation is disabled")
		return nil, nil
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(cfg.GeminiModel), cfg.GeminiAPIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return llm.NewGenerator(client, logger), nil
}

func rateLimitConfig(cfg *config.Config) *ratelimit.Config {
	return ratelimit.NewConfig(ratelimit.Settings{
		Enabled:          cfg.RateLimitEnabled,
		DefaultLimit:     cfg.RateLimitDefaultLimit,
		DefaultWindow:    cfg.RateLimitDefaultWindow,
		CleanupInterval:  cfg.RateLimitCleanupInterval,
		AnalyzePerMinute: cfg.RateLimitAnalyzePerMinute,
		Whitelist:        cfg.RateLimitWhitelist,
		Blacklist:        cfg.RateLimitBlacklist,
	})
}

// openDB connects to the configured database.
func openDB(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	if !cfg.HasDatabase() {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// loadProjectFile reads a project JSON file in the extension's wire format
// and checks it against the embedded schema before decoding.
func loadProjectFile(path string) (types.AnalyzeRequest, error) {
	var req types.AnalyzeRequest

	content, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read project file %s: %w", path, err)
	}

	if err := schemas.ValidateEmbedded(schemafiles.ProjectInput, string(content)); err != nil {
		return req, fmt.Errorf("project file %s is invalid: %w", path, err)
	}

	if err := json.Unmarshal(content, &req); err != nil {
		return req, fmt.Errorf("failed to unmarshal project JSON: %w", err)
	}
	return req, nil
}
