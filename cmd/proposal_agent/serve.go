package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/proposal-assistant/internal/access"
	"github.com/jonathan/proposal-assistant/internal/analysis"
	"github.com/jonathan/proposal-assistant/internal/selectors"
	"github.com/jonathan/proposal-assistant/internal/server"
	"github.com/jonathan/proposal-assistant/internal/server/middleware"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the HTTP server used by the browser extension.

Without DATABASE_URL every user is treated as a subscriber and no usage is recorded.
Without GEMINI_API_KEY only inviable projects can be answered.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, logger, err := loadSettings()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := buildEngine(cfg.RulesFile)
	if err != nil {
		return err
	}

	selectorSet, err := selectors.Load(cfg.SelectorsFile)
	if err != nil {
		return err
	}

	var checker access.Checker = access.Unlimited{}
	if cfg.HasDatabase() {
		database, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer database.Close()
		checker = access.NewService(database, cfg.TrialLimit, logger)
	} else {
		logger.Warn("DATABASE_URL not set, access checks and usage logging are disabled")
	}

	generator, err := buildGenerator(ctx, cfg, logger)
	if err != nil {
		return err
	}

	var validator middleware.TokenValidator
	jwtCfg, err := cfg.JWT()
	if err != nil {
		return err
	}
	if jwtCfg != nil {
		validator = server.NewJWTService(jwtCfg).AsTokenValidator()
	}

	analyzer := analysis.New(analysis.Options{
		Engine:    engine,
		Generator: generator,
		Access:    checker,
		Logger:    logger,
	})

	srv, err := server.New(server.Options{
		Port:           cfg.Port,
		Analyzer:       analyzer,
		Access:         checker,
		Selectors:      &selectorSet,
		TokenValidator: validator,
		SkipAuth:       cfg.SkipAuth,
		AllowedOrigins: cfg.AllowedOrigins,
		UpgradeURL:     cfg.UpgradeURL,
		RateLimit:      rateLimitConfig(cfg),
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.Bool("database", cfg.HasDatabase()),
		zap.Bool("generation", generator != nil),
		zap.Bool("skip_auth", cfg.SkipAuth),
		zap.String("selectors_version", selectorSet.Version),
	)

	return srv.Start(ctx)
}
