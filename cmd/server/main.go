package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/subosito/gotenv"

	"github.com/ecolens/backend/config"
	httpDelivery "github.com/ecolens/backend/internal/delivery/http"
	"github.com/ecolens/backend/internal/infrastructure/cache"
	"github.com/ecolens/backend/internal/infrastructure/openai"
	"github.com/ecolens/backend/internal/logging"
	"github.com/ecolens/backend/internal/usecase"
)

func main() {
	_ = gotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logging.Init(cfg.Server.Environment)

	slog.Info("starting ecolens backend",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"ai_enabled", cfg.AI.Enabled,
	)

	resultCache := cache.NewMemoryCache()

	var enricher *openai.Client
	if cfg.AI.Enabled {
		enricher = openai.NewClient(openai.Config{
			APIKey:            cfg.AI.APIKey,
			Model:             cfg.AI.Model,
			BaseURL:           cfg.AI.BaseURL,
			RequestsPerMinute: cfg.AI.RequestsPerMinute,
		})
		slog.Info("ai enrichment gateway configured", "model", cfg.AI.Model, "timeout", cfg.AI.Timeout)
	} else {
		slog.Warn("ai enrichment disabled, all analyses will use deterministic heuristics")
	}

	serviceConfig := usecase.AnalysisServiceConfig{
		CacheTTL:          cfg.Cache.TTL,
		EnrichmentTimeout: cfg.AI.Timeout,
		EnvWeights: usecase.EnvWeights{
			Packaging: cfg.Scoring.PackagingWeight,
			Carbon:    cfg.Scoring.CarbonWeight,
			Materials: cfg.Scoring.MaterialsWeight,
		},
		UnifiedWeights: usecase.UnifiedWeights{
			Environment: cfg.Scoring.EnvWeight,
			Health:      cfg.Scoring.HealthWeight,
		},
	}

	var analysisService *usecase.AnalysisService
	if enricher != nil {
		analysisService = usecase.NewAnalysisService(resultCache, enricher, serviceConfig)
	} else {
		analysisService = usecase.NewAnalysisService(resultCache, nil, serviceConfig)
	}

	handler := httpDelivery.NewHandler(analysisService)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	slog.Info("server listening", "addr", addr)

	if err := router.Run(addr); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
