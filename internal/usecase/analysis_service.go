package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/ecolens/backend/internal/domain"
)

// AnalysisServiceConfig holds configuration for the analysis service.
type AnalysisServiceConfig struct {
	CacheTTL          time.Duration
	EnrichmentTimeout time.Duration
	EnvWeights        EnvWeights
	UnifiedWeights    UnifiedWeights
}

// AnalysisService is the Unified Sustainability Analysis Engine. It holds no
// per-request state; concurrent Analyze calls are independent.
type AnalysisService struct {
	cache             domain.ResultCache
	enricher          domain.Enricher
	cacheTTL          time.Duration
	enrichmentTimeout time.Duration
	envWeights        EnvWeights
	unifiedWeights    UnifiedWeights
}

// NewAnalysisService creates the engine. cache and enricher may be nil: a
// nil cache disables memoization, a nil enricher routes every request
// through the deterministic fallback.
func NewAnalysisService(cache domain.ResultCache, enricher domain.Enricher, config AnalysisServiceConfig) *AnalysisService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	enrichmentTimeout := config.EnrichmentTimeout
	if enrichmentTimeout == 0 {
		enrichmentTimeout = 5 * time.Second
	}
	envWeights := config.EnvWeights
	if envWeights == (EnvWeights{}) {
		envWeights = DefaultEnvWeights
	}
	unifiedWeights := config.UnifiedWeights
	if unifiedWeights == (UnifiedWeights{}) {
		unifiedWeights = DefaultUnifiedWeights
	}

	return &AnalysisService{
		cache:             cache,
		enricher:          enricher,
		cacheTTL:          cacheTTL,
		enrichmentTimeout: enrichmentTimeout,
		envWeights:        envWeights,
		unifiedWeights:    unifiedWeights,
	}
}

// Analyze runs the full pipeline for one raw product payload.
// Flow: normalize -> cache check -> score -> enrich (fallback on any
// failure) -> aggregate -> cache -> return.
//
// The only error it ever returns is domain.ErrMissingProductName; AI
// unavailability degrades the confidence level instead of failing.
func (s *AnalysisService) Analyze(ctx context.Context, raw map[string]any) (*domain.UnifiedAnalysisResult, error) {
	facts, err := Normalize(raw)
	if err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(facts)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, fingerprint); err == nil && cached != nil {
			return cached, nil
		}
	}

	env := ScoreEnvironment(facts, s.envWeights)
	food := ScoreHealth(facts)

	enriched := s.enrich(ctx, facts, env, food)

	result := Aggregate(&env, food, enriched, Completeness(facts), s.envWeights, s.unifiedWeights)

	if s.cache != nil {
		if err := s.cache.Set(ctx, fingerprint, result, s.cacheTTL); err != nil {
			slog.Warn("analysis result cache write failed", "fingerprint", fingerprint, "error", err)
		}
	}

	return result, nil
}

// enrich calls the AI gateway under its own deadline and substitutes the
// fallback provider on any failure. The gateway never raises past here.
func (s *AnalysisService) enrich(ctx context.Context, facts *domain.ProductFacts, env domain.EnvironmentalScores, food *domain.FoodScores) *domain.EnrichedSignals {
	baseline := FallbackEnrich(facts, env, food)
	if s.enricher == nil {
		return baseline
	}

	enrichCtx, cancel := context.WithTimeout(ctx, s.enrichmentTimeout)
	defer cancel()

	enriched, err := s.enricher.Enrich(enrichCtx, facts, baseline)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEnrichmentDisabled):
			// Expected when running without an API key; no log noise.
		case errors.Is(err, domain.ErrEnrichmentTimeout), errors.Is(enrichCtx.Err(), context.DeadlineExceeded):
			slog.Warn("ai enrichment timed out, using heuristics", "product", facts.Name)
		case errors.Is(err, domain.ErrSchemaValidation):
			slog.Warn("ai enrichment returned invalid schema, using heuristics", "product", facts.Name, "error", err)
		default:
			slog.Warn("ai enrichment failed, using heuristics", "product", facts.Name, "error", err)
		}
		return baseline
	}
	if enriched == nil {
		return baseline
	}
	return enriched
}

// Fingerprint returns a stable content hash of the canonical facts, suitable
// as a memoization key. Struct field order makes the JSON encoding
// deterministic.
func Fingerprint(facts *domain.ProductFacts) string {
	encoded, err := json.Marshal(facts)
	if err != nil {
		// ProductFacts contains only marshalable types; keep a usable key
		// anyway.
		encoded = []byte(facts.Name)
	}
	sum := sha256.Sum256(encoded)
	return "analysis:" + hex.EncodeToString(sum[:])
}
