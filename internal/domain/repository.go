package domain

import (
	"context"
	"time"
)

// ResultCache defines the interface for caching analysis results keyed by a
// fingerprint of the normalized ProductFacts.
type ResultCache interface {
	Get(ctx context.Context, key string) (*UnifiedAnalysisResult, error)
	Set(ctx context.Context, key string, result *UnifiedAnalysisResult, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Enricher augments heuristic baseline scores with externally-derived
// signals. Implementations may block on I/O and must honor ctx cancellation;
// any error they return is recovered by the engine, never propagated.
type Enricher interface {
	Enrich(ctx context.Context, facts *ProductFacts, baseline *EnrichedSignals) (*EnrichedSignals, error)
}
