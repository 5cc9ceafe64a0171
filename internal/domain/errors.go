package domain

import "errors"

var (
	// ErrMissingProductName is returned by the normalizer when the raw
	// payload carries no resolvable product name. It is the only error the
	// engine ever surfaces to callers.
	ErrMissingProductName = errors.New("product name is required")

	// ErrSchemaValidation is returned when the AI response does not parse
	// as JSON matching the enrichment schema. Recovered internally via the
	// fallback provider.
	ErrSchemaValidation = errors.New("ai response failed schema validation")

	// ErrEnrichmentTimeout is returned when the AI call exceeds its
	// deadline. Recovered internally via the fallback provider.
	ErrEnrichmentTimeout = errors.New("ai enrichment timed out")

	// ErrEnrichmentTransport is returned on network/HTTP failure talking to
	// the AI provider. Recovered internally via the fallback provider.
	ErrEnrichmentTransport = errors.New("ai enrichment transport failure")

	// ErrEnrichmentDisabled is returned when no AI gateway is configured.
	ErrEnrichmentDisabled = errors.New("ai enrichment disabled")

	// ErrCacheMiss is returned when a result is not found in cache.
	ErrCacheMiss = errors.New("cache miss")
)
