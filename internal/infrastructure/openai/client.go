package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"

	"github.com/ecolens/backend/internal/domain"
)

// Client is the AI enrichment gateway. It asks a chat model for JSON-shaped
// sub-scores, certifications, and narrative text, validates the response
// against a strict schema, and merges valid fields over the heuristic
// baseline field by field. Any failure is reported as one of the domain
// enrichment errors; the engine recovers all of them via the fallback
// provider.
type Client struct {
	client      *openai.Client
	model       string
	rateLimiter *rate.Limiter
}

// Config holds construction options for the gateway.
type Config struct {
	APIKey string
	Model  string
	// BaseURL overrides the provider endpoint; used by tests and proxies.
	BaseURL string
	// RequestsPerMinute bounds calls to the provider. Zero means 60.
	RequestsPerMinute int
}

// NewClient creates an enrichment gateway client.
func NewClient(config Config) *Client {
	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	rpm := config.RequestsPerMinute
	if rpm <= 0 {
		rpm = 60
	}

	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 5),
	}
}

// Enrich implements domain.Enricher. The caller supplies a baseline built by
// the fallback provider; fields the model does not return (or returns out of
// range) keep their baseline values, so a partially valid response still
// improves the result.
func (c *Client) Enrich(ctx context.Context, facts *domain.ProductFacts, baseline *domain.EnrichedSignals) (*domain.EnrichedSignals, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, classifyTransportErr(err)
	}

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(facts, baseline)},
		},
	})
	if err != nil {
		return nil, classifyTransportErr(err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: response contained no choices", domain.ErrSchemaValidation)
	}

	payload, err := parsePayload(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	return mergePayload(payload, baseline), nil
}

// classifyTransportErr maps a call failure onto the domain error taxonomy.
// Only a deadline expiry counts as a timeout; caller cancellation and every
// other failure are transport errors.
func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrEnrichmentTimeout, err)
	}
	return fmt.Errorf("%w: %v", domain.ErrEnrichmentTransport, err)
}

// payload is the strict response schema requested from the model. Pointer
// fields distinguish absent from zero so each field can fall back
// individually.
type payload struct {
	SubScores struct {
		Packaging           *float64 `json:"packaging"`
		Carbon              *float64 `json:"carbon"`
		Materials           *float64 `json:"materials"`
		HealthScore         *float64 `json:"health_score"`
		SustainabilityScore *float64 `json:"sustainability_score"`
	} `json:"sub_scores"`
	Certifications  []string `json:"certifications"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// fenceRe matches a markdown code fence block with an optional language tag;
// models sometimes wrap JSON output in one despite instructions.
var fenceRe = regexp.MustCompile("(?s)^(?:`{3}|~{3})[^\\n]*\\n(.*?)(?:`{3}|~{3})\\s*$")

// stripMarkdownFences removes a leading/trailing markdown code fence from s.
func stripMarkdownFences(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return s
}

// parsePayload parses and validates the raw model output. It fails with
// ErrSchemaValidation when the output is not valid JSON or carries no usable
// field at all.
func parsePayload(raw string) (*payload, error) {
	raw = stripMarkdownFences(raw)

	var p payload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSchemaValidation, err)
	}

	// Out-of-range scores are dropped, not clamped: a model inventing 340
	// for packaging says nothing trustworthy about packaging.
	dropInvalid(&p.SubScores.Packaging)
	dropInvalid(&p.SubScores.Carbon)
	dropInvalid(&p.SubScores.Materials)
	dropInvalid(&p.SubScores.HealthScore)
	dropInvalid(&p.SubScores.SustainabilityScore)

	p.Certifications = cleanStrings(p.Certifications)
	p.Insights = cleanStrings(p.Insights)
	p.Recommendations = cleanStrings(p.Recommendations)

	if !hasUsableField(&p) {
		return nil, fmt.Errorf("%w: no usable fields in response", domain.ErrSchemaValidation)
	}
	return &p, nil
}

func dropInvalid(score **float64) {
	if *score != nil && (**score < 0 || **score > 100) {
		*score = nil
	}
}

func cleanStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func hasUsableField(p *payload) bool {
	return p.SubScores.Packaging != nil ||
		p.SubScores.Carbon != nil ||
		p.SubScores.Materials != nil ||
		p.SubScores.HealthScore != nil ||
		p.SubScores.SustainabilityScore != nil ||
		len(p.Certifications) > 0 ||
		len(p.Insights) > 0 ||
		len(p.Recommendations) > 0
}

// mergePayload overlays the validated model fields on the heuristic
// baseline. The baseline is never mutated; the result is a fresh value.
func mergePayload(p *payload, baseline *domain.EnrichedSignals) *domain.EnrichedSignals {
	merged := &domain.EnrichedSignals{
		Environment:     baseline.Environment,
		Certifications:  baseline.Certifications,
		Insights:        baseline.Insights,
		Recommendations: baseline.Recommendations,
		AIEnriched:      true,
	}

	if p.SubScores.Packaging != nil {
		merged.Environment.Packaging = *p.SubScores.Packaging
	}
	if p.SubScores.Carbon != nil {
		merged.Environment.Carbon = *p.SubScores.Carbon
	}
	if p.SubScores.Materials != nil {
		merged.Environment.Materials = *p.SubScores.Materials
	}

	if baseline.Food != nil {
		food := *baseline.Food
		if p.SubScores.HealthScore != nil {
			food.HealthScore = *p.SubScores.HealthScore
		}
		if p.SubScores.SustainabilityScore != nil {
			food.SustainabilityScore = *p.SubScores.SustainabilityScore
		}
		merged.Food = &food
	}

	if len(p.Certifications) > 0 {
		merged.Certifications = p.Certifications
	}
	if len(p.Insights) > 0 {
		merged.Insights = p.Insights
	}
	if len(p.Recommendations) > 0 {
		merged.Recommendations = p.Recommendations
	}

	return merged
}

const systemPrompt = `You are a sustainability analyst for consumer products.
Output ONLY valid JSON conforming to this schema, no prose and no markdown:
{
  "sub_scores": {
    "packaging": 0-100,
    "carbon": 0-100,
    "materials": 0-100,
    "health_score": 0-100,
    "sustainability_score": 0-100
  },
  "certifications": ["recognized certification names"],
  "insights": ["short factual insight strings"],
  "recommendations": ["short actionable recommendation strings"]
}
Omit any field you cannot assess. Scores are integers or decimals in [0,100].
health_score and sustainability_score apply only to food products.`

// buildUserPrompt describes the product and the heuristic baseline so the
// model adjusts rather than guesses from scratch.
func buildUserPrompt(facts *domain.ProductFacts, baseline *domain.EnrichedSignals) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Product: %s\n", facts.Name)
	if facts.Brand != "" {
		fmt.Fprintf(&sb, "Brand: %s\n", facts.Brand)
	}
	fmt.Fprintf(&sb, "Category: %s\n", facts.Category)
	fmt.Fprintf(&sb, "Packaging: %s\n", facts.Packaging)
	fmt.Fprintf(&sb, "Origin: %s\n", facts.OriginCountry)
	if len(facts.Ingredients) > 0 {
		fmt.Fprintf(&sb, "Ingredients: %s\n", strings.Join(facts.Ingredients, ", "))
	}
	if len(facts.Certifications) > 0 {
		fmt.Fprintf(&sb, "Claimed certifications: %s\n", strings.Join(facts.Certifications, ", "))
	}
	fmt.Fprintf(&sb, "Flags: organic=%t fair_trade=%t locally_sourced=%t carbon_neutral=%t\n",
		facts.Organic, facts.FairTrade, facts.LocallySourced, facts.CarbonNeutral)

	if facts.Nutrition != nil {
		n := facts.Nutrition
		fmt.Fprintf(&sb, "Nutrition per serving: calories=%.0f protein=%.1fg carbs=%.1fg fat=%.1fg fiber=%.1fg sugar=%.1fg sodium=%.0fmg\n",
			n.Calories, n.ProteinG, n.CarbsG, n.FatG, n.FiberG, n.SugarG, n.SodiumMG)
	}

	fmt.Fprintf(&sb, "\nHeuristic baseline sub-scores: packaging=%.0f carbon=%.0f materials=%.0f",
		baseline.Environment.Packaging, baseline.Environment.Carbon, baseline.Environment.Materials)
	if baseline.Food != nil {
		fmt.Fprintf(&sb, " health_score=%.0f sustainability_score=%.0f",
			baseline.Food.HealthScore, baseline.Food.SustainabilityScore)
	}
	sb.WriteString("\n\nProduce the JSON analysis now.")

	return sb.String()
}
