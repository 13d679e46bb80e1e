package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/api/places"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// TextGenerator is the single-turn text completion capability the AI
// generator depends on. *generativeAI.AIClient satisfies it.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error)
}

const defaultGenerationTimeout = 45 * time.Second

// AIGenerator produces an itinerary through a generative model, grounded on
// real candidate places, with the budget composed from the parsed days. All
// failures map onto the ErrModelUnavailable / ErrGenerationFailed /
// ErrMalformedOutput taxonomy so callers can decide whether to fall back to
// the template generator.
type AIGenerator struct {
	logger  *slog.Logger
	textGen TextGenerator
	places  places.Service
	timeout time.Duration
}

// NewAIGenerator wires the generator. textGen may be nil when no model
// credential is configured; Generate then fails fast with ErrModelUnavailable.
func NewAIGenerator(textGen TextGenerator, placesSvc places.Service, logger *slog.Logger, timeout time.Duration) *AIGenerator {
	if timeout <= 0 {
		timeout = defaultGenerationTimeout
	}
	return &AIGenerator{
		logger:  logger,
		textGen: textGen,
		places:  placesSvc,
		timeout: timeout,
	}
}

// Available reports whether a generative model is configured.
func (g *AIGenerator) Available() bool {
	return g.textGen != nil
}

// Generate runs the full AI pipeline: concurrent candidate fetch, prompt
// composition (including the existing-plan summary on regeneration), one
// bounded model call, parse-then-validate, reconciliation and budget
// composition.
func (g *AIGenerator) Generate(ctx context.Context, req types.TripRequest) (types.GenerationResult, error) {
	ctx, span := otel.Tracer("AIGenerator").Start(ctx, "Generate")
	defer span.End()
	span.SetAttributes(attribute.String("trip.destination", req.Destination))

	if g.textGen == nil {
		err := fmt.Errorf("no generative model configured: %w", types.ErrModelUnavailable)
		span.RecordError(err)
		span.SetStatus(codes.Error, "model unavailable")
		return types.GenerationResult{}, err
	}

	duration := req.Duration()
	if duration < 1 {
		return types.GenerationResult{}, fmt.Errorf("trip duration must be at least 1 day: %w", types.ErrValidation)
	}

	set, err := g.places.FetchPlaceSet(ctx, req.Destination)
	if err != nil {
		return types.GenerationResult{}, err
	}
	g.logger.InfoContext(ctx, "Fetched candidate places for AI generation",
		slog.String("destination", req.Destination),
		slog.Int("attractions", len(set.Attractions)),
		slog.Int("restaurants", len(set.Restaurants)),
		slog.Int("hotels", len(set.Hotels)))

	prompt := buildItineraryPrompt(req, duration, set)
	span.SetAttributes(attribute.Int("prompt.length", len(prompt)))

	genCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.7),
		ResponseMIMEType: "application/json",
	}
	text, err := g.textGen.GenerateContent(genCtx, prompt, config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "model call failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return types.GenerationResult{}, fmt.Errorf("model call timed out after %s: %w", g.timeout, types.ErrGenerationFailed)
		}
		return types.GenerationResult{}, fmt.Errorf("model call failed: %v: %w", err, types.ErrGenerationFailed)
	}
	if text == "" {
		return types.GenerationResult{}, fmt.Errorf("model returned an empty response: %w", types.ErrGenerationFailed)
	}
	span.SetAttributes(attribute.Int("response.length", len(text)))

	days, err := parseItineraryResponse(text, duration)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "malformed model output")
		return types.GenerationResult{}, err
	}

	// Attach coordinates from the fetched attractions and override any date
	// the model may have hallucinated.
	days = Reconcile(days, set.Attractions, req.StartDate)

	result := types.GenerationResult{
		Itinerary: days,
		Budget:    ComposeBudget(days, duration),
		Duration:  duration,
	}
	span.SetStatus(codes.Ok, "itinerary generated")
	return result, nil
}
