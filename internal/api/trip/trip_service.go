package trip

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api/enrichment"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/places"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the trip-planning business logic contract.
type Service interface {
	// CreateTrip validates the request, generates an itinerary (AI when
	// configured, template otherwise or on AI failure), enriches the
	// destination and persists the trip. As long as the dates are valid it
	// always succeeds with some itinerary.
	CreateTrip(ctx context.Context, req types.TripRequest) (*types.Trip, error)
	// Regenerate re-runs AI generation over a stored trip, treating the
	// current plan as context to fill gaps without duplication. Unlike
	// creation it does not fall back to the template generator: failures
	// surface so the user knows AI enrichment did not occur, and the stored
	// trip stays unchanged.
	Regenerate(ctx context.Context, tripID uuid.UUID) (*types.Trip, error)
	GetTrip(ctx context.Context, tripID uuid.UUID) (*types.Trip, error)
	GetUserTrips(ctx context.Context, userID uuid.UUID) ([]types.Trip, error)
	UpdateTrip(ctx context.Context, tripID uuid.UUID, params types.UpdateTripParams) (*types.Trip, error)
	Explore(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error)
}

type ServiceImpl struct {
	logger     *slog.Logger
	repo       Repository
	places     places.Service
	enrichment enrichment.Service
	aiGen      *itinerary.AIGenerator
}

func NewServiceImpl(repo Repository, placesSvc places.Service, enrichSvc enrichment.Service,
	aiGen *itinerary.AIGenerator, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:     logger,
		repo:       repo,
		places:     placesSvc,
		enrichment: enrichSvc,
		aiGen:      aiGen,
	}
}

func validateRequest(req *types.TripRequest) error {
	if req.UserID == uuid.Nil {
		return fmt.Errorf("userId is required: %w", types.ErrValidation)
	}
	if req.Destination == "" {
		return fmt.Errorf("destination is required: %w", types.ErrValidation)
	}
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("start and end dates are required: %w", types.ErrValidation)
	}
	if req.EndDate.Before(req.StartDate) {
		return fmt.Errorf("end date must not be before start date: %w", types.ErrValidation)
	}

	// Fill documented defaults before budget validation.
	if req.ActivityPreference == "" {
		req.ActivityPreference = "Mixed Experience"
	}
	if req.GroupType == "" {
		req.GroupType = "solo"
	}
	if req.HotelPreference == "" {
		req.HotelPreference = types.HotelStandard
	}
	if req.HotelBudgetMin == 0 && req.HotelBudgetMax == 0 {
		req.HotelBudgetMin, req.HotelBudgetMax = 1000, 5000
	}
	if req.HotelBudgetMin < 0 || req.HotelBudgetMax < 0 || req.HotelBudgetMin >= req.HotelBudgetMax {
		return fmt.Errorf("hotel budget range is invalid: %w", types.ErrValidation)
	}
	return nil
}

func (s *ServiceImpl) CreateTrip(ctx context.Context, req types.TripRequest) (*types.Trip, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "CreateTrip")
	defer span.End()
	span.SetAttributes(attribute.String("trip.destination", req.Destination))

	if err := validateRequest(&req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return nil, err
	}

	start := time.Now()
	result, usedAI := s.generate(ctx, req)
	if m := metrics.Get(); m != nil {
		m.GenerationDurationSeconds.Record(ctx, time.Since(start).Seconds())
	}
	span.SetAttributes(attribute.Bool("trip.generated_with_ai", usedAI))

	// Enrichment is fault tolerant by construction: every degraded provider
	// just leaves its slot empty.
	snapshot, err := s.enrichment.Enrich(ctx, req.Destination)
	if err != nil {
		s.logger.WarnContext(ctx, "Enrichment failed, storing empty snapshot", slog.Any("error", err))
		snapshot = types.EnrichmentSnapshot{Images: []types.Image{}}
	}

	now := time.Now().UTC()
	trip := &types.Trip{
		ID:                 uuid.New(),
		UserID:             req.UserID,
		Departure:          req.Departure,
		Destination:        req.Destination,
		StartDate:          req.StartDate,
		EndDate:            req.EndDate,
		Duration:           result.Duration,
		ActivityPreference: req.ActivityPreference,
		GroupType:          req.GroupType,
		HotelPreference:    req.HotelPreference,
		HotelBudgetMin:     req.HotelBudgetMin,
		HotelBudgetMax:     req.HotelBudgetMax,
		Itinerary:          result.Itinerary,
		Budget:             result.Budget,
		Recommendations:    buildRecommendations(req.Destination, nil),
		Collaborators:      collaboratorsFromEmails(req.InvitedEmails, now),
		Enrichment:         snapshot,
		Status:             types.TripStatusDraft,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := s.repo.CreateTrip(ctx, trip); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		return nil, err
	}

	if m := metrics.Get(); m != nil {
		m.TripsCreatedTotal.Add(ctx, 1)
	}
	s.logger.InfoContext(ctx, "Trip created",
		slog.String("tripID", trip.ID.String()),
		slog.Int("duration", trip.Duration),
		slog.Float64("budget_total", trip.Budget.Total),
		slog.Bool("ai", usedAI))

	span.SetStatus(codes.Ok, "Trip created")
	return trip, nil
}

// generate runs the AI generator when available and silently falls back to
// the template generator on any AI failure. This asymmetry with Regenerate is
// deliberate: creation must always yield an itinerary.
func (s *ServiceImpl) generate(ctx context.Context, req types.TripRequest) (types.GenerationResult, bool) {
	if s.aiGen != nil && s.aiGen.Available() {
		result, err := s.aiGen.Generate(ctx, req)
		if err == nil {
			return result, true
		}
		if m := metrics.Get(); m != nil {
			m.AIGenerationFailuresTotal.Add(ctx, 1)
		}
		s.logger.WarnContext(ctx, "AI generation failed, falling back to template",
			slog.String("destination", req.Destination), slog.Any("error", err))
	}
	return s.generateTemplate(ctx, req), false
}

func (s *ServiceImpl) generateTemplate(ctx context.Context, req types.TripRequest) types.GenerationResult {
	set, err := s.places.FetchPlaceSet(ctx, req.Destination)
	if err != nil {
		// Only invalid input errors reach here; the request was already
		// validated, so treat it as fully degraded provider data.
		set = types.PlaceSet{}
	}
	set = itinerary.MergeWithFallback(set, req.Destination)

	result, err := itinerary.GenerateTemplateItinerary(req, set)
	if err != nil {
		// Unreachable for validated requests; duration >= 1 is guaranteed.
		s.logger.ErrorContext(ctx, "Template generation rejected a validated request", slog.Any("error", err))
		return types.GenerationResult{Itinerary: []types.DayPlan{}, Duration: req.Duration()}
	}
	return result
}

func (s *ServiceImpl) Regenerate(ctx context.Context, tripID uuid.UUID) (*types.Trip, error) {
	ctx, span := otel.Tracer("TripService").Start(ctx, "Regenerate")
	defer span.End()
	span.SetAttributes(attribute.String("trip.id", tripID.String()))

	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	if s.aiGen == nil || !s.aiGen.Available() {
		err := fmt.Errorf("regeneration requires a configured generative model: %w", types.ErrModelUnavailable)
		span.RecordError(err)
		span.SetStatus(codes.Error, "model unavailable")
		return nil, err
	}

	result, err := s.aiGen.Generate(ctx, trip.Request())
	if err != nil {
		if m := metrics.Get(); m != nil {
			m.AIGenerationFailuresTotal.Add(ctx, 1)
		}
		// No template fallback here: the stored plan stays intact and the
		// caller reports the failure.
		span.RecordError(err)
		span.SetStatus(codes.Error, "AI regeneration failed")
		return nil, err
	}

	if err := s.repo.ReplaceItineraryAndBudget(ctx, tripID, result.Itinerary, result.Budget); err != nil {
		span.RecordError(err)
		return nil, err
	}

	trip.Itinerary = result.Itinerary
	trip.Budget = result.Budget
	trip.UpdatedAt = time.Now().UTC()

	s.logger.InfoContext(ctx, "Trip itinerary regenerated",
		slog.String("tripID", tripID.String()),
		slog.Float64("budget_total", result.Budget.Total))
	span.SetStatus(codes.Ok, "Trip regenerated")
	return trip, nil
}

func (s *ServiceImpl) GetTrip(ctx context.Context, tripID uuid.UUID) (*types.Trip, error) {
	trip, err := s.repo.GetTrip(ctx, tripID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get trip", slog.Any("error", err))
		return nil, err
	}
	return trip, nil
}

func (s *ServiceImpl) GetUserTrips(ctx context.Context, userID uuid.UUID) ([]types.Trip, error) {
	trips, err := s.repo.GetTripsByUserID(ctx, userID)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to get user trips", slog.Any("error", err))
		return nil, err
	}
	return trips, nil
}

func (s *ServiceImpl) UpdateTrip(ctx context.Context, tripID uuid.UUID, params types.UpdateTripParams) (*types.Trip, error) {
	if err := s.repo.UpdateTrip(ctx, tripID, params); err != nil {
		s.logger.ErrorContext(ctx, "Failed to update trip", slog.Any("error", err))
		return nil, err
	}
	return s.repo.GetTrip(ctx, tripID)
}

func (s *ServiceImpl) Explore(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error) {
	return s.places.ExplorePlaces(ctx, destination, category)
}

func collaboratorsFromEmails(emails []string, now time.Time) []types.Collaborator {
	if len(emails) == 0 {
		return nil
	}
	collaborators := make([]types.Collaborator, 0, len(emails))
	for _, email := range emails {
		if email == "" {
			continue
		}
		collaborators = append(collaborators, types.Collaborator{
			Email:     email,
			Status:    types.CollaboratorPending,
			InvitedAt: now,
		})
	}
	return collaborators
}
