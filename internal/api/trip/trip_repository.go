package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*PostgresTripRepo)(nil)

// Repository owns the persisted Trip aggregate. The generation core never
// touches storage directly; it returns a fully composed result which is
// written back here atomically.
type Repository interface {
	CreateTrip(ctx context.Context, trip *types.Trip) error
	GetTrip(ctx context.Context, tripID uuid.UUID) (*types.Trip, error)
	GetTripsByUserID(ctx context.Context, userID uuid.UUID) ([]types.Trip, error)
	// ReplaceItineraryAndBudget swaps the itinerary and budget wholesale,
	// leaving every other field untouched.
	ReplaceItineraryAndBudget(ctx context.Context, tripID uuid.UUID, itinerary []types.DayPlan, budget types.Budget) error
	UpdateTrip(ctx context.Context, tripID uuid.UUID, params types.UpdateTripParams) error
}

// PgxPool is the subset of pgxpool.Pool the repository needs; both
// *pgxpool.Pool and pgxmock satisfy it.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type PostgresTripRepo struct {
	logger *slog.Logger
	pgpool PgxPool
}

func NewPostgresTripRepo(pgpool PgxPool, logger *slog.Logger) *PostgresTripRepo {
	return &PostgresTripRepo{
		logger: logger,
		pgpool: pgpool,
	}
}

const tripColumns = `id, user_id, departure, destination, start_date, end_date, duration,
       activity_preference, group_type, hotel_preference, hotel_budget_min, hotel_budget_max,
       itinerary, budget, recommendations, collaborators, enriched_data, status,
       created_at, updated_at`

func (r *PostgresTripRepo) CreateTrip(ctx context.Context, trip *types.Trip) error {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "CreateTrip")
	defer span.End()
	span.SetAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.sql.table", "trips"),
		attribute.String("trip.id", trip.ID.String()),
	)

	itineraryJSON, budgetJSON, recsJSON, collabJSON, enrichedJSON, err := marshalTripJSON(trip)
	if err != nil {
		span.RecordError(err)
		return err
	}

	query := `
		INSERT INTO trips (id, user_id, departure, destination, start_date, end_date, duration,
		                   activity_preference, group_type, hotel_preference, hotel_budget_min, hotel_budget_max,
		                   itinerary, budget, recommendations, collaborators, enriched_data, status,
		                   created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err = r.pgpool.Exec(ctx, query,
		trip.ID, trip.UserID, trip.Departure, trip.Destination, trip.StartDate, trip.EndDate, trip.Duration,
		trip.ActivityPreference, trip.GroupType, trip.HotelPreference, trip.HotelBudgetMin, trip.HotelBudgetMax,
		itineraryJSON, budgetJSON, recsJSON, collabJSON, enrichedJSON, trip.Status,
		trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to insert trip", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		return fmt.Errorf("database error creating trip: %w", err)
	}

	span.SetStatus(codes.Ok, "Trip created")
	return nil
}

func (r *PostgresTripRepo) GetTrip(ctx context.Context, tripID uuid.UUID) (*types.Trip, error) {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "GetTrip")
	defer span.End()
	span.SetAttributes(semconv.DBSystemPostgreSQL, attribute.String("trip.id", tripID.String()))

	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.pgpool.QueryRow(ctx, query, tripID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			span.SetStatus(codes.Error, "Trip not found")
			return nil, fmt.Errorf("trip %s: %w", tripID, types.ErrNotFound)
		}
		r.logger.ErrorContext(ctx, "Failed to query trip", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("database error fetching trip: %w", err)
	}

	span.SetStatus(codes.Ok, "Trip fetched")
	return trip, nil
}

func (r *PostgresTripRepo) GetTripsByUserID(ctx context.Context, userID uuid.UUID) ([]types.Trip, error) {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "GetTripsByUserID")
	defer span.End()
	span.SetAttributes(semconv.DBSystemPostgreSQL, attribute.String("user.id", userID.String()))

	query := `SELECT ` + tripColumns + ` FROM trips WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pgpool.Query(ctx, query, userID)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to query user trips", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("database error fetching trips: %w", err)
	}
	defer rows.Close()

	var trips []types.Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("database error scanning trip: %w", err)
		}
		trips = append(trips, *trip)
	}
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("database error iterating trips: %w", err)
	}

	span.SetAttributes(attribute.Int("trips.count", len(trips)))
	return trips, nil
}

func (r *PostgresTripRepo) ReplaceItineraryAndBudget(ctx context.Context, tripID uuid.UUID, itinerary []types.DayPlan, budget types.Budget) error {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "ReplaceItineraryAndBudget")
	defer span.End()
	span.SetAttributes(semconv.DBSystemPostgreSQL, attribute.String("trip.id", tripID.String()))

	itineraryJSON, err := json.Marshal(itinerary)
	if err != nil {
		return fmt.Errorf("marshal itinerary: %w", err)
	}
	budgetJSON, err := json.Marshal(budget)
	if err != nil {
		return fmt.Errorf("marshal budget: %w", err)
	}

	query := `UPDATE trips SET itinerary = $2, budget = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.pgpool.Exec(ctx, query, tripID, itineraryJSON, budgetJSON, time.Now().UTC())
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to replace itinerary", slog.Any("error", err))
		span.RecordError(err)
		return fmt.Errorf("database error replacing itinerary: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %s: %w", tripID, types.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Itinerary replaced")
	return nil
}

func (r *PostgresTripRepo) UpdateTrip(ctx context.Context, tripID uuid.UUID, params types.UpdateTripParams) error {
	ctx, span := otel.Tracer("TripRepo").Start(ctx, "UpdateTrip")
	defer span.End()
	span.SetAttributes(semconv.DBSystemPostgreSQL, attribute.String("trip.id", tripID.String()))

	var setClauses []string
	var args []any
	argID := 1

	addJSON := func(column string, v any) error {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", column, err)
		}
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, argID))
		args = append(args, data)
		argID++
		return nil
	}

	if params.Itinerary != nil {
		if err := addJSON("itinerary", *params.Itinerary); err != nil {
			return err
		}
	}
	if params.Budget != nil {
		if err := addJSON("budget", *params.Budget); err != nil {
			return err
		}
	}
	if params.Collaborators != nil {
		if err := addJSON("collaborators", *params.Collaborators); err != nil {
			return err
		}
	}
	if params.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", argID))
		args = append(args, *params.Status)
		argID++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("no fields to update: %w", types.ErrValidation)
	}

	setClauses = append(setClauses, fmt.Sprintf("updated_at = $%d", argID))
	args = append(args, time.Now().UTC())
	argID++

	args = append(args, tripID)
	query := fmt.Sprintf("UPDATE trips SET %s WHERE id = $%d", strings.Join(setClauses, ", "), argID)

	tag, err := r.pgpool.Exec(ctx, query, args...)
	if err != nil {
		r.logger.ErrorContext(ctx, "Failed to update trip", slog.Any("error", err))
		span.RecordError(err)
		return fmt.Errorf("database error updating trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("trip %s: %w", tripID, types.ErrNotFound)
	}

	span.SetStatus(codes.Ok, "Trip updated")
	return nil
}

func marshalTripJSON(trip *types.Trip) (itinerary, budget, recs, collab, enriched []byte, err error) {
	if itinerary, err = json.Marshal(trip.Itinerary); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal itinerary: %w", err)
	}
	if budget, err = json.Marshal(trip.Budget); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal budget: %w", err)
	}
	if recs, err = json.Marshal(trip.Recommendations); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal recommendations: %w", err)
	}
	if collab, err = json.Marshal(trip.Collaborators); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal collaborators: %w", err)
	}
	if enriched, err = json.Marshal(trip.Enrichment); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal enriched data: %w", err)
	}
	return itinerary, budget, recs, collab, enriched, nil
}

func scanTrip(row pgx.Row) (*types.Trip, error) {
	var trip types.Trip
	var itineraryJSON, budgetJSON, recsJSON, collabJSON, enrichedJSON []byte

	err := row.Scan(
		&trip.ID, &trip.UserID, &trip.Departure, &trip.Destination, &trip.StartDate, &trip.EndDate, &trip.Duration,
		&trip.ActivityPreference, &trip.GroupType, &trip.HotelPreference, &trip.HotelBudgetMin, &trip.HotelBudgetMax,
		&itineraryJSON, &budgetJSON, &recsJSON, &collabJSON, &enrichedJSON, &trip.Status,
		&trip.CreatedAt, &trip.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(itineraryJSON, &trip.Itinerary); err != nil {
		return nil, fmt.Errorf("unmarshal itinerary: %w", err)
	}
	if err := json.Unmarshal(budgetJSON, &trip.Budget); err != nil {
		return nil, fmt.Errorf("unmarshal budget: %w", err)
	}
	if err := json.Unmarshal(recsJSON, &trip.Recommendations); err != nil {
		return nil, fmt.Errorf("unmarshal recommendations: %w", err)
	}
	if err := json.Unmarshal(collabJSON, &trip.Collaborators); err != nil {
		return nil, fmt.Errorf("unmarshal collaborators: %w", err)
	}
	if err := json.Unmarshal(enrichedJSON, &trip.Enrichment); err != nil {
		return nil, fmt.Errorf("unmarshal enriched data: %w", err)
	}
	return &trip, nil
}
