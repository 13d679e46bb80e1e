package trip

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	CreateTrip(w http.ResponseWriter, r *http.Request)
	RegenerateItinerary(w http.ResponseWriter, r *http.Request)
	GetTrip(w http.ResponseWriter, r *http.Request)
	GetUserTrips(w http.ResponseWriter, r *http.Request)
	UpdateTrip(w http.ResponseWriter, r *http.Request)
	Explore(w http.ResponseWriter, r *http.Request)
}

type HandlerImpl struct {
	tripService Service
	logger      *slog.Logger
}

func NewHandlerImpl(tripService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		tripService: tripService,
		logger:      logger,
	}
}

const dateLayout = "2006-01-02"

// createTripRequest is the wire shape of the trip creation body. Dates come
// in as YYYY-MM-DD strings.
type createTripRequest struct {
	UserID             string   `json:"userId"`
	Departure          string   `json:"departure"`
	Destination        string   `json:"destination"`
	StartDate          string   `json:"startDate"`
	EndDate            string   `json:"endDate"`
	ActivityPreference string   `json:"activityPreference"`
	GroupType          string   `json:"groupType"`
	HotelPreference    string   `json:"hotelPreference"`
	HotelBudgetMin     float64  `json:"hotelBudgetMin"`
	HotelBudgetMax     float64  `json:"hotelBudgetMax"`
	InvitedEmails      []string `json:"invitedEmails"`
}

type tripResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Trip    *types.Trip `json:"trip,omitempty"`
}

type tripsResponse struct {
	Success bool         `json:"success"`
	Trips   []types.Trip `json:"trips"`
}

// CreateTrip godoc
// @Summary      Create Trip
// @Description  Generates an itinerary and budget for the requested dates and persists the trip.
// @Tags         Trips
// @Accept       json
// @Produce      json
// @Router       /trips/create [post]
func (h *HandlerImpl) CreateTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "CreateTrip"))

	var body createTripRequest
	if err := api.DecodeJSONBody(w, r, &body); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if body.UserID == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "userId is required")
		return
	}
	userID, err := uuid.Parse(body.UserID)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid userId format")
		return
	}
	startDate, err := time.Parse(dateLayout, body.StartDate)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "startDate must be formatted as YYYY-MM-DD")
		return
	}
	endDate, err := time.Parse(dateLayout, body.EndDate)
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "endDate must be formatted as YYYY-MM-DD")
		return
	}

	req := types.TripRequest{
		UserID:             userID,
		Departure:          body.Departure,
		Destination:        body.Destination,
		StartDate:          startDate,
		EndDate:            endDate,
		ActivityPreference: body.ActivityPreference,
		GroupType:          body.GroupType,
		HotelPreference:    body.HotelPreference,
		HotelBudgetMin:     body.HotelBudgetMin,
		HotelBudgetMax:     body.HotelBudgetMax,
		InvitedEmails:      body.InvitedEmails,
	}

	trip, err := h.tripService.CreateTrip(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "Failed to create trip", slog.Any("error", err))
		if errors.Is(err, types.ErrValidation) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to create trip")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusCreated, tripResponse{
		Success: true,
		Message: "Trip created successfully",
		Trip:    trip,
	})
}

// RegenerateItinerary godoc
// @Summary      Regenerate Itinerary
// @Description  Re-runs AI generation over a stored trip, filling gaps in the existing plan.
// @Tags         Trips
// @Produce      json
// @Router       /trips/{tripID}/generate [post]
func (h *HandlerImpl) RegenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "RegenerateItinerary"))

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid trip ID format")
		return
	}

	trip, err := h.tripService.Regenerate(ctx, tripID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to regenerate itinerary",
			slog.String("tripID", tripID.String()), slog.Any("error", err))
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
		case errors.Is(err, types.ErrModelUnavailable):
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "AI generation is not available")
		case errors.Is(err, types.ErrMalformedOutput), errors.Is(err, types.ErrGenerationFailed):
			api.ErrorResponse(w, r, http.StatusBadGateway, "AI generation failed, existing itinerary kept")
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to regenerate itinerary")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tripResponse{
		Success: true,
		Message: "Itinerary regenerated successfully",
		Trip:    trip,
	})
}

func (h *HandlerImpl) GetTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetTrip"))

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid trip ID format")
		return
	}

	trip, err := h.tripService.GetTrip(ctx, tripID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to get trip", slog.Any("error", err))
		if errors.Is(err, types.ErrNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve trip")
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tripResponse{Success: true, Trip: trip})
}

func (h *HandlerImpl) GetUserTrips(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "GetUserTrips"))

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	trips, err := h.tripService.GetUserTrips(ctx, userID)
	if err != nil {
		l.ErrorContext(ctx, "Failed to get user trips", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve trips")
		return
	}
	if trips == nil {
		trips = []types.Trip{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tripsResponse{Success: true, Trips: trips})
}

func (h *HandlerImpl) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "UpdateTrip"))

	tripID, err := uuid.Parse(chi.URLParam(r, "tripID"))
	if err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid trip ID format")
		return
	}

	var params types.UpdateTripParams
	if err := api.DecodeJSONBody(w, r, &params); err != nil {
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if params.Status != nil && !validStatus(*params.Status) {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid trip status")
		return
	}

	trip, err := h.tripService.UpdateTrip(ctx, tripID, params)
	if err != nil {
		l.ErrorContext(ctx, "Failed to update trip", slog.Any("error", err))
		switch {
		case errors.Is(err, types.ErrNotFound):
			api.ErrorResponse(w, r, http.StatusNotFound, "Trip not found")
		case errors.Is(err, types.ErrValidation):
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		default:
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to update trip")
		}
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, tripResponse{
		Success: true,
		Message: "Trip updated successfully",
		Trip:    trip,
	})
}

func validStatus(s types.TripStatus) bool {
	switch s {
	case types.TripStatusDraft, types.TripStatusPlanned, types.TripStatusOngoing, types.TripStatusCompleted:
		return true
	}
	return false
}

// Explore godoc
// @Summary      Explore Places
// @Description  Returns top-rated places for a destination and category.
// @Tags         Explore
// @Produce      json
// @Router       /explore [get]
func (h *HandlerImpl) Explore(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	l := h.logger.With(slog.String("HandlerImpl", "Explore"))

	destination := r.URL.Query().Get("destination")
	if destination == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "destination query parameter is required")
		return
	}
	category := types.PlaceCategory(r.URL.Query().Get("category"))
	if category == "" {
		category = types.CategoryAttraction
	}

	results, err := h.tripService.Explore(ctx, destination, category)
	if err != nil {
		l.ErrorContext(ctx, "Failed to explore places", slog.Any("error", err))
		if errors.Is(err, types.ErrValidation) {
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to fetch places")
		return
	}
	if results == nil {
		results = []types.Place{}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]interface{}{
		"success": true,
		"places":  results,
	})
}
