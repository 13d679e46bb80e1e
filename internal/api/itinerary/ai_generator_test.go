package itinerary

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) GenerateContent(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, error) {
	args := m.Called(ctx, prompt, config)
	return args.String(0), args.Error(1)
}

type MockPlacesService struct {
	mock.Mock
}

func (m *MockPlacesService) FetchPlaces(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error) {
	args := m.Called(ctx, destination, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func (m *MockPlacesService) FetchPlaceSet(ctx context.Context, destination string) (types.PlaceSet, error) {
	args := m.Called(ctx, destination)
	return args.Get(0).(types.PlaceSet), args.Error(1)
}

func (m *MockPlacesService) ExplorePlaces(ctx context.Context, destination string, category types.PlaceCategory) ([]types.Place, error) {
	args := m.Called(ctx, destination, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Place), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func aiTestRequest() types.TripRequest {
	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	return types.TripRequest{
		UserID:          uuid.New(),
		Destination:     "Shillong",
		StartDate:       start,
		EndDate:         start.AddDate(0, 0, 1),
		HotelPreference: types.HotelStandard,
		HotelBudgetMin:  1000,
		HotelBudgetMax:  5000,
	}
}

const aiTwoDayResponse = `{
	"itinerary": [
		{
			"day": 1,
			"title": "Waterfalls and Viewpoints",
			"activities": [
				{"time": "10:00 AM", "activity": "Visit Elephant Falls", "location": "Elephant Falls", "duration": "2 hours", "cost": 20, "description": "Three-tiered waterfall"}
			],
			"meals": [{"mealType": "breakfast", "restaurant": "Cafe Shillong Heritage", "cost": 200}],
			"accommodation": {"name": "Hotel Centre Point", "hotelType": "standard", "cost": 2500, "checkIn": "02:00 PM", "checkOut": "11:00 AM"}
		},
		{
			"day": 2,
			"title": "Departure Day",
			"activities": [
				{"time": "09:00 AM", "activity": "Stroll around Ward's Lake", "location": "Ward's Lake", "duration": "1.5 hours", "cost": 10, "description": "Lakeside walk"}
			],
			"meals": []
		}
	]
}`

func TestAIGenerator_Generate(t *testing.T) {
	ctx := context.Background()
	candidates := FallbackPlaceSet("Shillong")

	t.Run("no configured model fails with ErrModelUnavailable", func(t *testing.T) {
		gen := NewAIGenerator(nil, new(MockPlacesService), testLogger(), 0)

		assert.False(t, gen.Available())
		_, err := gen.Generate(ctx, aiTestRequest())
		assert.ErrorIs(t, err, types.ErrModelUnavailable)
	})

	t.Run("successful generation reconciles places and composes the budget", func(t *testing.T) {
		textGen := new(MockTextGenerator)
		placesSvc := new(MockPlacesService)
		placesSvc.On("FetchPlaceSet", mock.Anything, "Shillong").Return(candidates, nil).Once()
		textGen.On("GenerateContent", mock.Anything, mock.AnythingOfType("string"), mock.Anything).
			Return(aiTwoDayResponse, nil).Once()

		gen := NewAIGenerator(textGen, placesSvc, testLogger(), 0)
		result, err := gen.Generate(ctx, aiTestRequest())
		require.NoError(t, err)

		require.Len(t, result.Itinerary, 2)
		assert.Equal(t, 2, result.Duration)

		// Coordinates attached from the candidate list.
		day1 := result.Itinerary[0]
		require.Len(t, day1.Activities, 1)
		require.NotNil(t, day1.Activities[0].Coordinates)
		assert.Equal(t, 25.3176, day1.Activities[0].Coordinates.Lat)

		// Dates normalized from the start date.
		assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), day1.Date)
		assert.Equal(t, time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), result.Itinerary[1].Date)

		// Budget recomputed from the parsed days, not taken from the model.
		assert.Equal(t, 2500.0, result.Budget.Accommodation)
		assert.Equal(t, 200.0, result.Budget.Food)
		assert.Equal(t, 30.0, result.Budget.Activities)
		assert.Equal(t, 1000.0, result.Budget.Transport)
		assert.Equal(t, 600.0, result.Budget.Miscellaneous)
		assert.Equal(t, 4330.0, result.Budget.Total)

		textGen.AssertExpectations(t)
		placesSvc.AssertExpectations(t)
	})

	t.Run("model error maps to ErrGenerationFailed", func(t *testing.T) {
		textGen := new(MockTextGenerator)
		placesSvc := new(MockPlacesService)
		placesSvc.On("FetchPlaceSet", mock.Anything, "Shillong").Return(candidates, nil).Once()
		textGen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("", errors.New("rpc error")).Once()

		gen := NewAIGenerator(textGen, placesSvc, testLogger(), 0)
		_, err := gen.Generate(ctx, aiTestRequest())
		assert.ErrorIs(t, err, types.ErrGenerationFailed)
	})

	t.Run("timeout maps to ErrGenerationFailed", func(t *testing.T) {
		textGen := new(MockTextGenerator)
		placesSvc := new(MockPlacesService)
		placesSvc.On("FetchPlaceSet", mock.Anything, "Shillong").Return(candidates, nil).Once()
		textGen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("", context.DeadlineExceeded).Once()

		gen := NewAIGenerator(textGen, placesSvc, testLogger(), time.Millisecond)
		_, err := gen.Generate(ctx, aiTestRequest())
		assert.ErrorIs(t, err, types.ErrGenerationFailed)
	})

	t.Run("empty response maps to ErrGenerationFailed", func(t *testing.T) {
		textGen := new(MockTextGenerator)
		placesSvc := new(MockPlacesService)
		placesSvc.On("FetchPlaceSet", mock.Anything, "Shillong").Return(candidates, nil).Once()
		textGen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("", nil).Once()

		gen := NewAIGenerator(textGen, placesSvc, testLogger(), 0)
		_, err := gen.Generate(ctx, aiTestRequest())
		assert.ErrorIs(t, err, types.ErrGenerationFailed)
	})

	t.Run("unparseable response maps to ErrMalformedOutput", func(t *testing.T) {
		textGen := new(MockTextGenerator)
		placesSvc := new(MockPlacesService)
		placesSvc.On("FetchPlaceSet", mock.Anything, "Shillong").Return(candidates, nil).Once()
		textGen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return("I am sorry, I cannot plan this trip.", nil).Once()

		gen := NewAIGenerator(textGen, placesSvc, testLogger(), 0)
		_, err := gen.Generate(ctx, aiTestRequest())
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("wrong day count maps to ErrMalformedOutput", func(t *testing.T) {
		oneDay := `{"itinerary": [{"day": 1, "title": "Only", "activities": [], "meals": []}]}`
		textGen := new(MockTextGenerator)
		placesSvc := new(MockPlacesService)
		placesSvc.On("FetchPlaceSet", mock.Anything, "Shillong").Return(candidates, nil).Once()
		textGen.On("GenerateContent", mock.Anything, mock.Anything, mock.Anything).
			Return(oneDay, nil).Once()

		gen := NewAIGenerator(textGen, placesSvc, testLogger(), 0)
		_, err := gen.Generate(ctx, aiTestRequest())
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})
}

func TestBuildItineraryPrompt(t *testing.T) {
	req := aiTestRequest()
	set := FallbackPlaceSet("Shillong")

	t.Run("prompt carries trip details and candidates", func(t *testing.T) {
		prompt := buildItineraryPrompt(req, 2, set)
		assert.Contains(t, prompt, "Shillong")
		assert.Contains(t, prompt, "exactly 2 entries")
		assert.Contains(t, prompt, "Elephant Falls")
		assert.Contains(t, prompt, "Cafe Shillong Heritage")
		assert.Contains(t, prompt, "Hotel Polo Towers")
	})

	t.Run("existing plan summary appears on regeneration", func(t *testing.T) {
		req := req
		req.ExistingItinerary = []types.DayPlan{
			{Day: 1, Activities: []types.Activity{{Activity: "Visit Elephant Falls"}}},
			{Day: 2},
		}
		prompt := buildItineraryPrompt(req, 2, set)
		assert.Contains(t, prompt, "Visit Elephant Falls")
		assert.Contains(t, prompt, "(empty)")
	})
}
