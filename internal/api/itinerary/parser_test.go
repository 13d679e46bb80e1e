package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const validTwoDayResponse = `{
	"itinerary": [
		{
			"day": 1,
			"title": "Arrival in Shillong",
			"activities": [
				{"time": "10:00 AM", "activity": "Visit Elephant Falls", "location": "Elephant Falls", "duration": "2 hours", "cost": 20, "description": "Waterfall visit"}
			],
			"meals": [
				{"mealType": "breakfast", "restaurant": "Cafe Shillong Heritage", "cost": 200}
			],
			"accommodation": {"name": "Hotel Centre Point", "hotelType": "standard", "cost": 2500, "checkIn": "02:00 PM", "checkOut": "11:00 AM"}
		},
		{
			"day": 2,
			"title": "Departure",
			"activities": [
				{"time": "09:00 AM", "activity": "Explore Police Bazaar", "location": "Police Bazaar", "duration": "2 hours", "cost": 0, "description": "Shopping"}
			],
			"meals": [],
			"accommodation": null
		}
	]
}`

func TestCleanJSONResponse(t *testing.T) {
	want := `{"itinerary": []}`

	t.Run("strips json code fences", func(t *testing.T) {
		assert.Equal(t, want, cleanJSONResponse("```json\n{\"itinerary\": []}\n```"))
	})

	t.Run("strips bare code fences", func(t *testing.T) {
		assert.Equal(t, want, cleanJSONResponse("```\n{\"itinerary\": []}\n```"))
	})

	t.Run("extracts the object from surrounding prose", func(t *testing.T) {
		assert.Equal(t, want, cleanJSONResponse("Here is your itinerary:\n{\"itinerary\": []}\nEnjoy your trip!"))
	})

	t.Run("passes clean JSON through unchanged", func(t *testing.T) {
		assert.Equal(t, want, cleanJSONResponse(want))
	})
}

func TestParseItineraryResponse(t *testing.T) {
	t.Run("valid response parses into day plans", func(t *testing.T) {
		days, err := parseItineraryResponse(validTwoDayResponse, 2)
		require.NoError(t, err)
		require.Len(t, days, 2)

		assert.Equal(t, 1, days[0].Day)
		assert.Equal(t, "Arrival in Shillong", days[0].Title)
		require.Len(t, days[0].Activities, 1)
		assert.Equal(t, "Visit Elephant Falls", days[0].Activities[0].Activity)
		require.NotNil(t, days[0].Accommodation)
		assert.Equal(t, "Hotel Centre Point", days[0].Accommodation.Name)
	})

	t.Run("valid response inside code fences parses", func(t *testing.T) {
		days, err := parseItineraryResponse("```json\n"+validTwoDayResponse+"\n```", 2)
		require.NoError(t, err)
		assert.Len(t, days, 2)
	})

	t.Run("final-day accommodation is dropped", func(t *testing.T) {
		withStay := `{"itinerary": [
			{"day": 1, "title": "Only Day", "activities": [], "meals": [],
			 "accommodation": {"name": "Should Not Persist", "cost": 2000}}
		]}`
		days, err := parseItineraryResponse(withStay, 1)
		require.NoError(t, err)
		assert.Nil(t, days[0].Accommodation)
	})

	t.Run("invalid JSON is malformed output", func(t *testing.T) {
		_, err := parseItineraryResponse("not json at all", 2)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("empty itinerary is malformed output", func(t *testing.T) {
		_, err := parseItineraryResponse(`{"itinerary": []}`, 2)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("wrong day count is malformed output", func(t *testing.T) {
		_, err := parseItineraryResponse(validTwoDayResponse, 3)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("non-contiguous day indices are malformed output", func(t *testing.T) {
		resp := `{"itinerary": [
			{"day": 1, "title": "A", "activities": [], "meals": []},
			{"day": 3, "title": "B", "activities": [], "meals": []}
		]}`
		_, err := parseItineraryResponse(resp, 2)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("out-of-order days are sorted before validation", func(t *testing.T) {
		resp := `{"itinerary": [
			{"day": 2, "title": "Second", "activities": [], "meals": []},
			{"day": 1, "title": "First", "activities": [], "meals": []}
		]}`
		days, err := parseItineraryResponse(resp, 2)
		require.NoError(t, err)
		assert.Equal(t, "First", days[0].Title)
		assert.Equal(t, "Second", days[1].Title)
	})

	t.Run("missing title is malformed output", func(t *testing.T) {
		resp := `{"itinerary": [{"day": 1, "title": "", "activities": [], "meals": []}]}`
		_, err := parseItineraryResponse(resp, 1)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("unnamed activity is malformed output", func(t *testing.T) {
		resp := `{"itinerary": [{"day": 1, "title": "A", "activities": [{"activity": "", "cost": 10}], "meals": []}]}`
		_, err := parseItineraryResponse(resp, 1)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})

	t.Run("negative activity cost is malformed output", func(t *testing.T) {
		resp := `{"itinerary": [{"day": 1, "title": "A", "activities": [{"activity": "Walk", "cost": -5}], "meals": []}]}`
		_, err := parseItineraryResponse(resp, 1)
		assert.ErrorIs(t, err, types.ErrMalformedOutput)
	})
}

func TestSanitizeMeals(t *testing.T) {
	meals := []types.Meal{
		{MealType: "breakfast", Restaurant: "Cafe A", Cost: 200},
		{MealType: "breakfast", Restaurant: "Cafe B", Cost: 250}, // duplicate type
		{MealType: "brunch", Restaurant: "Cafe C", Cost: 300},    // unknown type
		{MealType: "dinner", Restaurant: "", Cost: 400},          // no restaurant
		{MealType: "lunch", Restaurant: "Dhaba", Cost: -1},       // negative cost
		{MealType: "dinner", Restaurant: "Trattoria", Cost: 500},
	}

	out := sanitizeMeals(meals)
	require.Len(t, out, 2)
	assert.Equal(t, "Cafe A", out[0].Restaurant)
	assert.Equal(t, "Trattoria", out[1].Restaurant)
}
