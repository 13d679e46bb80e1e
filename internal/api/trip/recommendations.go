package trip

import (
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// buildRecommendations attaches static flight/train suggestions and the
// destination's hotel candidates to a new trip. Suggestions are illustrative
// until a real booking provider is integrated.
func buildRecommendations(destination string, hotels []types.Place) types.Recommendations {
	if len(hotels) == 0 {
		hotels = itinerary.FallbackPlaceSet(destination).Hotels
	}
	return types.Recommendations{
		Flights: []types.FlightOption{
			{Airline: "IndiGo", Departure: "10:00 AM", Arrival: "12:30 PM", Price: 4500, Duration: "2h 30m"},
			{Airline: "Air India", Departure: "02:00 PM", Arrival: "04:45 PM", Price: 5200, Duration: "2h 45m"},
		},
		Trains: []types.TrainOption{
			{Name: "Rajdhani Express", Departure: "08:00 PM", Arrival: "06:00 AM", Price: 1500, Duration: "10h"},
		},
		Hotels: hotels,
	}
}
