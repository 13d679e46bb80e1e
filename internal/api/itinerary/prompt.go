package itinerary

import (
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// summarizeExisting compacts the already-planned days into "day: activities"
// lines so the model can fill gaps without duplicating existing activities.
func summarizeExisting(days []types.DayPlan) string {
	if len(days) == 0 {
		return "No days are planned yet."
	}
	var sb strings.Builder
	for _, day := range days {
		names := make([]string, 0, len(day.Activities))
		for _, a := range day.Activities {
			names = append(names, a.Activity)
		}
		if len(names) == 0 {
			fmt.Fprintf(&sb, "Day %d: (empty)\n", day.Day)
			continue
		}
		fmt.Fprintf(&sb, "Day %d: %s\n", day.Day, strings.Join(names, ", "))
	}
	return sb.String()
}

func placeNames(places []types.Place) string {
	if len(places) == 0 {
		return "(none available)"
	}
	names := make([]string, 0, len(places))
	for _, p := range places {
		names = append(names, p.Name)
	}
	return strings.Join(names, ", ")
}

// buildItineraryPrompt composes the single-turn instruction for the model.
// The response must be a JSON document matching the itinerary schema; the
// parser rejects anything else.
func buildItineraryPrompt(req types.TripRequest, duration int, set types.PlaceSet) string {
	return fmt.Sprintf(`You are a professional travel planner. I have a %d-day trip to %s.

**Current Plan Status:**
%s

**Goal:**
Fill in the empty days or gaps in the itinerary with logical, geographically efficient activities.
DO NOT duplicate activities that are already planned.

**Trip Details:**
- Destination: %s
- Duration: %d days (%s to %s)
- Group: %s, activity preference: %s
- Hotel Preference: %s (Budget: INR %.0f - %.0f per night)

**Available Real Places (use these primarily):**
Attractions: %s
Restaurants: %s
Hotels: %s

**Output Format:**
Return STRICTLY a JSON object with the FULL %d-day itinerary and nothing else:
{
  "itinerary": [
    {
      "day": 1,
      "title": "Theme of the day",
      "activities": [
        {
          "time": "09:00 AM",
          "activity": "Name of activity",
          "location": "Name of place",
          "duration": "2 hours",
          "cost": 100,
          "description": "A short, engaging paragraph describing the place and why it's worth visiting."
        }
      ],
      "meals": [
        {"mealType": "breakfast", "restaurant": "Name", "cost": 200}
      ],
      "accommodation": {"name": "Hotel name", "hotelType": "%s", "cost": 2500, "checkIn": "02:00 PM", "checkOut": "11:00 AM"}
    }
  ]
}

IMPORTANT:
- The itinerary array must contain exactly %d entries with day numbered 1 to %d.
- Do not include accommodation on the final day.
- Write unique, engaging descriptions for each activity.
- Ensure logical flow (morning -> afternoon -> evening).
- Return ONLY valid JSON, no markdown fences, no prose.`,
		duration, req.Destination,
		summarizeExisting(req.ExistingItinerary),
		req.Destination,
		duration, req.StartDate.Format("Mon Jan 2 2006"), req.EndDate.Format("Mon Jan 2 2006"),
		orDefault(req.GroupType, "solo"), orDefault(req.ActivityPreference, "Mixed Experience"),
		orDefault(req.HotelPreference, types.HotelStandard), req.HotelBudgetMin, req.HotelBudgetMax,
		placeNames(set.Attractions), placeNames(set.Restaurants), placeNames(set.Hotels),
		duration,
		orDefault(req.HotelPreference, types.HotelStandard),
		duration, duration,
	)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
