package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

const (
	morningSlot   = "09:00 AM"
	afternoonSlot = "02:00 PM"
	checkInTime   = "02:00 PM"
	checkOutTime  = "11:00 AM"

	defaultActivityDuration = "2 hours"
)

var mealOrder = []string{"breakfast", "lunch", "dinner"}

var genericMeals = map[string]types.Place{
	"breakfast": {Name: "Local Cafe", Cost: 150},
	"lunch":     {Name: "Local Restaurant", Cost: 300},
	"dinner":    {Name: "Local Dinner Spot", Cost: 400},
}

// GenerateTemplateItinerary builds a complete day-by-day itinerary and budget
// from the request and the supplied candidate places, with no external calls.
// It is deterministic: identical inputs always produce identical output.
// Empty candidate lists degrade to empty activity lists and generic meal
// labels; the only rejected input is a non-positive duration, which callers
// must have validated upstream.
func GenerateTemplateItinerary(req types.TripRequest, places types.PlaceSet) (types.GenerationResult, error) {
	duration := req.Duration()
	if duration < 1 {
		return types.GenerationResult{}, fmt.Errorf("trip duration must be at least 1 day: %w", types.ErrValidation)
	}

	days := make([]types.DayPlan, 0, duration)
	for d := 1; d <= duration; d++ {
		day := types.DayPlan{
			Day:        d,
			Title:      dayTitle(d, duration, places.Attractions),
			Activities: []types.Activity{},
			Meals:      buildMeals(places.Restaurants),
		}

		// Morning slot every day; afternoon slot except on the departure day.
		if morning, ok := attractionAt(places.Attractions, d-1); ok {
			day.Activities = append(day.Activities, makeActivity(morningSlot, "Visit", morning,
				fmt.Sprintf("Explore the beautiful %s", morning.Name)))
		}
		if d < duration {
			if afternoon, ok := attractionAt(places.Attractions, d); ok {
				day.Activities = append(day.Activities, makeActivity(afternoonSlot, "Explore", afternoon,
					fmt.Sprintf("Discover %s", afternoon.Name)))
			}
		}

		// No checkout-day stay.
		if d < duration {
			day.Accommodation = pickAccommodation(places.Hotels, req)
		}

		days = append(days, day)
	}

	days = Reconcile(days, places.Attractions, req.StartDate)

	return types.GenerationResult{
		Itinerary: days,
		Budget:    ComposeBudget(days, duration),
		Duration:  duration,
	}, nil
}

func dayTitle(d, duration int, attractions []types.Place) string {
	switch {
	case d == 1:
		return "Arrival & Exploration"
	case d == duration:
		return "Departure Day"
	default:
		if attraction, ok := attractionAt(attractions, d); ok {
			return fmt.Sprintf("Day %d - %s", d, attraction.Name)
		}
		return fmt.Sprintf("Day %d - Exploration", d)
	}
}

func attractionAt(attractions []types.Place, index int) (types.Place, bool) {
	if len(attractions) == 0 {
		return types.Place{}, false
	}
	return attractions[index%len(attractions)], true
}

func makeActivity(slot, verb string, place types.Place, description string) types.Activity {
	duration := place.Duration
	if duration == "" {
		duration = defaultActivityDuration
	}
	if place.Description != "" {
		description = place.Description
	}
	activity := types.Activity{
		Time:        slot,
		Activity:    fmt.Sprintf("%s %s", verb, place.Name),
		Location:    place.Name,
		Duration:    duration,
		Cost:        place.Cost,
		Description: description,
	}
	if place.Coordinates != (types.Coordinates{}) {
		coords := place.Coordinates
		activity.Coordinates = &coords
	}
	return activity
}

// buildMeals assembles one meal per type. A restaurant carrying the matching
// type tag wins; otherwise untagged restaurants are assigned in order, and a
// generic label covers the rest.
func buildMeals(restaurants []types.Place) []types.Meal {
	meals := make([]types.Meal, 0, len(mealOrder))
	untaggedIdx := 0
	for _, mealType := range mealOrder {
		if r, ok := restaurantByType(restaurants, mealType); ok {
			meals = append(meals, types.Meal{MealType: mealType, Restaurant: r.Name, Cost: r.Cost})
			continue
		}
		if r, ok := nextUntagged(restaurants, &untaggedIdx); ok {
			cost := r.Cost
			if cost == 0 {
				cost = genericMeals[mealType].Cost
			}
			meals = append(meals, types.Meal{MealType: mealType, Restaurant: r.Name, Cost: cost})
			continue
		}
		generic := genericMeals[mealType]
		meals = append(meals, types.Meal{MealType: mealType, Restaurant: generic.Name, Cost: generic.Cost})
	}
	return meals
}

func restaurantByType(restaurants []types.Place, mealType string) (types.Place, bool) {
	for _, r := range restaurants {
		if r.MealType == mealType {
			return r, true
		}
	}
	return types.Place{}, false
}

func nextUntagged(restaurants []types.Place, idx *int) (types.Place, bool) {
	for ; *idx < len(restaurants); *idx++ {
		if restaurants[*idx].MealType == "" {
			r := restaurants[*idx]
			*idx++
			return r, true
		}
	}
	return types.Place{}, false
}

// pickAccommodation prefers a hotel matching the requested type within the
// budget range, falling back to the first available hotel. Best-effort:
// generation is never blocked on a missing preference match.
func pickAccommodation(hotels []types.Place, req types.TripRequest) *types.Accommodation {
	if len(hotels) == 0 {
		return nil
	}

	chosen := hotels[0]
	for _, h := range hotels {
		if h.HotelType == req.HotelPreference &&
			h.PricePerNight >= req.HotelBudgetMin && h.PricePerNight <= req.HotelBudgetMax {
			chosen = h
			break
		}
	}

	hotelType := chosen.HotelType
	if hotelType == "" {
		hotelType = req.HotelPreference
	}
	return &types.Accommodation{
		Name:      chosen.Name,
		HotelType: hotelType,
		Cost:      chosen.PricePerNight,
		CheckIn:   checkInTime,
		CheckOut:  checkOutTime,
	}
}
