package itinerary

import (
	"strings"
	"time"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Reconcile attaches coordinates to activities by matching their free-text
// location against the candidate place list, and normalizes every day's date
// from the trip start date and the 1-based day index. It is a total function:
// an unmatched location simply keeps its coordinates absent, which renders as
// "no map pin".
func Reconcile(days []types.DayPlan, candidates []types.Place, startDate time.Time) []types.DayPlan {
	start := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)

	for i := range days {
		days[i].Date = start.AddDate(0, 0, days[i].Day-1)

		for j := range days[i].Activities {
			activity := &days[i].Activities[j]
			if activity.Coordinates != nil {
				continue
			}
			if place, ok := matchPlace(activity.Location, candidates); ok {
				coords := place.Coordinates
				activity.Coordinates = &coords
			}
		}
	}
	return days
}

// matchPlace does a case-insensitive substring match in either direction
// between the generated location label and candidate place names. No match is
// an acceptable degraded state.
func matchPlace(location string, candidates []types.Place) (types.Place, bool) {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc == "" {
		return types.Place{}, false
	}
	for _, place := range candidates {
		name := strings.ToLower(place.Name)
		if name == "" || place.Coordinates == (types.Coordinates{}) {
			continue
		}
		if strings.Contains(name, loc) || strings.Contains(loc, name) {
			return place, true
		}
	}
	return types.Place{}, false
}
