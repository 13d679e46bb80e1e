package itinerary

import "github.com/FACorreiaa/go-trip-planner/internal/types"

// ComposeBudget aggregates per-day costs into the categorized trip budget.
// Accommodation, food and activities are itemized sums; transport and
// miscellaneous are flat per-day allowances. Total is always the sum of the
// five categories. Pure and idempotent: same days and duration always produce
// the same budget.
func ComposeBudget(days []types.DayPlan, duration int) types.Budget {
	var b types.Budget

	for _, day := range days {
		if day.Accommodation != nil {
			b.Accommodation += day.Accommodation.Cost
		}
		for _, meal := range day.Meals {
			b.Food += meal.Cost
		}
		for _, activity := range day.Activities {
			b.Activities += activity.Cost
		}
	}

	b.Transport = float64(duration) * types.PerDayTransportCost
	b.Miscellaneous = float64(duration) * types.PerDayMiscCost
	b.Total = b.Accommodation + b.Food + b.Activities + b.Transport + b.Miscellaneous
	return b
}
