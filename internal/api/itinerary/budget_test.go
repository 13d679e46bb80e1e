package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestComposeBudget(t *testing.T) {
	days := []types.DayPlan{
		{
			Day: 1,
			Activities: []types.Activity{
				{Activity: "Visit Elephant Falls", Cost: 20},
				{Activity: "Explore Shillong Peak", Cost: 50},
			},
			Meals: []types.Meal{
				{MealType: "breakfast", Cost: 200},
				{MealType: "lunch", Cost: 300},
				{MealType: "dinner", Cost: 500},
			},
			Accommodation: &types.Accommodation{Name: "Hotel Centre Point", Cost: 2500},
		},
		{
			Day: 2,
			Activities: []types.Activity{
				{Activity: "Visit Ward's Lake", Cost: 10},
			},
			Meals: []types.Meal{
				{MealType: "breakfast", Cost: 200},
			},
			// Departure day, no accommodation.
		},
	}

	t.Run("itemized categories sum per-day costs", func(t *testing.T) {
		budget := ComposeBudget(days, 2)

		assert.Equal(t, 2500.0, budget.Accommodation)
		assert.Equal(t, 1200.0, budget.Food)
		assert.Equal(t, 80.0, budget.Activities)
	})

	t.Run("transport and miscellaneous are flat per-day allowances", func(t *testing.T) {
		budget := ComposeBudget(days, 2)

		assert.Equal(t, 1000.0, budget.Transport)
		assert.Equal(t, 600.0, budget.Miscellaneous)
	})

	t.Run("total is the sum of the five categories", func(t *testing.T) {
		budget := ComposeBudget(days, 2)

		expected := budget.Accommodation + budget.Food + budget.Activities + budget.Transport + budget.Miscellaneous
		assert.Equal(t, expected, budget.Total)
		assert.Equal(t, 5380.0, budget.Total)
	})

	t.Run("idempotent for identical input", func(t *testing.T) {
		first := ComposeBudget(days, 2)
		second := ComposeBudget(days, 2)
		assert.Equal(t, first, second)
	})

	t.Run("empty days still carry the flat allowances", func(t *testing.T) {
		budget := ComposeBudget([]types.DayPlan{{Day: 1}, {Day: 2}, {Day: 3}}, 3)

		assert.Zero(t, budget.Accommodation)
		assert.Zero(t, budget.Food)
		assert.Zero(t, budget.Activities)
		assert.Equal(t, 1500.0, budget.Transport)
		assert.Equal(t, 900.0, budget.Miscellaneous)
		assert.Equal(t, 2400.0, budget.Total)
	})
}
