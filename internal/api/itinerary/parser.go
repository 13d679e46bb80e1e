package itinerary

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// cleanJSONResponse strips markdown code fences and any prose surrounding the
// JSON object the model was asked to return.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(strings.TrimSpace(response), "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	lastBrace := strings.LastIndex(response, "}")
	if firstBrace == -1 || lastBrace == -1 || lastBrace < firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}

// aiItineraryResponse is the strict schema the model response is validated
// against. Unknown fields are ignored; missing required fields are rejected.
type aiItineraryResponse struct {
	Itinerary []aiDayPlan `json:"itinerary"`
}

type aiDayPlan struct {
	Day           int                  `json:"day"`
	Title         string               `json:"title"`
	Activities    []aiActivity         `json:"activities"`
	Meals         []types.Meal         `json:"meals"`
	Accommodation *types.Accommodation `json:"accommodation"`
}

type aiActivity struct {
	Time        string  `json:"time"`
	Activity    string  `json:"activity"`
	Location    string  `json:"location"`
	Duration    string  `json:"duration"`
	Cost        float64 `json:"cost"`
	Description string  `json:"description"`
}

// parseItineraryResponse parses and validates the model's text output into
// day plans. Any schema violation is a hard failure wrapping
// types.ErrMalformedOutput: partially parsed output cannot be trusted to
// satisfy the downstream budget and indexing invariants.
func parseItineraryResponse(text string, duration int) ([]types.DayPlan, error) {
	clean := cleanJSONResponse(text)

	var parsed aiItineraryResponse
	if err := json.Unmarshal([]byte(clean), &parsed); err != nil {
		return nil, fmt.Errorf("response is not valid JSON: %v: %w", err, types.ErrMalformedOutput)
	}
	if len(parsed.Itinerary) == 0 {
		return nil, fmt.Errorf("response has no itinerary days: %w", types.ErrMalformedOutput)
	}
	if len(parsed.Itinerary) != duration {
		return nil, fmt.Errorf("response has %d days, expected %d: %w",
			len(parsed.Itinerary), duration, types.ErrMalformedOutput)
	}

	sort.Slice(parsed.Itinerary, func(i, j int) bool {
		return parsed.Itinerary[i].Day < parsed.Itinerary[j].Day
	})

	days := make([]types.DayPlan, 0, duration)
	for i, d := range parsed.Itinerary {
		if d.Day != i+1 {
			return nil, fmt.Errorf("day indices are not a contiguous 1-based sequence: %w", types.ErrMalformedOutput)
		}
		if d.Title == "" {
			return nil, fmt.Errorf("day %d is missing a title: %w", d.Day, types.ErrMalformedOutput)
		}

		day := types.DayPlan{
			Day:        d.Day,
			Title:      d.Title,
			Activities: make([]types.Activity, 0, len(d.Activities)),
			Meals:      sanitizeMeals(d.Meals),
		}
		for _, a := range d.Activities {
			if a.Activity == "" {
				return nil, fmt.Errorf("day %d has an activity without a name: %w", d.Day, types.ErrMalformedOutput)
			}
			if a.Cost < 0 {
				return nil, fmt.Errorf("day %d has a negative activity cost: %w", d.Day, types.ErrMalformedOutput)
			}
			day.Activities = append(day.Activities, types.Activity{
				Time:        a.Time,
				Activity:    a.Activity,
				Location:    a.Location,
				Duration:    a.Duration,
				Cost:        a.Cost,
				Description: a.Description,
			})
		}
		if d.Accommodation != nil && d.Accommodation.Name != "" && d.Day < duration {
			day.Accommodation = d.Accommodation
		}
		days = append(days, day)
	}
	return days, nil
}

// sanitizeMeals keeps at most one meal per type, dropping entries with
// unknown types or negative costs rather than failing the whole parse.
func sanitizeMeals(meals []types.Meal) []types.Meal {
	seen := make(map[string]bool, 3)
	out := make([]types.Meal, 0, 3)
	for _, m := range meals {
		switch m.MealType {
		case "breakfast", "lunch", "dinner":
		default:
			continue
		}
		if m.Cost < 0 || m.Restaurant == "" || seen[m.MealType] {
			continue
		}
		seen[m.MealType] = true
		out = append(out, m)
	}
	return out
}
