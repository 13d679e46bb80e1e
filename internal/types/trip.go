package types

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus tracks a trip through its lifecycle.
type TripStatus string

const (
	TripStatusDraft     TripStatus = "draft"
	TripStatusPlanned   TripStatus = "planned"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
)

// HotelPreference levels accepted on a trip request.
const (
	HotelBudget   = "budget"
	HotelStandard = "standard"
	HotelLuxury   = "luxury"
)

// PerDayTransportCost and PerDayMiscCost are the flat per-day allowances used
// by the budget composer. Costs are estimates in INR.
const (
	PerDayTransportCost = 500.0
	PerDayMiscCost      = 300.0
)

// TripRequest carries the parameters of a trip-creation (or regeneration)
// call. ExistingItinerary is only set on regeneration, where the current plan
// is context for the generator rather than data to discard.
type TripRequest struct {
	UserID             uuid.UUID `json:"userId"`
	Departure          string    `json:"departure,omitempty"`
	Destination        string    `json:"destination"`
	StartDate          time.Time `json:"startDate"`
	EndDate            time.Time `json:"endDate"`
	ActivityPreference string    `json:"activityPreference,omitempty"`
	GroupType          string    `json:"groupType,omitempty"`
	HotelPreference    string    `json:"hotelPreference,omitempty"`
	HotelBudgetMin     float64   `json:"hotelBudgetMin,omitempty"`
	HotelBudgetMax     float64   `json:"hotelBudgetMax,omitempty"`
	InvitedEmails      []string  `json:"invitedEmails,omitempty"`
	ExistingItinerary  []DayPlan `json:"-"`
}

// Duration returns the inclusive day count between start and end dates.
// Callers must validate EndDate >= StartDate first; the result is always >= 1
// for valid requests.
func (r TripRequest) Duration() int {
	start := truncateToDay(r.StartDate)
	end := truncateToDay(r.EndDate)
	return int(end.Sub(start).Hours()/24) + 1
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Activity is one scheduled item in a day plan. Time and Duration are display
// labels, not parsed values; ordering within a day is by construction order.
// Coordinates are attached by the reconciler when a candidate place matches,
// and stay nil otherwise ("no map pin").
type Activity struct {
	Time        string       `json:"time"`
	Activity    string       `json:"activity"`
	Location    string       `json:"location"`
	Duration    string       `json:"duration"`
	Cost        float64      `json:"cost"`
	Description string       `json:"description"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// Meal is one of up to three meals on a day plan.
type Meal struct {
	MealType   string  `json:"mealType"` // breakfast|lunch|dinner
	Restaurant string  `json:"restaurant"`
	Cost       float64 `json:"cost"`
}

// Accommodation is the overnight stay for a day. By convention the final day
// of an itinerary has none (no checkout-day stay).
type Accommodation struct {
	Name      string  `json:"name"`
	HotelType string  `json:"hotelType"`
	Cost      float64 `json:"cost"` // per night
	CheckIn   string  `json:"checkIn"`
	CheckOut  string  `json:"checkOut"`
}

// DayPlan is one calendar day of an itinerary. Day is 1-based and Date is
// derived from the trip start date, never independently mutated.
type DayPlan struct {
	Day           int            `json:"day"`
	Date          time.Time      `json:"date"`
	Title         string         `json:"title"`
	Activities    []Activity     `json:"activities"`
	Meals         []Meal         `json:"meals"`
	Accommodation *Accommodation `json:"accommodation,omitempty"`
}

// Budget is the categorized cost estimate for a trip. Total is always the sum
// of the five categories; transport and miscellaneous are flat per-day
// allowances rather than itemized sums.
type Budget struct {
	Accommodation float64 `json:"accommodation"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Transport     float64 `json:"transport"`
	Miscellaneous float64 `json:"miscellaneous"`
	Total         float64 `json:"total"`
}

// GenerationResult is what either itinerary generator hands back.
type GenerationResult struct {
	Itinerary []DayPlan `json:"itinerary"`
	Budget    Budget    `json:"budget"`
	Duration  int       `json:"duration"`
}

// CollaboratorStatus for trip invitees. Data only; no workflow is enforced.
type CollaboratorStatus string

const (
	CollaboratorPending  CollaboratorStatus = "pending"
	CollaboratorAccepted CollaboratorStatus = "accepted"
	CollaboratorDeclined CollaboratorStatus = "declined"
)

// Collaborator is an invited trip member.
type Collaborator struct {
	Email     string             `json:"email"`
	Name      string             `json:"name,omitempty"`
	Status    CollaboratorStatus `json:"status"`
	InvitedAt time.Time          `json:"invitedAt"`
}

// FlightOption and TrainOption are static travel suggestions attached to a
// trip at creation time.
type FlightOption struct {
	Airline   string  `json:"airline"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Price     float64 `json:"price"`
	Duration  string  `json:"duration"`
}

type TrainOption struct {
	Name      string  `json:"name"`
	Departure string  `json:"departure"`
	Arrival   string  `json:"arrival"`
	Price     float64 `json:"price"`
	Duration  string  `json:"duration"`
}

// Recommendations groups travel suggestions shown on the dashboard.
type Recommendations struct {
	Flights []FlightOption `json:"flights"`
	Trains  []TrainOption  `json:"trains"`
	Hotels  []Place        `json:"hotels"`
}

// Trip is the persisted aggregate. The generation core only ever replaces
// Itinerary and Budget wholesale; everything else is written once at creation
// or edited through the update endpoint.
type Trip struct {
	ID                 uuid.UUID           `json:"id"`
	UserID             uuid.UUID           `json:"userId"`
	Departure          string              `json:"departure,omitempty"`
	Destination        string              `json:"destination"`
	StartDate          time.Time           `json:"startDate"`
	EndDate            time.Time           `json:"endDate"`
	Duration           int                 `json:"duration"`
	ActivityPreference string              `json:"activityPreference,omitempty"`
	GroupType          string              `json:"groupType,omitempty"`
	HotelPreference    string              `json:"hotelPreference,omitempty"`
	HotelBudgetMin     float64             `json:"hotelBudgetMin,omitempty"`
	HotelBudgetMax     float64             `json:"hotelBudgetMax,omitempty"`
	Itinerary          []DayPlan           `json:"itinerary"`
	Budget             Budget              `json:"budget"`
	Recommendations    Recommendations     `json:"recommendations"`
	Collaborators      []Collaborator      `json:"collaborators,omitempty"`
	Enrichment         EnrichmentSnapshot  `json:"enrichedData"`
	Status             TripStatus          `json:"status"`
	CreatedAt          time.Time           `json:"createdAt"`
	UpdatedAt          time.Time           `json:"updatedAt"`
}

// Request converts the stored trip back into the request shape the generators
// consume, with the current itinerary carried as regeneration context.
func (t *Trip) Request() TripRequest {
	return TripRequest{
		UserID:             t.UserID,
		Departure:          t.Departure,
		Destination:        t.Destination,
		StartDate:          t.StartDate,
		EndDate:            t.EndDate,
		ActivityPreference: t.ActivityPreference,
		GroupType:          t.GroupType,
		HotelPreference:    t.HotelPreference,
		HotelBudgetMin:     t.HotelBudgetMin,
		HotelBudgetMax:     t.HotelBudgetMax,
		ExistingItinerary:  t.Itinerary,
	}
}

// UpdateTripParams is the partial-update shape accepted by PUT /trips/{id}.
// Nil fields are left untouched.
type UpdateTripParams struct {
	Itinerary     *[]DayPlan      `json:"itinerary,omitempty"`
	Budget        *Budget         `json:"budget,omitempty"`
	Status        *TripStatus     `json:"status,omitempty"`
	Collaborators *[]Collaborator `json:"collaborators,omitempty"`
}
