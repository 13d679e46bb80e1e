package types

// PlaceCategory is the candidate place kind the provider adapter can search for.
type PlaceCategory string

const (
	CategoryAttraction PlaceCategory = "attraction"
	CategoryRestaurant PlaceCategory = "restaurant"
	CategoryHotel      PlaceCategory = "hotel"
)

// Coordinates is a WGS84 point. Lat must be in [-90,90], Lng in [-180,180].
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a transient candidate returned by the place data provider (or the
// built-in fallback dataset). It is consumed during generation and discarded,
// except where its coordinates are copied onto an Activity.
type Place struct {
	Name        string        `json:"name"`
	Address     string        `json:"address,omitempty"`
	Rating      float64       `json:"rating"`
	Coordinates Coordinates   `json:"coordinates"`
	Category    PlaceCategory `json:"category"`
	PhotoURL    string        `json:"photo,omitempty"`

	// Fields below are only populated by the fallback dataset; provider
	// results leave them zero and the generators substitute defaults.
	Duration      string  `json:"duration,omitempty"`      // attractions, e.g. "2 hours"
	Cost          float64 `json:"cost,omitempty"`          // attraction entry / meal cost
	Description   string  `json:"description,omitempty"`   // attractions
	MealType      string  `json:"mealType,omitempty"`      // restaurants: breakfast|lunch|dinner
	HotelType     string  `json:"hotelType,omitempty"`     // hotels: budget|standard|luxury
	PricePerNight float64 `json:"pricePerNight,omitempty"` // hotels
}

// PlaceSet groups the three candidate lists handed to the generators. Any of
// the lists may be empty; the generators degrade gracefully.
type PlaceSet struct {
	Attractions []Place `json:"attractions"`
	Restaurants []Place `json:"restaurants"`
	Hotels      []Place `json:"hotels"`
}
