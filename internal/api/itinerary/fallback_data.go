package itinerary

import (
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Curated candidate sets used when the place provider returns nothing, so
// template generation always has material to work with. Keyed by destination
// substring, with a generic "default" set as the last resort.
var fallbackData = map[string]types.PlaceSet{
	"shillong": {
		Attractions: []types.Place{
			{Name: "Elephant Falls", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 20, Description: "Three-tiered waterfall surrounded by lush greenery", Coordinates: types.Coordinates{Lat: 25.3176, Lng: 91.8933}},
			{Name: "Shillong Peak", Category: types.CategoryAttraction, Duration: "3 hours", Cost: 50, Description: "Highest point in Shillong with panoramic views", Coordinates: types.Coordinates{Lat: 25.5788, Lng: 91.8933}},
			{Name: "Ward's Lake", Category: types.CategoryAttraction, Duration: "1.5 hours", Cost: 10, Description: "Scenic horseshoe-shaped lake perfect for boating", Coordinates: types.Coordinates{Lat: 25.5788, Lng: 91.8933}},
			{Name: "Don Bosco Museum", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 100, Description: "Seven-story museum showcasing Northeast culture", Coordinates: types.Coordinates{Lat: 25.5788, Lng: 91.8933}},
			{Name: "Umiam Lake", Category: types.CategoryAttraction, Duration: "3 hours", Cost: 30, Description: "Beautiful reservoir with water sports activities", Coordinates: types.Coordinates{Lat: 25.6751, Lng: 91.9026}},
			{Name: "Police Bazaar", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 0, Description: "Main shopping area with local handicrafts", Coordinates: types.Coordinates{Lat: 25.5788, Lng: 91.8933}},
			{Name: "Cathedral of Mary Help", Category: types.CategoryAttraction, Duration: "1 hour", Cost: 0, Description: "Beautiful Gothic-style cathedral", Coordinates: types.Coordinates{Lat: 25.5788, Lng: 91.8933}},
		},
		Restaurants: []types.Place{
			{Name: "Cafe Shillong Heritage", Category: types.CategoryRestaurant, MealType: "breakfast", Cost: 200},
			{Name: "City Hut Family Dhaba", Category: types.CategoryRestaurant, MealType: "lunch", Cost: 300},
			{Name: "Trattoria", Category: types.CategoryRestaurant, MealType: "dinner", Cost: 500},
		},
		Hotels: []types.Place{
			{Name: "Hotel Polo Towers", Category: types.CategoryHotel, HotelType: types.HotelLuxury, PricePerNight: 4000, Rating: 4.5},
			{Name: "Hotel Centre Point", Category: types.CategoryHotel, HotelType: types.HotelStandard, PricePerNight: 2500, Rating: 4.0},
			{Name: "Ri Kynjai Resort", Category: types.CategoryHotel, HotelType: types.HotelLuxury, PricePerNight: 8000, Rating: 5.0},
			{Name: "Hotel Pegasus Crown", Category: types.CategoryHotel, HotelType: types.HotelBudget, PricePerNight: 1500, Rating: 3.5},
		},
	},
	"gangtok": {
		Attractions: []types.Place{
			{Name: "Tsomgo Lake", Category: types.CategoryAttraction, Duration: "4 hours", Cost: 500, Description: "Glacial lake at 12,400 ft with stunning mountain views", Coordinates: types.Coordinates{Lat: 27.3389, Lng: 88.6065}},
			{Name: "Nathula Pass", Category: types.CategoryAttraction, Duration: "5 hours", Cost: 1000, Description: "Indo-China border pass at 14,140 ft (permit required)", Coordinates: types.Coordinates{Lat: 27.3914, Lng: 88.8428}},
			{Name: "MG Marg", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 0, Description: "Pedestrian-only street with shops and cafes", Coordinates: types.Coordinates{Lat: 27.3314, Lng: 88.6138}},
			{Name: "Rumtek Monastery", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 50, Description: "Largest monastery in Sikkim with beautiful architecture", Coordinates: types.Coordinates{Lat: 27.2892, Lng: 88.6138}},
			{Name: "Hanuman Tok", Category: types.CategoryAttraction, Duration: "1.5 hours", Cost: 20, Description: "Temple with panoramic views of Kanchenjunga", Coordinates: types.Coordinates{Lat: 27.3389, Lng: 88.6065}},
			{Name: "Tashi Viewpoint", Category: types.CategoryAttraction, Duration: "1 hour", Cost: 10, Description: "Best sunrise views of Mt. Kanchenjunga", Coordinates: types.Coordinates{Lat: 27.3389, Lng: 88.6065}},
		},
		Restaurants: []types.Place{
			{Name: "Baker's Cafe", Category: types.CategoryRestaurant, MealType: "breakfast", Cost: 250},
			{Name: "The Square Restaurant", Category: types.CategoryRestaurant, MealType: "lunch", Cost: 400},
			{Name: "Taste of Tibet", Category: types.CategoryRestaurant, MealType: "dinner", Cost: 350},
		},
		Hotels: []types.Place{
			{Name: "Mayfair Spa Resort", Category: types.CategoryHotel, HotelType: types.HotelLuxury, PricePerNight: 6000, Rating: 5.0},
			{Name: "Hotel Sonam Delek", Category: types.CategoryHotel, HotelType: types.HotelStandard, PricePerNight: 2000, Rating: 4.0},
			{Name: "The Elgin Nor-Khill", Category: types.CategoryHotel, HotelType: types.HotelLuxury, PricePerNight: 7500, Rating: 4.8},
			{Name: "Hotel Sher-E-Punjab", Category: types.CategoryHotel, HotelType: types.HotelBudget, PricePerNight: 1200, Rating: 3.5},
		},
	},
}

var defaultFallback = types.PlaceSet{
	Attractions: []types.Place{
		{Name: "Local Market", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 100},
		{Name: "City Center", Category: types.CategoryAttraction, Duration: "3 hours", Cost: 50},
		{Name: "Cultural Museum", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 150},
		{Name: "Scenic Viewpoint", Category: types.CategoryAttraction, Duration: "2 hours", Cost: 50},
	},
	Restaurants: []types.Place{
		{Name: "Cafe", Category: types.CategoryRestaurant, MealType: "breakfast", Cost: 150},
		{Name: "Local Restaurant", Category: types.CategoryRestaurant, MealType: "lunch", Cost: 300},
		{Name: "Fine Dining", Category: types.CategoryRestaurant, MealType: "dinner", Cost: 500},
	},
	Hotels: []types.Place{
		{Name: "Standard Hotel", Category: types.CategoryHotel, HotelType: types.HotelStandard, PricePerNight: 2500, Rating: 4.0},
		{Name: "Luxury Resort", Category: types.CategoryHotel, HotelType: types.HotelLuxury, PricePerNight: 5000, Rating: 4.5},
	},
}

// FallbackPlaceSet returns the curated candidate set for a destination, or
// the generic default set when the destination is unknown.
func FallbackPlaceSet(destination string) types.PlaceSet {
	dest := strings.ToLower(destination)
	for key, set := range fallbackData {
		if strings.Contains(dest, key) {
			return set
		}
	}
	return defaultFallback
}

// MergeWithFallback fills any empty category of a provider-sourced place set
// from the curated fallback, so the template generator never starts from
// nothing when curated data exists.
func MergeWithFallback(set types.PlaceSet, destination string) types.PlaceSet {
	fb := FallbackPlaceSet(destination)
	if len(set.Attractions) == 0 {
		set.Attractions = fb.Attractions
	}
	if len(set.Restaurants) == 0 {
		set.Restaurants = fb.Restaurants
	}
	if len(set.Hotels) == 0 {
		set.Hotels = fb.Hotels
	}
	return set
}
