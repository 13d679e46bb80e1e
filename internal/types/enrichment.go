package types

// Image is one destination photo from the image search provider.
type Image struct {
	URL          string `json:"url"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Photographer string `json:"photographer,omitempty"`
	Description  string `json:"description,omitempty"`
}

// DestinationInfo is the encyclopedia summary for a destination. Description
// is never empty; the adapter substitutes a templated sentence when the
// provider yields nothing.
type DestinationInfo struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image,omitempty"`
	PageURL     string `json:"url,omitempty"`
}

// WeatherCurrent is the leading entry of the short-range forecast.
type WeatherCurrent struct {
	Temp        int     `json:"temp"`
	FeelsLike   int     `json:"feels_like"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
	Humidity    int     `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
}

// WeatherDay is one slot of the short-range forecast.
type WeatherDay struct {
	Date        string `json:"date"`
	Temp        int    `json:"temp"`
	TempMin     int    `json:"temp_min"`
	TempMax     int    `json:"temp_max"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherForecast is the short-range forecast for a destination city. A nil
// forecast on the trip snapshot means the weather provider was not configured
// or had no data; that is a valid state, not an error.
type WeatherForecast struct {
	City    string         `json:"city"`
	Country string         `json:"country"`
	Current WeatherCurrent `json:"current"`
	Daily   []WeatherDay   `json:"daily"`
}

// EnrichmentSnapshot is the destination context captured at trip-creation
// time and stored alongside the itinerary.
type EnrichmentSnapshot struct {
	Images          []Image          `json:"images"`
	DestinationInfo *DestinationInfo `json:"destinationInfo,omitempty"`
	Weather         *WeatherForecast `json:"weather,omitempty"`
}
