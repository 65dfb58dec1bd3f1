package domain

import (
	"time"

	"github.com/portfolio/backend/internal/widget"
)

// Weather represents current conditions for a location
type Weather struct {
	Temperature int                 `json:"temperature"`
	FeelsLike   int                 `json:"feels_like"`
	High        int                 `json:"high"`
	Low         int                 `json:"low"`
	Humidity    int                 `json:"humidity"`
	WindSpeed   int                 `json:"wind_speed"`
	Visibility  float64             `json:"visibility_km"`
	WeatherCode int                 `json:"weather_code"`
	Condition   string              `json:"condition"`
	Icon        widget.IconCategory `json:"icon"`
	Location    string              `json:"location"`
	Latitude    float64             `json:"lat"`
	Longitude   float64             `json:"lon"`
	Timestamp   time.Time           `json:"timestamp"`
	IsMock      bool                `json:"is_mock"`
}

// WeatherResponse wraps weather data with metadata
type WeatherResponse struct {
	Data    Weather `json:"data"`
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
}

// Coordinates is a point on the globe in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
}

// Valid reports whether the coordinates lie within WGS84 bounds
func (c Coordinates) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}
