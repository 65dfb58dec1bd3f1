package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/metrics"
	"github.com/portfolio/backend/internal/widget"
	"github.com/portfolio/backend/pkg/utils"
)

const (
	// DefaultWeatherAPI is the Open-Meteo forecast endpoint
	DefaultWeatherAPI = "https://api.open-meteo.com/v1/forecast"
	// DefaultGeocodeAPI is the Nominatim reverse geocoding endpoint
	DefaultGeocodeAPI = "https://nominatim.openstreetmap.org/reverse"

	fallbackLocation = "Your Location"
	cacheRadiusKm    = 10.0
	userAgent        = "portfolio-backend/1.0"
)

// WeatherConfig configures the weather service
type WeatherConfig struct {
	APIURL     string
	GeocodeURL string
	MaxAge     time.Duration
	Timeout    time.Duration
}

// WeatherService handles weather data fetching
type WeatherService struct {
	cfg        WeatherConfig
	httpClient *http.Client
	logger     *zap.Logger
	recorder   metrics.Recorder
	now        func() time.Time

	mu    sync.RWMutex
	cache []domain.Weather
}

// NewWeatherService creates a new weather service
func NewWeatherService(cfg WeatherConfig, logger *zap.Logger, recorder metrics.Recorder) *WeatherService {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultWeatherAPI
	}
	if cfg.GeocodeURL == "" {
		cfg.GeocodeURL = DefaultGeocodeAPI
	}
	if cfg.MaxAge <= 0 {
		cfg.MaxAge = 15 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &WeatherService{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

// OpenMeteoResponse represents the Open-Meteo forecast response
type OpenMeteoResponse struct {
	Current struct {
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		Visibility          float64 `json:"visibility"`
	} `json:"current"`
	Daily struct {
		WeatherCode    []int     `json:"weather_code"`
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
	} `json:"daily"`
}

// NominatimResponse represents the reverse geocoding response
type NominatimResponse struct {
	Address struct {
		City   string `json:"city"`
		County string `json:"county"`
	} `json:"address"`
}

// GetWeather returns current weather at the given point. Recent lookups
// close to the point are served from cache.
func (s *WeatherService) GetWeather(ctx context.Context, at domain.Coordinates) (domain.Weather, error) {
	if !at.Valid() {
		return domain.Weather{}, fmt.Errorf("weather: %w: lat=%f lon=%f", ErrInvalidCoordinates, at.Latitude, at.Longitude)
	}
	if w, ok := s.cached(at); ok {
		s.recorder.ObserveWeatherFetch(0, metrics.ResultCached)
		return w, nil
	}
	return s.Refresh(ctx, at)
}

// Refresh bypasses the cache and stores the fresh result.
func (s *WeatherService) Refresh(ctx context.Context, at domain.Coordinates) (domain.Weather, error) {
	start := s.now()
	w, err := s.fetch(ctx, at)
	if err != nil {
		s.logger.Warn("Weather upstream failed, serving mock data",
			zap.Float64("lat", at.Latitude),
			zap.Float64("lon", at.Longitude),
			zap.Error(err))
		s.recorder.ObserveWeatherFetch(s.now().Sub(start), metrics.ResultFallback)
		return s.getMockWeather(at), nil
	}
	w.Location = s.lookupLocation(ctx, at)
	s.store(w)
	s.recorder.ObserveWeatherFetch(s.now().Sub(start), metrics.ResultSuccess)
	return w, nil
}

func (s *WeatherService) fetch(ctx context.Context, at domain.Coordinates) (domain.Weather, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(at.Latitude, 'f', 4, 64))
	q.Set("longitude", strconv.FormatFloat(at.Longitude, 'f', 4, 64))
	q.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m,visibility")
	q.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min")
	q.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.APIURL+"?"+q.Encode(), nil)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.Weather{}, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Weather{}, fmt.Errorf("weather: upstream returned status %d", resp.StatusCode)
	}

	var om OpenMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&om); err != nil {
		return domain.Weather{}, fmt.Errorf("weather: failed to decode response: %w", err)
	}
	if len(om.Daily.TemperatureMax) == 0 || len(om.Daily.TemperatureMin) == 0 {
		return domain.Weather{}, fmt.Errorf("weather: response has no daily forecast")
	}

	class := widget.Classify(om.Current.WeatherCode)
	return domain.Weather{
		Temperature: utils.RoundInt(om.Current.Temperature),
		FeelsLike:   utils.RoundInt(om.Current.ApparentTemperature),
		High:        utils.RoundInt(om.Daily.TemperatureMax[0]),
		Low:         utils.RoundInt(om.Daily.TemperatureMin[0]),
		Humidity:    utils.RoundInt(om.Current.RelativeHumidity),
		WindSpeed:   utils.RoundInt(om.Current.WindSpeed),
		Visibility:  utils.RoundTo(om.Current.Visibility/1000, 1),
		WeatherCode: om.Current.WeatherCode,
		Condition:   class.Condition,
		Icon:        class.Icon,
		Latitude:    at.Latitude,
		Longitude:   at.Longitude,
		Timestamp:   s.now(),
	}, nil
}

// lookupLocation names the point; any failure yields a generic label.
func (s *WeatherService) lookupLocation(ctx context.Context, at domain.Coordinates) string {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("lat", strconv.FormatFloat(at.Latitude, 'f', 4, 64))
	q.Set("lon", strconv.FormatFloat(at.Longitude, 'f', 4, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.GeocodeURL+"?"+q.Encode(), nil)
	if err != nil {
		return fallbackLocation
	}
	// Nominatim's usage policy requires an identifying agent.
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Debug("Reverse geocoding failed", zap.Error(err))
		return fallbackLocation
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackLocation
	}

	var geo NominatimResponse
	if err := json.NewDecoder(resp.Body).Decode(&geo); err != nil {
		return fallbackLocation
	}
	switch {
	case geo.Address.City != "":
		return geo.Address.City
	case geo.Address.County != "":
		return geo.Address.County
	}
	return fallbackLocation
}

func (s *WeatherService) cached(at domain.Coordinates) (domain.Weather, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	for _, w := range s.cache {
		if now.Sub(w.Timestamp) > s.cfg.MaxAge {
			continue
		}
		if utils.Haversine(at.Latitude, at.Longitude, w.Latitude, w.Longitude) <= cacheRadiusKm {
			return w, true
		}
	}
	return domain.Weather{}, false
}

func (s *WeatherService) store(w domain.Weather) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	kept := s.cache[:0]
	for _, c := range s.cache {
		if now.Sub(c.Timestamp) > s.cfg.MaxAge {
			continue
		}
		if utils.Haversine(w.Latitude, w.Longitude, c.Latitude, c.Longitude) <= cacheRadiusKm {
			continue
		}
		kept = append(kept, c)
	}
	s.cache = append(kept, w)
}

// getMockWeather returns seasonal placeholder weather
func (s *WeatherService) getMockWeather(at domain.Coordinates) domain.Weather {
	month := s.now().Month()
	// Southern hemisphere seasons run the other way.
	if at.Latitude < 0 {
		month = (month+5)%12 + 1
	}

	var code, temp, feelsLike int
	switch {
	case month >= 12 || month <= 2: // Winter
		code, temp, feelsLike = 71, -2, -6
	case month >= 3 && month <= 5: // Spring
		code, temp, feelsLike = 2, 14, 13
	case month >= 6 && month <= 8: // Summer
		code, temp, feelsLike = 0, 27, 29
	default: // Autumn
		code, temp, feelsLike = 3, 9, 7
	}

	class := widget.Classify(code)
	return domain.Weather{
		Temperature: temp,
		FeelsLike:   feelsLike,
		High:        temp + 4,
		Low:         temp - 5,
		Humidity:    65,
		WindSpeed:   12,
		Visibility:  10,
		WeatherCode: code,
		Condition:   class.Condition,
		Icon:        class.Icon,
		Location:    fallbackLocation,
		Latitude:    at.Latitude,
		Longitude:   at.Longitude,
		Timestamp:   s.now(),
		IsMock:      true,
	}
}
