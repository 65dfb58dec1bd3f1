package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portfolio/backend/internal/domain"
	"github.com/portfolio/backend/internal/widget"
)

const openMeteoBody = `{
  "current": {
    "temperature_2m": 17.6,
    "relative_humidity_2m": 72,
    "apparent_temperature": 16.4,
    "weather_code": 61,
    "wind_speed_10m": 11.5,
    "visibility": 24140
  },
  "daily": {
    "weather_code": [61],
    "temperature_2m_max": [19.2],
    "temperature_2m_min": [10.7]
  }
}`

type upstream struct {
	weather   *httptest.Server
	geocode   *httptest.Server
	hits      atomic.Int32
	geoHits   atomic.Int32
	status    int
	geoBody   string
	lastQuery atomic.Value
}

func newUpstream(t *testing.T, status int, geoBody string) *upstream {
	u := &upstream{status: status, geoBody: geoBody}
	u.weather = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		u.lastQuery.Store(r.URL.RawQuery)
		if u.status != http.StatusOK {
			w.WriteHeader(u.status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(openMeteoBody))
	}))
	u.geocode = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.geoHits.Add(1)
		_, _ = w.Write([]byte(u.geoBody))
	}))
	t.Cleanup(func() {
		u.weather.Close()
		u.geocode.Close()
	})
	return u
}

func (u *upstream) service() *WeatherService {
	return NewWeatherService(WeatherConfig{
		APIURL:     u.weather.URL,
		GeocodeURL: u.geocode.URL,
		MaxAge:     time.Minute,
	}, nil, nil)
}

const lagosAddress = `{"address":{"city":"Lagos"}}`

var lagos = domain.Coordinates{Latitude: 6.5244, Longitude: 3.3792}

func TestGetWeatherMapsOpenMeteo(t *testing.T) {
	u := newUpstream(t, http.StatusOK, lagosAddress)
	svc := u.service()

	w, err := svc.GetWeather(context.Background(), lagos)
	require.NoError(t, err)

	assert.False(t, w.IsMock)
	assert.Equal(t, 18, w.Temperature)
	assert.Equal(t, 16, w.FeelsLike)
	assert.Equal(t, 19, w.High)
	assert.Equal(t, 11, w.Low)
	assert.Equal(t, 72, w.Humidity)
	assert.Equal(t, 12, w.WindSpeed)
	assert.Equal(t, 24.1, w.Visibility)
	assert.Equal(t, 61, w.WeatherCode)
	assert.Equal(t, "Rainy", w.Condition)
	assert.Equal(t, widget.IconRain, w.Icon)
	assert.Equal(t, "Lagos", w.Location)
	query, _ := u.lastQuery.Load().(string)
	assert.Contains(t, query, "timezone=auto")
	assert.Contains(t, query, "latitude=6.5244")
}

func TestGetWeatherLocationFallbacks(t *testing.T) {
	u := newUpstream(t, http.StatusOK, `{"address":{"county":"Ikeja"}}`)
	w, err := u.service().GetWeather(context.Background(), lagos)
	require.NoError(t, err)
	assert.Equal(t, "Ikeja", w.Location)

	u2 := newUpstream(t, http.StatusOK, `not json`)
	w, err = u2.service().GetWeather(context.Background(), lagos)
	require.NoError(t, err)
	assert.Equal(t, "Your Location", w.Location)
	assert.False(t, w.IsMock)
}

func TestGetWeatherFallsBackToMock(t *testing.T) {
	u := newUpstream(t, http.StatusServiceUnavailable, lagosAddress)

	w, err := u.service().GetWeather(context.Background(), lagos)
	require.NoError(t, err)
	assert.True(t, w.IsMock)
	assert.Equal(t, widget.Classify(w.WeatherCode).Condition, w.Condition)
	assert.EqualValues(t, 0, u.geoHits.Load())
}

func TestGetWeatherUsesNearbyCache(t *testing.T) {
	u := newUpstream(t, http.StatusOK, lagosAddress)
	svc := u.service()
	ctx := context.Background()

	_, err := svc.GetWeather(ctx, lagos)
	require.NoError(t, err)
	// About 3 km away.
	_, err = svc.GetWeather(ctx, domain.Coordinates{Latitude: 6.55, Longitude: 3.39})
	require.NoError(t, err)
	assert.EqualValues(t, 1, u.hits.Load())

	// Abuja is far enough to need its own lookup.
	_, err = svc.GetWeather(ctx, domain.Coordinates{Latitude: 9.0765, Longitude: 7.3986})
	require.NoError(t, err)
	assert.EqualValues(t, 2, u.hits.Load())
}

func TestGetWeatherCacheExpires(t *testing.T) {
	u := newUpstream(t, http.StatusOK, lagosAddress)
	svc := u.service()
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	_, err := svc.GetWeather(context.Background(), lagos)
	require.NoError(t, err)

	clock = clock.Add(2 * time.Minute)
	_, err = svc.GetWeather(context.Background(), lagos)
	require.NoError(t, err)
	assert.EqualValues(t, 2, u.hits.Load())
}

func TestGetWeatherRejectsInvalidCoordinates(t *testing.T) {
	svc := newUpstream(t, http.StatusOK, lagosAddress).service()
	_, err := svc.GetWeather(context.Background(), domain.Coordinates{Latitude: 91})
	assert.ErrorIs(t, err, ErrInvalidCoordinates)
}

func TestMockWeatherFollowsHemisphere(t *testing.T) {
	svc := NewWeatherService(WeatherConfig{}, nil, nil)
	svc.now = func() time.Time { return time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC) }

	north := svc.getMockWeather(domain.Coordinates{Latitude: 52})
	south := svc.getMockWeather(domain.Coordinates{Latitude: -33})

	assert.Equal(t, "Snowy", north.Condition)
	assert.Equal(t, "Clear Sky", south.Condition)
}
