package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praka2hb/synergi/store/cache"
)

func newTestClient(geocodeURL, forecastURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		geocache:    cache.New(16, time.Minute),
	}
}

const geocodeBody = `{
	"results": [
		{"name": "Mumbai", "latitude": 19.0728, "longitude": 72.8826, "country": "India"}
	]
}`

const forecastBody = `{
	"current": {
		"temperature_2m": 29.4,
		"relative_humidity_2m": 74,
		"apparent_temperature": 33.1,
		"weather_code": 61,
		"wind_speed_10m": 14.2
	},
	"hourly": {
		"time": ["2025-06-01T12:00", "2025-06-01T13:00"],
		"temperature_2m": [29.4, 30.1],
		"precipitation_probability": [40, 55],
		"weather_code": [61, 63]
	},
	"daily": {
		"time": ["2025-06-01"],
		"weather_code": [63],
		"temperature_2m_max": [31.0],
		"temperature_2m_min": [26.5],
		"sunrise": ["2025-06-01T06:01"],
		"sunset": ["2025-06-01T19:14"]
	}
}`

func TestClient_Geocode(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "Mumbai", r.URL.Query().Get("name"))
		w.Write([]byte(geocodeBody))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	ctx := context.Background()

	loc, err := client.Geocode(ctx, "Mumbai")
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", loc.Name)
	assert.Equal(t, "India", loc.Country)
	assert.InDelta(t, 19.0728, loc.Latitude, 0.001)

	// Second lookup is served from the cache.
	_, err = client.Geocode(ctx, "mumbai")
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClient_GeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, "")
	_, err := client.Geocode(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no location found")
}

func TestClient_GeocodeEmptyCity(t *testing.T) {
	client := NewClient()
	_, err := client.Geocode(context.Background(), "  ")
	assert.Error(t, err)
}

func TestClient_Forecast(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("latitude"))
		w.Write([]byte(forecastBody))
	}))
	defer server.Close()

	client := newTestClient("", server.URL)
	report, err := client.Forecast(context.Background(), &Location{
		Name: "Mumbai", Country: "India", Latitude: 19.0728, Longitude: 72.8826,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mumbai", report.City)
	assert.InDelta(t, 29.4, report.Current.TemperatureC, 0.001)
	assert.Equal(t, 74, report.Current.Humidity)
	assert.Equal(t, "Slight rain", report.Current.Description)
	assert.Equal(t, 500, report.Current.ConditionID)

	require.Len(t, report.Hourly, 2)
	assert.Equal(t, 55, report.Hourly[1].PrecipProbPct)

	require.Len(t, report.Daily, 1)
	assert.Equal(t, "Moderate rain", report.Daily[0].Description)
	assert.Equal(t, "2025-06-01T06:01", report.Daily[0].Sunrise)
}

func TestClient_ForecastServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient("", server.URL)
	_, err := client.Forecast(context.Background(), &Location{Name: "Pune"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestDescribeCode(t *testing.T) {
	assert.Equal(t, "Clear sky", DescribeCode(0))
	assert.Equal(t, "Thunderstorm", DescribeCode(95))
	assert.Equal(t, "Unknown conditions", DescribeCode(42))
}

func TestConditionID(t *testing.T) {
	tests := []struct {
		code     int
		expected int
	}{
		{0, 800},
		{2, 802},
		{45, 741},
		{53, 300},
		{65, 500},
		{75, 600},
		{81, 521},
		{95, 200},
		{42, 800},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, ConditionID(tt.code), "code %d", tt.code)
	}
}
