package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/store/cache"
)

const (
	defaultGeocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	defaultForecastURL = "https://api.open-meteo.com/v1/forecast"

	geocodeTTL   = 24 * time.Hour
	hourlyPoints = 12
	forecastDays = 3
)

// Client talks to the Open-Meteo geocoding and forecast APIs. Geocoding
// results are cached; city coordinates do not move.
type Client struct {
	httpClient  *http.Client
	geocodeURL  string
	forecastURL string
	geocache    *cache.Cache
}

// NewClient creates a weather client with a 10 second request timeout.
func NewClient() *Client {
	return NewClientWithURLs(defaultGeocodeURL, defaultForecastURL)
}

// NewClientWithURLs creates a client against custom API endpoints.
func NewClientWithURLs(geocodeURL, forecastURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		geocodeURL:  geocodeURL,
		forecastURL: forecastURL,
		geocache:    cache.New(256, geocodeTTL),
	}
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
	} `json:"results"`
}

// Geocode resolves a city name to coordinates.
func (c *Client) Geocode(ctx context.Context, city string) (*Location, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, errors.New("empty city name")
	}

	cacheKey := "geocode:" + strings.ToLower(city)
	if cached, ok := c.geocache.Get(cacheKey); ok {
		var loc Location
		if err := json.Unmarshal(cached, &loc); err == nil {
			return &loc, nil
		}
	}

	query := url.Values{}
	query.Set("name", city)
	query.Set("count", "1")
	query.Set("language", "en")
	query.Set("format", "json")

	var resp geocodeResponse
	if err := c.getJSON(ctx, c.geocodeURL+"?"+query.Encode(), &resp); err != nil {
		return nil, errors.Wrapf(err, "geocode %q", city)
	}
	if len(resp.Results) == 0 {
		return nil, errors.Errorf("no location found for %q", city)
	}

	loc := &Location{
		Name:      resp.Results[0].Name,
		Country:   resp.Results[0].Country,
		Latitude:  resp.Results[0].Latitude,
		Longitude: resp.Results[0].Longitude,
	}
	if blob, err := json.Marshal(loc); err == nil {
		c.geocache.Set(cacheKey, blob, geocodeTTL)
	}
	return loc, nil
}

type forecastResponse struct {
	Current struct {
		Temperature2m       float64 `json:"temperature_2m"`
		RelativeHumidity2m  int     `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed10m        float64 `json:"wind_speed_10m"`
	} `json:"current"`
	Hourly struct {
		Time                     []string  `json:"time"`
		Temperature2m            []float64 `json:"temperature_2m"`
		PrecipitationProbability []int     `json:"precipitation_probability"`
		WeatherCode              []int     `json:"weather_code"`
	} `json:"hourly"`
	Daily struct {
		Time             []string  `json:"time"`
		WeatherCode      []int     `json:"weather_code"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
		Temperature2mMin []float64 `json:"temperature_2m_min"`
		Sunrise          []string  `json:"sunrise"`
		Sunset           []string  `json:"sunset"`
	} `json:"daily"`
}

// Forecast fetches conditions for a geocoded location and reshapes them
// into a Report.
func (c *Client) Forecast(ctx context.Context, loc *Location) (*Report, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.4f", loc.Latitude))
	query.Set("longitude", fmt.Sprintf("%.4f", loc.Longitude))
	query.Set("current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m")
	query.Set("hourly", "temperature_2m,precipitation_probability,weather_code")
	query.Set("daily", "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset")
	query.Set("forecast_days", fmt.Sprintf("%d", forecastDays))
	query.Set("timezone", "auto")

	var resp forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+query.Encode(), &resp); err != nil {
		return nil, errors.Wrapf(err, "forecast for %s", loc.Name)
	}

	report := &Report{
		City:    loc.Name,
		Country: loc.Country,
		Current: Current{
			TemperatureC: resp.Current.Temperature2m,
			FeelsLikeC:   resp.Current.ApparentTemperature,
			Humidity:     resp.Current.RelativeHumidity2m,
			WindSpeedKmh: resp.Current.WindSpeed10m,
			WeatherCode:  resp.Current.WeatherCode,
			Description:  DescribeCode(resp.Current.WeatherCode),
			ConditionID:  ConditionID(resp.Current.WeatherCode),
		},
	}

	for i := range resp.Hourly.Time {
		if i >= hourlyPoints {
			break
		}
		point := HourlyPoint{Time: resp.Hourly.Time[i]}
		if i < len(resp.Hourly.Temperature2m) {
			point.TemperatureC = resp.Hourly.Temperature2m[i]
		}
		if i < len(resp.Hourly.PrecipitationProbability) {
			point.PrecipProbPct = resp.Hourly.PrecipitationProbability[i]
		}
		if i < len(resp.Hourly.WeatherCode) {
			point.WeatherCode = resp.Hourly.WeatherCode[i]
		}
		report.Hourly = append(report.Hourly, point)
	}

	for i := range resp.Daily.Time {
		day := DailySummary{Date: resp.Daily.Time[i]}
		if i < len(resp.Daily.Temperature2mMax) {
			day.HighC = resp.Daily.Temperature2mMax[i]
		}
		if i < len(resp.Daily.Temperature2mMin) {
			day.LowC = resp.Daily.Temperature2mMin[i]
		}
		if i < len(resp.Daily.Sunrise) {
			day.Sunrise = resp.Daily.Sunrise[i]
		}
		if i < len(resp.Daily.Sunset) {
			day.Sunset = resp.Daily.Sunset[i]
		}
		if i < len(resp.Daily.WeatherCode) {
			day.WeatherCode = resp.Daily.WeatherCode[i]
			day.Description = DescribeCode(resp.Daily.WeatherCode[i])
		}
		report.Daily = append(report.Daily, day)
	}

	return report, nil
}

// Fetch geocodes a city and returns its full report.
func (c *Client) Fetch(ctx context.Context, city string) (*Report, error) {
	loc, err := c.Geocode(ctx, city)
	if err != nil {
		return nil, err
	}
	return c.Forecast(ctx, loc)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return errors.Wrap(err, "create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "read response")
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}
	return errors.Wrap(json.Unmarshal(body, out), "decode response")
}
