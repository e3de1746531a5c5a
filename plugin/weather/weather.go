// Package weather fetches live conditions and forecasts from Open-Meteo
// and reshapes them into the structures the weather agent streams out.
package weather

// Location is a geocoded place.
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Current holds the present conditions at a location.
type Current struct {
	TemperatureC float64 `json:"temperature_c"`
	FeelsLikeC   float64 `json:"feels_like_c"`
	Humidity     int     `json:"humidity"`
	WindSpeedKmh float64 `json:"wind_speed_kmh"`
	WeatherCode  int     `json:"weather_code"`
	Description  string  `json:"description"`
	// ConditionID is the legacy condition code some clients key their
	// icons on. Derived from WeatherCode, never sent by the provider.
	ConditionID int `json:"condition_id"`
}

// HourlyPoint is one step of the hourly series.
type HourlyPoint struct {
	Time          string  `json:"time"`
	TemperatureC  float64 `json:"temperature_c"`
	PrecipProbPct int     `json:"precip_prob_pct"`
	WeatherCode   int     `json:"weather_code"`
}

// DailySummary is one day of the daily series.
type DailySummary struct {
	Date        string  `json:"date"`
	HighC       float64 `json:"high_c"`
	LowC        float64 `json:"low_c"`
	Sunrise     string  `json:"sunrise"`
	Sunset      string  `json:"sunset"`
	WeatherCode int     `json:"weather_code"`
	Description string  `json:"description"`
}

// Report is the full payload for one city, emitted as a structured
// event before the agent narrates it.
type Report struct {
	City    string         `json:"city"`
	Country string         `json:"country"`
	Current Current        `json:"current"`
	Hourly  []HourlyPoint  `json:"hourly"`
	Daily   []DailySummary `json:"daily"`
}
