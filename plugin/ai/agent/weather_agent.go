package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/praka2hb/synergi/plugin/ai"
	"github.com/praka2hb/synergi/plugin/ai/router"
	"github.com/praka2hb/synergi/plugin/weather"
)

// WeatherAgent answers weather questions grounded in live forecast data.
// It emits the structured report before narrating it, so clients can
// render the card while text is still streaming.
type WeatherAgent struct {
	llm     ai.LLMService
	weather *weather.Client
}

var _ Agent = (*WeatherAgent)(nil)

// NewWeatherAgent creates the weather adapter.
func NewWeatherAgent(llm ai.LLMService, client *weather.Client) *WeatherAgent {
	return &WeatherAgent{llm: llm, weather: client}
}

func (a *WeatherAgent) Name() string { return "weather" }

// Stream fetches conditions for the message's location and narrates them.
// A message with no resolvable location is an error; the orchestrator
// turns that into an apology.
func (a *WeatherAgent) Stream(ctx context.Context, turn *Turn, callback EventCallback) error {
	city := strings.TrimSpace(turn.Location)
	if city == "" {
		city = router.ExtractLocation(turn.UserInput)
	}
	if city == "" {
		return errors.New("no location found in message")
	}

	report, err := a.weather.Fetch(ctx, city)
	if err != nil {
		return errors.Wrapf(err, "fetch weather for %q", city)
	}

	if err := callback(Event{Type: EventWeatherData, Weather: report}); err != nil {
		return err
	}

	prompt := weatherPrompt + "\n\nWeather report:\n" + formatReport(report)
	messages := ai.FormatMessages(prompt, turn.UserInput, turn.History)
	_, err = streamLLM(ctx, a.llm, messages, callback)
	return err
}

// formatReport renders a report as plain text for the model prompt.
func formatReport(r *weather.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Location: %s, %s\n", r.City, r.Country)
	fmt.Fprintf(&b, "Now: %s, %.1f°C (feels like %.1f°C), humidity %d%%, wind %.1f km/h\n",
		r.Current.Description, r.Current.TemperatureC, r.Current.FeelsLikeC,
		r.Current.Humidity, r.Current.WindSpeedKmh)

	if len(r.Hourly) > 0 {
		b.WriteString("Next hours:\n")
		for _, h := range r.Hourly {
			fmt.Fprintf(&b, "  %s: %.1f°C, %d%% precipitation chance\n",
				h.Time, h.TemperatureC, h.PrecipProbPct)
		}
	}
	for _, d := range r.Daily {
		fmt.Fprintf(&b, "%s: %s, high %.1f°C, low %.1f°C, sunrise %s, sunset %s\n",
			d.Date, d.Description, d.HighC, d.LowC, d.Sunrise, d.Sunset)
	}
	return b.String()
}
