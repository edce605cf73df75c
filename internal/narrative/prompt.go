package narrative

import (
	"fmt"
	"math"
	"strings"

	"github.com/surfhub/swellcast/backend-go/internal/models"
)

// BuildPrompt renders the analysis request for scored marine conditions.
func BuildPrompt(location string, m *models.MarineConditions, spot models.SpotConfiguration, q models.SurfQuality) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Analyze the surf conditions for %s using real marine data:\n\n", location)

	fmt.Fprintf(&b, "MARINE CONDITIONS (from %s):\n", strings.ToUpper(string(m.DataSource)))
	fmt.Fprintf(&b, "- Significant Wave Height: %.1fm\n", m.Waves.SignificantHeight)
	fmt.Fprintf(&b, "- Primary Swell: %.1fm @ %ss from %s°\n",
		m.Waves.PrimarySwellHeight, models.FormatNumber(m.Waves.PrimarySwellPeriod), models.FormatNumber(m.Waves.PrimarySwellDirection))
	fmt.Fprintf(&b, "- Wind Waves: %.1fm @ %ss\n", m.Waves.WindWaveHeight, models.FormatNumber(m.Waves.WindWavePeriod))
	fmt.Fprintf(&b, "- Wind: %.1f m/s from %s°\n", m.Wind.Speed, models.FormatNumber(m.Wind.Direction))
	fmt.Fprintf(&b, "- Weather: %s\n\n", WeatherSummary(m.Weather))

	b.WriteString("SURF SPOT ANALYSIS:\n")
	fmt.Fprintf(&b, "- Spot Type: %s\n", spot.Type)
	fmt.Fprintf(&b, "- Difficulty: %s\n", spot.Difficulty)
	fmt.Fprintf(&b, "- Optimal Wave Size: %s-%sm\n",
		models.FormatNumber(spot.OptimalWaveHeight.Min), models.FormatNumber(spot.OptimalWaveHeight.Max))
	fmt.Fprintf(&b, "- Optimal Swell Direction: %s-%s°\n\n",
		models.FormatNumber(spot.OptimalSwellDirection.Min), models.FormatNumber(spot.OptimalSwellDirection.Max))

	b.WriteString("SURF QUALITY BREAKDOWN:\n")
	fmt.Fprintf(&b, "- Overall Score: %d/10 (%s)\n", q.OverallScore, q.Rating)
	fmt.Fprintf(&b, "- Wave Height Score: %.1f/10\n", q.Breakdown.WaveHeight*10)
	fmt.Fprintf(&b, "- Wave Period Score: %.1f/10\n", q.Breakdown.WavePeriod*10)
	fmt.Fprintf(&b, "- Wind Score: %.1f/10\n", q.Breakdown.Wind*10)
	fmt.Fprintf(&b, "- Swell Direction Score: %.1f/10\n\n", q.Breakdown.SwellDirection*10)

	fmt.Fprintf(&b, "Provide a comprehensive surf forecast including specific advice for surfers at this %s. ", spot.Type)
	b.WriteString("Mention the data source quality and any limitations. Give recommendations for different skill levels.")
	return b.String()
}

// BuildBasicPrompt asks for a weather-only assessment when no per-spot
// scoring is available.
func BuildBasicPrompt(location string, m *models.MarineConditions) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a friendly surf forecaster providing surf conditions for %s.\n\n", location)
	b.WriteString("Current Conditions:\n")
	fmt.Fprintf(&b, "- Temperature: %s°C\n", oneDecimal(m.Weather.Temperature))
	fmt.Fprintf(&b, "- Weather: %s\n", m.Weather.Description)
	fmt.Fprintf(&b, "- Wind: %.1f m/s from %s°\n", m.Wind.Speed, models.FormatNumber(m.Wind.Direction))
	fmt.Fprintf(&b, "- Humidity: %s%%\n", models.FormatNumber(m.Weather.Humidity))
	fmt.Fprintf(&b, "- Pressure: %s hPa\n", models.FormatNumber(m.Weather.Pressure))
	fmt.Fprintf(&b, "- Visibility: %sm\n\n", models.FormatNumber(m.Weather.Visibility))
	b.WriteString("Give a short, encouraging assessment of the session, how the wind affects surfing, and what to look for. ")
	b.WriteString("There is no wave or swell data, so focus on the weather.")
	return b.String()
}

// WeatherSummary renders e.g. "clear sky, 18°C".
func WeatherSummary(w models.Weather) string {
	return fmt.Sprintf("%s, %s°C", w.Description, oneDecimal(w.Temperature))
}

// oneDecimal drops float noise from unit conversions: 16.999999 renders as
// "17" and 17.25 as "17.3".
func oneDecimal(v float64) string {
	return models.FormatNumber(math.Round(v*10) / 10)
}

// WindSummary renders the wind with a label derived from its sub-score.
func WindSummary(w models.Wind, windScore float64) string {
	label := "Poor"
	switch {
	case windScore > 0.7:
		label = "Favorable"
	case windScore > 0.4:
		label = "Marginal"
	}
	return fmt.Sprintf("%.1f m/s from %s° (%s)", w.Speed, models.FormatNumber(w.Direction), label)
}

// FallbackSummary is used in place of generated prose when the model is
// unavailable.
func FallbackSummary(location string, m *models.MarineConditions, q models.SurfQuality) string {
	return fmt.Sprintf(
		"%s conditions at %s (%d/10). Waves around %.1fm with %.1fm of swell @ %ss from %s°, wind %.1f m/s from %s°. %s",
		q.Rating, location, q.OverallScore,
		m.Waves.SignificantHeight, m.Waves.PrimarySwellHeight,
		models.FormatNumber(m.Waves.PrimarySwellPeriod), models.FormatNumber(m.Waves.PrimarySwellDirection),
		m.Wind.Speed, models.FormatNumber(m.Wind.Direction),
		q.Description,
	)
}

// BasicFallbackSummary is the weather-only counterpart of FallbackSummary.
func BasicFallbackSummary(location string, m *models.MarineConditions) string {
	return fmt.Sprintf("Weather-based surf assessment for %s: %s with %.1f m/s wind from %s°. Check local surf reports for wave conditions.",
		location, WeatherSummary(m.Weather), m.Wind.Speed, models.FormatNumber(m.Wind.Direction))
}
