package config

import "os"

// Credentials holds upstream API keys. It is built once at start-up and
// only read afterwards.
type Credentials struct {
	OpenWeatherKey  string
	StormglassKey   string
	WorldWeatherKey string
	GeminiKey       string
}

// CredentialsFromEnv reads the API keys from the process environment.
func CredentialsFromEnv() Credentials {
	return Credentials{
		OpenWeatherKey:  firstNonEmpty(os.Getenv("OPENWEATHER_API_KEY"), os.Getenv("NEXT_PUBLIC_OPENWEATHER_API_KEY")),
		StormglassKey:   os.Getenv("STORMGLASS_API_KEY"),
		WorldWeatherKey: os.Getenv("WORLD_WEATHER_API_KEY"),
		GeminiKey:       firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
	}
}

// HasBaseline reports whether the weather-only key is set. Geocoding and the
// fallback adapter depend on it.
func (c Credentials) HasBaseline() bool {
	return c.OpenWeatherKey != ""
}

// HasGlobalMarine reports whether any paid global marine provider is usable.
func (c Credentials) HasGlobalMarine() bool {
	return c.StormglassKey != "" || c.WorldWeatherKey != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
