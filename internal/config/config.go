package config

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Environment     string
	LogLevel        zerolog.Level
	HTTPTimeout     time.Duration
	ProviderTimeout time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	HTTPAddr        string

	NOAABaseURL         string
	StormglassBaseURL   string
	WorldWeatherBaseURL string
	OpenWeatherBaseURL  string
	GeminiBaseURL       string
	GeminiModel         string

	// SpotCatalogBucket names the S3 bucket holding extra spot definitions.
	// Empty disables the catalog.
	SpotCatalogBucket string

	Credentials Credentials
}

type Option func(*Config)

// WithEnvironment allows setting the environment
func WithEnvironment(env string) Option {
	return func(c *Config) {
		c.Environment = env
	}
}

// WithLogLevel allows setting the log level
func WithLogLevel(level string) Option {
	return func(c *Config) {
		parsedLevel, err := zerolog.ParseLevel(level)
		if err != nil {
			parsedLevel = zerolog.InfoLevel
		}
		c.LogLevel = parsedLevel
	}
}

// WithHTTPTimeout allows setting the HTTP timeout
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.HTTPTimeout = timeout
	}
}

// WithProviderTimeout bounds a single marine adapter call
func WithProviderTimeout(timeout time.Duration) Option {
	return func(c *Config) {
		c.ProviderTimeout = timeout
	}
}

func WithMaxRetries(retries int) Option {
	return func(c *Config) {
		c.MaxRetries = retries
	}
}

func WithRetryDelay(delay time.Duration) Option {
	return func(c *Config) {
		c.RetryDelay = delay
	}
}

func WithHTTPAddr(addr string) Option {
	return func(c *Config) {
		c.HTTPAddr = addr
	}
}

func WithGeminiModel(model string) Option {
	return func(c *Config) {
		c.GeminiModel = model
	}
}

func WithSpotCatalogBucket(bucket string) Option {
	return func(c *Config) {
		c.SpotCatalogBucket = bucket
	}
}

// WithCredentials sets the upstream API keys
func WithCredentials(creds Credentials) Option {
	return func(c *Config) {
		c.Credentials = creds
	}
}

// New creates a new configuration with default values
func New(opts ...Option) *Config {
	cfg := &Config{
		Environment:         "production",
		LogLevel:            zerolog.InfoLevel,
		HTTPTimeout:         10 * time.Second,
		ProviderTimeout:     10 * time.Second,
		MaxRetries:          3,
		RetryDelay:          2 * time.Second,
		HTTPAddr:            ":8080",
		NOAABaseURL:         "https://api.weather.gov",
		StormglassBaseURL:   "https://api.stormglass.io/v2",
		WorldWeatherBaseURL: "https://api.worldweatheronline.com/premium/v1",
		OpenWeatherBaseURL:  "https://api.openweathermap.org",
		GeminiBaseURL:       "https://generativelanguage.googleapis.com/v1beta",
		GeminiModel:         "gemini-1.5-flash",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

// InitializeLogging sets up logging based on the configuration
func (c *Config) InitializeLogging() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zerolog.SetGlobalLevel(c.LogLevel)

	if c.Environment == "local" || c.Environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	return New(
		WithEnvironment(getEnvOrDefault("ENV", "production")),
		WithLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
		WithHTTPTimeout(getDurationEnvOrDefault("HTTP_TIMEOUT", 10*time.Second)),
		WithProviderTimeout(getDurationEnvOrDefault("PROVIDER_TIMEOUT", 10*time.Second)),
		WithMaxRetries(getEnvInt("AI_MAX_RETRIES", 3)),
		WithRetryDelay(getDurationEnvOrDefault("AI_RETRY_DELAY", 2*time.Second)),
		WithHTTPAddr(getEnvOrDefault("HTTP_ADDR", ":8080")),
		WithGeminiModel(getEnvOrDefault("GEMINI_MODEL", "gemini-1.5-flash")),
		WithSpotCatalogBucket(os.Getenv("SPOT_CATALOG_BUCKET")),
		WithCredentials(CredentialsFromEnv()),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
