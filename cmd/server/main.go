package main

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/forecast"
	"github.com/surfhub/swellcast/backend-go/internal/handler"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
)

func newServer(forecaster handler.Forecaster) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	api := e.Group("")
	handler.NewForecastController(api, forecaster).InitForecastRoutes()
	handler.NewHealthController(api).InitHealthRoutes()

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	return e
}

func main() {
	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	service, err := forecast.Build(context.Background(), cfg, config.GetCacheConfig(), observability.NewMetrics())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize forecast service")
	}

	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting forecast server")
	e := newServer(service)
	e.Logger.Fatal(e.Start(cfg.HTTPAddr))
}
