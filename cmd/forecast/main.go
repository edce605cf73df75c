package main

import (
	"context"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/config"
	"github.com/surfhub/swellcast/backend-go/internal/forecast"
	"github.com/surfhub/swellcast/backend-go/internal/handler"
	"github.com/surfhub/swellcast/backend-go/internal/observability"
)

var (
	lambdaStart     = lambda.Start // Allow mocking of lambda.Start in tests
	forecastHandler *handler.ForecastHandler
	setupOnce       sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		service, err := forecast.Build(context.Background(), cfg, config.GetCacheConfig(), observability.NewMetrics())
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize forecast service")
		}

		forecastHandler = handler.NewForecastHandler(service)
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return forecastHandler.HandleRequest(ctx, request)
}

func main() {
	lambdaStart(handleRequest)
}
