package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/rs/zerolog/log"
	"github.com/surfhub/swellcast/backend-go/internal/api"
	"github.com/surfhub/swellcast/backend-go/internal/forecast"
	"github.com/surfhub/swellcast/backend-go/internal/geocode"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

type Forecaster interface {
	GetForecast(ctx context.Context, req models.ForecastRequest) (*models.ForecastResponse, error)
}

// ForecastHandler serves forecasts behind API Gateway.
type ForecastHandler struct {
	forecaster Forecaster
}

func NewForecastHandler(forecaster Forecaster) *ForecastHandler {
	return &ForecastHandler{forecaster: forecaster}
}

func (h *ForecastHandler) HandleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req models.ForecastRequest
	switch request.HTTPMethod {
	case http.MethodOptions:
		return api.Preflight()
	case http.MethodGet:
		req.Location = request.QueryStringParameters["location"]
		req.PreferredForecastType = models.ForecastType(request.QueryStringParameters["preferredForecastType"])
	default:
		if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
			return api.Error("Invalid request body", http.StatusBadRequest)
		}
	}

	resp, err := h.forecaster.GetForecast(ctx, req)
	if err != nil {
		status, message := errorStatus(err)
		return api.Error(message, status)
	}
	return api.Success(api.NewForecastResponse(resp))
}

// errorStatus maps a forecast error to an HTTP status and client message.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, forecast.ErrInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, geocode.ErrLocationNotFound):
		return http.StatusNotFound, "Location not found"
	default:
		log.Error().Err(err).Msg("Error generating forecast")
		return http.StatusInternalServerError, "Error generating forecast"
	}
}
