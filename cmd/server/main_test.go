package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

type stubForecaster struct{}

func (stubForecaster) GetForecast(_ context.Context, req models.ForecastRequest) (*models.ForecastResponse, error) {
	return &models.ForecastResponse{Location: req.Location, ForecastType: models.ForecastBasic}, nil
}

func TestNewServerRoutes(t *testing.T) {
	e := newServer(stubForecaster{})

	tests := []struct {
		path string
		want int
	}{
		{path: "/health", want: http.StatusOK},
		{path: "/forecast?location=Malibu", want: http.StatusOK},
		{path: "/metrics", want: http.StatusOK},
		{path: "/stations", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
