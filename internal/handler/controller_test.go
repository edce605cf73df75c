package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfhub/swellcast/backend-go/internal/api"
	"github.com/surfhub/swellcast/backend-go/internal/geocode"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

func newTestServer(f Forecaster) *echo.Echo {
	e := echo.New()
	group := e.Group("/api")
	NewForecastController(group, f).InitForecastRoutes()
	NewHealthController(group).InitHealthRoutes()
	return e
}

func TestForecastController_Post(t *testing.T) {
	f := &fakeForecaster{resp: sampleForecast()}
	e := newTestServer(f)

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(`{"location":"Malibu","preferredForecastType":"basic"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.ForecastRequest{Location: "Malibu", PreferredForecastType: models.ForecastBasic}, f.got)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "forecast", body["responseType"])
	assert.Equal(t, "Clean lines", body["conditions"])
}

func TestForecastController_PostMalformed(t *testing.T) {
	e := newTestServer(&fakeForecaster{})

	req := httptest.NewRequest(http.MethodPost, "/api/forecast", strings.NewReader(`{"location":`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body api.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid request body", body.Error)
}

func TestForecastController_GetNotFound(t *testing.T) {
	f := &fakeForecaster{err: fmt.Errorf("%w: Atlantis", geocode.ErrLocationNotFound)}
	e := newTestServer(f)

	req := httptest.NewRequest(http.MethodGet, "/api/forecast?location=Atlantis", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Atlantis", f.got.Location)
}

func TestHealthController(t *testing.T) {
	e := newTestServer(&fakeForecaster{})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
