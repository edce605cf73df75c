package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/surfhub/swellcast/backend-go/internal/api"
	"github.com/surfhub/swellcast/backend-go/internal/models"
)

type ForecastController struct {
	group      *echo.Group
	forecaster Forecaster
}

func NewForecastController(group *echo.Group, forecaster Forecaster) *ForecastController {
	return &ForecastController{group: group, forecaster: forecaster}
}

// InitForecastRoutes initializes forecast routes
func (controller *ForecastController) InitForecastRoutes() {
	controller.group.POST("/forecast", controller.PostForecast())
	controller.group.GET("/forecast", controller.GetForecast())
}

func (controller *ForecastController) PostForecast() echo.HandlerFunc {
	return func(c echo.Context) error {
		var req models.ForecastRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.NewErrorResponse("Invalid request body"))
		}
		return controller.respond(c, req)
	}
}

func (controller *ForecastController) GetForecast() echo.HandlerFunc {
	return func(c echo.Context) error {
		return controller.respond(c, models.ForecastRequest{
			Location:              c.QueryParam("location"),
			PreferredForecastType: models.ForecastType(c.QueryParam("preferredForecastType")),
		})
	}
}

func (controller *ForecastController) respond(c echo.Context, req models.ForecastRequest) error {
	resp, err := controller.forecaster.GetForecast(c.Request().Context(), req)
	if err != nil {
		status, message := errorStatus(err)
		return c.JSON(status, api.NewErrorResponse(message))
	}
	return c.JSON(http.StatusOK, api.NewForecastResponse(resp))
}

type HealthController struct {
	group *echo.Group
}

func NewHealthController(group *echo.Group) *HealthController {
	return &HealthController{group: group}
}

// InitHealthRoutes initializes health check routes
func (controller *HealthController) InitHealthRoutes() {
	controller.group.GET("/health", controller.CheckHealth())
}

func (controller *HealthController) CheckHealth() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}
}
