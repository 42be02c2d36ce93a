package health

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReadinessHandler answers 200 unless the aggregated status is DOWN
func ReadinessHandler(service *Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		response := service.Response(c.Request().Context())

		statusCode := http.StatusOK
		if response.Status == StatusDown {
			statusCode = http.StatusServiceUnavailable
		}
		return c.JSON(statusCode, response)
	}
}

// RegisterRoutes mounts the readiness endpoint
func RegisterRoutes(e *echo.Echo, service *Service) {
	e.GET("/health/ready", ReadinessHandler(service))
}
