package datetime

import "github.com/labstack/echo/v4"

// RegisterDateTimeRoutes registers date-time routes
func RegisterDateTimeRoutes(e *echo.Echo, handler *DateTimeHandler) {
	group := e.Group("/api/v1/datetime")

	group.POST("/convert", handler.Convert)
	group.POST("/denormalize", handler.Denormalize)
}
