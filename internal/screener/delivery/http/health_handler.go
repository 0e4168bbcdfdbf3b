package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterHealthRoute registers GET /healthz.
func RegisterHealthRoute(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
