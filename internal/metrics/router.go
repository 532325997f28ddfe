package metrics

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

func ConfigureRouter(handler *echo.Echo) {
	handler.GET("/metrics", echoprometheus.NewHandler())
}

// ConfigureMiddleware records request count and latency for every route of
// the application server.
func ConfigureMiddleware(handler *echo.Echo) {
	handler.Use(echoprometheus.NewMiddleware("sawmill"))
}
