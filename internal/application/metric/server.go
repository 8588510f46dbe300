package metric

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewServer отдает /metrics для prometheus и /health для проб оркестратора.
// Слушает METRIC_PORT отдельно от API.
func NewServer() *echo.Echo {
	srv := echo.New()
	srv.HideBanner = true
	srv.HidePort = true

	srv.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	srv.GET("/health", health)

	return srv
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
