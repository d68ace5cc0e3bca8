package http

import (
	"strconv"
	"time"

	"logistica/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

// MetricsMiddleware counts requests and observes their latency by route
// pattern, so order IDs in paths do not create new series.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			metrics.HTTPRequestsTotal.
				WithLabelValues(route, method, strconv.Itoa(c.Response().Status)).
				Inc()
			metrics.HTTPRequestDuration.
				WithLabelValues(route, method).
				Observe(time.Since(start).Seconds())

			return nil
		}
	}
}
