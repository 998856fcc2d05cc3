package http

import (
	"net/http"

	"golang-bias-heatmap/internal/api/dto"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

// RateLimit rejects requests beyond perSecond with 429. A non-positive rate disables limiting.
func RateLimit(perSecond float64, burst int) echo.MiddlewareFunc {
	if perSecond <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(perSecond), burst)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow() {
				return c.JSON(http.StatusTooManyRequests, dto.ErrorResponse{Error: "rate limit exceeded", Code: "ERR_RATE_LIMIT"})
			}
			return next(c)
		}
	}
}
