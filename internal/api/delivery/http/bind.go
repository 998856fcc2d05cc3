package http

import (
	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/pkg/apperror"

	"github.com/labstack/echo/v4"
)

// bindQuery binds query parameters into req, applies defaults and validates it.
func bindQuery(c echo.Context, req interface{}) error {
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, req); err != nil {
		return apperror.Validation("invalid query parameters").WithError(err)
	}
	return dto.Validate(c.Request().Context(), req)
}
