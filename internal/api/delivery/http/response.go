package http

import (
	"errors"
	"net/http"

	"golang-bias-heatmap/internal/api/dto"
	"golang-bias-heatmap/pkg/apperror"
	"golang-bias-heatmap/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// respondError writes err as an ErrorResponse with the status of its AppError.
// Errors without one are logged and reported as a generic 500.
func respondError(c echo.Context, log *logger.Logger, err error) error {
	appErr := apperror.As(err)
	if appErr == nil {
		log.Error("Request failed",
			logger.StringField("path", c.Path()),
			logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}

	body := dto.ErrorResponse{Error: appErr.Message, Code: appErr.Code}
	var fieldErrors validator.ValidationErrors
	if errors.As(err, &fieldErrors) {
		body.Details = dto.ValidationErrors(fieldErrors)
	}
	if appErr.Status >= http.StatusInternalServerError {
		log.Error("Request failed",
			logger.StringField("path", c.Path()),
			logger.ErrorField(err))
	}
	return c.JSON(apperror.StatusOf(err), body)
}
