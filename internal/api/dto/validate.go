package dto

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang-bias-heatmap/pkg/apperror"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate applies `default` tags and then `validate` rules to v. Rule
// failures are returned as a validation AppError whose message lists them.
func Validate(ctx context.Context, v interface{}) error {
	if err := defaults.Set(v); err != nil {
		return apperror.Validation("invalid defaults").WithError(err)
	}
	if err := validate.StructCtx(ctx, v); err != nil {
		details := ValidationErrors(err)
		msgs := make([]string, 0, len(details))
		for _, d := range details {
			msgs = append(msgs, d.Message)
		}
		return apperror.Validation("%s", strings.Join(msgs, "; ")).WithError(err)
	}
	return nil
}

// ValidationErrors converts validator failures to response details.
func ValidationErrors(err error) []ValidationError {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []ValidationError{{Code: "ERR_UNKNOWN", Message: err.Error()}}
	}

	out := make([]ValidationError, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		out = append(out, ValidationError{
			Code:    "ERR_" + strings.ToUpper(fe.Tag()),
			Field:   fe.Field(),
			Message: fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be an RFC 3339 timestamp", field)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed on %s", field, fe.Tag())
	}
}
