package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hospital-ms/portal/internal/core/domain"
)

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Besides the built-in tags it knows "role", which accepts ADMIN, DOCTOR and PATIENT.
func NewValidator() *echoValidator {
	v := validator.New()
	_ = v.RegisterValidation("role", func(fl validator.FieldLevel) bool {
		return domain.ParseRole(fl.Field().String()).Valid()
	})
	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface. Failures wrap
// ErrValidation so the error handler can answer 400.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%w: %s", ErrValidation, strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// ErrValidation marks request payloads rejected by the validator.
var ErrValidation = errors.New("invalid request")

func fieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "role":
		return field + " must be one of: ADMIN, DOCTOR, PATIENT"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
