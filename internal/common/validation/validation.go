package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	commonerrors "github.com/kariua-parish/parish-site/internal/common/errors"
)

// Validator checks request payloads against their struct tags and reports
// failures as ErrValidationFailed with one message per JSON field.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return &Validator{validate: v}
}

func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return commonerrors.ErrValidationFailed.WithCause(err)
	}

	details := make(map[string]any, len(fieldErrs))
	for _, fe := range fieldErrs {
		if _, seen := details[fe.Field()]; seen {
			continue
		}
		details[fe.Field()] = describe(fe)
	}

	return commonerrors.ErrValidationFailed.WithDetails(details).WithCause(err)
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", fe.Field(), fe.Tag())
	}
}

// Malformed reports a body that could not be decoded into the expected shape.
func Malformed(cause error) error {
	return commonerrors.ErrValidationFailed.
		WithDetails(map[string]any{"body": "request body must be a JSON object with string fields"}).
		WithCause(cause)
}

// FieldDetails returns the per-field messages attached to a validation error.
func FieldDetails(err error) map[string]any {
	de, ok := commonerrors.AsDomainError(err)
	if !ok {
		return nil
	}
	return de.Details()
}
