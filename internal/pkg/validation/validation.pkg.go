package validation

import (
	"errors"
	"fmt"
	"partner-funnel/internal/common/enum"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"

	"github.com/go-playground/validator/v10"
)

var val *validator.Validate

var validationMessages = map[string]string{
	"required": "is required",
	"url":      "must be a valid URL",
	"number":   "must be a number",
	"oneof":    "must be one of the allowed values: %s",
	"email":    "must be a valid email address",
	"min":      "must be greater than or equal to %s",
	"max":      "must be less than or equal to %s",
	"len":      "must have the exact length of %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"enum":     "must be one of the allowed enum values: %s",
	"cpf":      "must be a valid CPF",
	"phonebr":  "must have 10 or 11 digits",
	"stepdata": "must be a non-empty object of at most 50 simple fields",
}

func Setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func registerValidations(v *validator.Validate) error {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("cpf", validateCPF); err != nil {
		return fmt.Errorf("failed to register cpf validation: %w", err)
	}
	if err := v.RegisterValidation("phonebr", validatePhoneBR); err != nil {
		return fmt.Errorf("failed to register phone validation: %w", err)
	}
	if err := v.RegisterValidation("stepdata", validateStepData); err != nil {
		return fmt.Errorf("failed to register step data validation: %w", err)
	}
	return nil
}

func Validate(payload interface{}) error {
	if val == nil {
		if err := Setup(); err != nil {
			return err
		}
	}
	if err := val.Struct(payload); err != nil {
		return errors.New("Validation failed: " + ParseError(err))
	}

	return nil
}

// ParseError renders validator errors as "field: tag message" pairs; other
// errors come back as their text.
func ParseError(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var sb strings.Builder
		for _, e := range errs {
			msg, ok := validationMessages[e.Tag()]
			if !ok {
				msg = "is invalid"
			}
			switch e.Tag() {
			case "enum":
				msg = fmt.Sprintf(msg, e.Type())
			default:
				if strings.Contains(msg, "%s") {
					msg = fmt.Sprintf(msg, e.Param())
				}
			}
			sb.WriteString(fmt.Sprintf("%s %s", e.Field(), msg))
			sb.WriteString(", ")
		}
		return strings.TrimSuffix(sb.String(), ", ")
	}
	return err.Error()
}

type bindError struct{ err error }

func (e *bindError) Error() string { return ParseError(e.err) }
func (e *bindError) Unwrap() error { return e.err }

// BindError wraps a gin binding error so its text reads like Validate's.
func BindError(err error) error {
	if err == nil {
		return nil
	}
	return &bindError{err: err}
}
