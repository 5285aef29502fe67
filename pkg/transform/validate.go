package transform

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/NotSooShariff/adversarial-vision/pkg/contrast"
)

var (
	ErrValidation        = errors.New("invalid transform request")
	ErrMissingParameter  = errors.New("missing required parameters: image and text")
	ErrUnknownTechnique  = errors.New("unknown technique")
	ErrTechniqueMismatch = errors.New("technique does not match the request")

	dasharrayPattern = regexp.MustCompile(`^\s*(\d+(\.\d+)?([\s,]+\d+(\.\d+)?)*)?\s*$`)
)

// ValidationError is returned for requests that can never succeed as sent.
// It matches ErrValidation and, when set, its cause with errors.Is.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

func newValidationError(field, message string, cause error) *ValidationError {
	return &ValidationError{Field: field, Message: message, cause: cause}
}

func unknownTechniqueError(name string) error {
	return newValidationError("technique", fmt.Sprintf("unknown technique %q", name), ErrUnknownTechnique)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		_, ok := contrast.HexToRGB(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("dasharray", func(fl validator.FieldLevel) bool {
		return dasharrayPattern.MatchString(fl.Field().String())
	})

	return v
}

// toValidationError turns the first failed field of a validator error into a
// ValidationError with a message meant for API clients.
func toValidationError(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return newValidationError("", err.Error(), err)
	}

	fe := fieldErrors[0]
	var message string
	switch fe.Tag() {
	case "required":
		message = "is required"
	case "gte":
		message = "must be greater than or equal to " + fe.Param()
	case "lte":
		message = "must be less than or equal to " + fe.Param()
	case "gt":
		message = "must be greater than " + fe.Param()
	case "oneof":
		message = "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "rgbhex":
		message = "must be a hex color like #RRGGBB"
	case "dasharray":
		message = "must be a list of numbers separated by commas or spaces"
	default:
		message = "failed " + fe.Tag() + " validation"
	}
	return newValidationError(fe.Field(), message, nil)
}
