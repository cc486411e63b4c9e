package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"ai-workspace-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		// Report JSON names so messages match the request body
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			for _, tag := range []string{"json", "form", "query"} {
				name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return fld.Name
		})
	})
	return validate
}

// ValidateRequest checks struct tags and returns an *apperror.Error of kind
// Validation on failure. A missing required field yields MISSING_FIELDS.
func ValidateRequest(req interface{}) error {
	err := getValidator().Struct(req)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return apperror.Validation(apperror.CodeInvalidBody, err.Error())
	}
	return FromValidationErrors(validationErrors)
}

// FromValidationErrors folds field errors into one readable message.
func FromValidationErrors(errs validator.ValidationErrors) *apperror.Error {
	code := apperror.CodeValidation
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		if strings.HasPrefix(e.Tag(), "required") {
			code = apperror.CodeMissingFields
		}
		messages = append(messages, fieldMessage(e))
	}
	return apperror.Wrap(apperror.KindValidation, code, strings.Join(messages, "; "), errs)
}

func fieldMessage(e validator.FieldError) string {
	field := e.Field()
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "required_with", "required_without", "required_without_all":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters", field, param)
		}
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(param, " ", ", "))
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", field, param)
	case "lte":
		return fmt.Sprintf("%s must be less than or equal to %s", field, param)
	default:
		return fmt.Sprintf("%s failed %s validation", field, e.Tag())
	}
}

// Normalizer is implemented by request bodies that canonicalize fields
// before validation.
type Normalizer interface {
	Normalize()
}

// ParseBody decodes the request body into out, normalizes and validates it.
// An empty body validates as a zero value.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(out); err != nil {
			return apperror.Wrap(apperror.KindValidation, apperror.CodeInvalidBody, "Invalid request body", err)
		}
	}
	if n, ok := out.(Normalizer); ok {
		n.Normalize()
	}
	return ValidateRequest(out)
}

// ParseQuery decodes the query string into out and validates it.
func ParseQuery(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.QueryParser(out); err != nil {
		return apperror.Wrap(apperror.KindValidation, apperror.CodeValidation, "Invalid query parameters", err)
	}
	return ValidateRequest(out)
}
