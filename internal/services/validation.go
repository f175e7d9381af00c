package services

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/yungbote/automate-backend/internal/platform/apierr"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// validateInput runs struct tags on in and returns a 400 apierr naming the
// first offending field.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apierr.New(http.StatusBadRequest, "invalid_request", err)
	}
	return apierr.New(http.StatusBadRequest, "validation_failed", errors.New(describeFieldError(verrs[0])))
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.Join(oneOfValues(fe.Param()), ", "))
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must use the format YYYY-MM-DD", field)
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

var oneOfParam = regexp.MustCompile(`'[^']*'|\S+`)

func oneOfValues(param string) []string {
	vals := oneOfParam.FindAllString(param, -1)
	for i, v := range vals {
		vals[i] = strings.Trim(v, "'")
	}
	return vals
}

func badRequest(code, msg string) error {
	return apierr.New(http.StatusBadRequest, code, errors.New(msg))
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
