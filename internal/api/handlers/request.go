package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"talentflow/internal/api/validation"
	"talentflow/pkg/utils"
)

var validate = validator.New()

func init() {
	validation.RegisterHiringValidators(validate)
}

// bindAndValidate decodes the JSON body into req and runs the struct validators
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return utils.NewBadRequestError("Invalid request format").WithCause(err)
	}
	if err := validate.Struct(req); err != nil {
		return utils.NewValidationError(describeValidation(err)).WithCause(err)
	}
	return nil
}

func describeValidation(err error) string {
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err.Error()
	}
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Param() != "" {
			parts = append(parts, fmt.Sprintf("%s failed on '%s=%s'", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			parts = append(parts, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// queryParam returns the trimmed query value or nil when it is absent
func queryParam(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}

// queryEnum parses an upper-case enumeration from the query string
func queryEnum[T ~string](c echo.Context, name string, valid func(T) bool) (*T, error) {
	raw := queryParam(c, name)
	if raw == nil {
		return nil, nil
	}
	v := T(strings.ToUpper(*raw))
	if !valid(v) {
		return nil, utils.NewValidationError(fmt.Sprintf("unknown %s %q", name, *raw))
	}
	return &v, nil
}
