// Package validation contains the logic for validating
// request data.
//
// It uses the `validator` library to enforce rules defined in struct tags
// and turns the first failure into the client-facing error message.
package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/item-service/internal/errs"
)

// Validatable is implemented by request payload types that know how to validate themselves.
type Validatable interface {
	Validate() error
}

// BindFailureHandler is implemented by payloads that prefer to recover from
// an undecodable request instead of rejecting it.
type BindFailureHandler interface {
	BindFailed(err error)
}

// PathParamsOnly is implemented by payloads that are filled from path
// parameters alone. The query string and body of such requests are ignored.
type PathParamsOnly interface {
	PathParamsOnly()
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params, query and body.
//     PathParamsOnly payloads are bound from path params only.
//  2. On a bind failure the payload may reset itself (BindFailureHandler);
//     otherwise a 400 is returned.
//  3. payload.Validate() applies validation rules; the first failure becomes
//     a 400 "<field> <problem>" message. *errs.HTTPError results are returned
//     unchanged.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := bind(c, payload); err != nil {
		handler, ok := payload.(BindFailureHandler)
		if !ok {
			return errs.NewBadRequestError(bindErrorMessage(err))
		}
		handler.BindFailed(err)
	}

	if err := payload.Validate(); err != nil {
		return toHTTPError(err)
	}

	return nil
}

func bind(c echo.Context, payload Validatable) error {
	if _, ok := payload.(PathParamsOnly); ok {
		return (&echo.DefaultBinder{}).BindPathParams(c, payload)
	}
	return c.Bind(payload)
}

func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok {
			return msg
		}
	}
	return "invalid request"
}

func toHTTPError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return errs.NewBadRequestError(fmt.Sprintf("%s %s", first.Field(), tagMessage(first)))
	}

	return errs.NewBadRequestError(err.Error())
}

// tagMessage converts a validator tag into a user-friendly problem description.
func tagMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s", err.Param())
	case "max":
		return fmt.Sprintf("must not exceed %s", err.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", err.Param())
	default:
		if err.Param() != "" {
			return fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
		}
		return fmt.Sprintf("failed %s", err.Tag())
	}
}
