package httperrors

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/types"
)

type HTTPError struct {
	types.PublicHTTPError
	Internal       error          `json:"-"`
	AdditionalData map[string]any `json:"-"`
}

type HTTPValidationError struct {
	types.PublicHTTPValidationError
	Internal       error          `json:"-"`
	AdditionalData map[string]any `json:"-"`
}

func NewHTTPError(code int, errorType types.PublicHTTPErrorType, title string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:  int64(code),
			Type:  errorType,
			Title: title,
		},
	}
}

func NewHTTPErrorWithDetail(code int, errorType types.PublicHTTPErrorType, title string, detail string) *HTTPError {
	return &HTTPError{
		PublicHTTPError: types.PublicHTTPError{
			Code:   int64(code),
			Type:   errorType,
			Title:  title,
			Detail: detail,
		},
	}
}

func NewFromEcho(e *echo.HTTPError) *HTTPError {
	return NewHTTPError(e.Code, types.PublicHTTPErrorTypeGeneric, http.StatusText(e.Code))
}

func (e *HTTPError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "HTTPError %d (%s): %s", e.Code, e.Type, e.Title)

	if len(e.Detail) > 0 {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}
	if e.Internal != nil {
		fmt.Fprintf(&b, ", %v", e.Internal)
	}
	if len(e.AdditionalData) > 0 {
		b.WriteString(". Additional: ")
		for k, v := range e.AdditionalData {
			fmt.Fprintf(&b, ", %s=%v", k, v)
		}
	}

	return b.String()
}

func (e *HTTPError) Unwrap() error {
	return e.Internal
}

// WithInternal returns a copy of e carrying err as internal cause.
func (e *HTTPError) WithInternal(err error) *HTTPError {
	c := *e
	c.Internal = err
	return &c
}

func NewHTTPValidationError(code int, errorType types.PublicHTTPErrorType, title string, validationErrors []*types.HTTPValidationErrorDetail) *HTTPValidationError {
	return &HTTPValidationError{
		PublicHTTPValidationError: types.PublicHTTPValidationError{
			PublicHTTPError: types.PublicHTTPError{
				Code:  int64(code),
				Type:  errorType,
				Title: title,
			},
			ValidationErrors: validationErrors,
		},
	}
}

// NewInvalidParamError is a 400 validation error for a single path or query parameter.
func NewInvalidParamError(key string, in string, msg string) *HTTPValidationError {
	return NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeValidation, "Bad Request", []*types.HTTPValidationErrorDetail{
		{
			Key:   swag.String(key),
			In:    swag.String(in),
			Error: swag.String(msg),
		},
	})
}

func (e *HTTPValidationError) Error() string {
	var b strings.Builder

	fmt.Fprintf(&b, "HTTPValidationError %d (%s): %s", e.Code, e.Type, e.Title)

	if len(e.Detail) > 0 {
		fmt.Fprintf(&b, " - %s", e.Detail)
	}
	if e.Internal != nil {
		fmt.Fprintf(&b, ", %v", e.Internal)
	}
	if len(e.AdditionalData) > 0 {
		b.WriteString(". Additional: ")
		for k, v := range e.AdditionalData {
			fmt.Fprintf(&b, ", %s=%v", k, v)
		}
	}

	b.WriteString(" - Validation: ")
	for i, ve := range e.ValidationErrors {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s (in %s): %s", swag.StringValue(ve.Key), swag.StringValue(ve.In), swag.StringValue(ve.Error))
	}

	return b.String()
}
