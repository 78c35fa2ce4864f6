package router

import (
	"net/http"

	oaerrors "github.com/go-openapi/errors"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api/httperrors"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/pkg/errors"
)

type HTTPErrorHandlerConfig struct {
	HideInternalServerErrorDetails bool
}

// HTTPErrorHandlerWithConfig renders every error returned by a handler as a PublicHTTPError.
// Service errors are mapped through httperrors.FromDomain.
func HTTPErrorHandlerWithConfig(config HTTPErrorHandlerConfig) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			httpError      *httperrors.HTTPError
			validationErr  *httperrors.HTTPValidationError
			echoErr        *echo.HTTPError
			compositeError *oaerrors.CompositeError
			response       any
			code           int
		)

		switch {
		case errors.As(err, &validationErr):
			code = int(validationErr.Code)
			response = validationErr
		case errors.As(err, &httpError):
			code = int(httpError.Code)
			response = httpError
		case errors.As(err, &compositeError):
			validationErr = fromComposite(compositeError)
			code = int(validationErr.Code)
			response = validationErr
		case errors.As(err, &echoErr):
			httpError = httperrors.NewFromEcho(echoErr)
			code = echoErr.Code
			response = httpError
		default:
			if mapped := httperrors.FromDomain(err); mapped != nil {
				httpError = mapped
			} else {
				httpError = httperrors.ErrInternal.WithInternal(err)
				if !config.HideInternalServerErrorDetails {
					httpError.Detail = err.Error()
				}
			}
			code = int(httpError.Code)
			response = httpError
		}

		if code >= http.StatusInternalServerError && config.HideInternalServerErrorDetails && httpError != nil && httpError.Type == types.PublicHTTPErrorTypeGeneric {
			httpError.Detail = ""
		}

		log := util.LogFromContext(c.Request().Context())
		if code >= http.StatusInternalServerError {
			log.Error().Err(err).Int("status", code).Msg("Request failed")
		} else {
			log.Debug().Err(err).Int("status", code).Msg("Request rejected")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(code)
		} else {
			err = c.JSON(code, response)
		}
		if err != nil {
			log.Warn().Err(err).Msg("Failed to write error response")
		}
	}
}

func fromComposite(composite *oaerrors.CompositeError) *httperrors.HTTPValidationError {
	details := make([]*types.HTTPValidationErrorDetail, 0, len(composite.Errors))

	for _, e := range flatten(composite) {
		detail := &types.HTTPValidationErrorDetail{Error: swag.String(e.Error())}

		var validation *oaerrors.Validation
		if errors.As(e, &validation) {
			detail.Key = swag.String(validation.Name)
			detail.In = swag.String(validation.In)
		}

		details = append(details, detail)
	}

	return httperrors.NewHTTPValidationError(http.StatusBadRequest, types.PublicHTTPErrorTypeValidation, "Bad Request", details)
}

func flatten(composite *oaerrors.CompositeError) []error {
	var res []error
	for _, e := range composite.Errors {
		var nested *oaerrors.CompositeError
		if errors.As(e, &nested) {
			res = append(res, flatten(nested)...)
			continue
		}
		res = append(res, e)
	}
	return res
}
