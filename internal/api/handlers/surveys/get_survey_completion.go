package surveys

import (
	"net/http"
	"strconv"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/api/httperrors"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/address"
)

func GetSurveyCompletionRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/survey-completion/:address/:surveyId", getSurveyCompletionHandler(s))
}

func getSurveyCompletionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		surveyID, err := strconv.ParseUint(c.Param("surveyId"), 10, 63)
		if err != nil {
			return httperrors.NewInvalidParamError("surveyId", "path", "must be a non-negative integer")
		}

		addr := address.NormalizeAddress(c.Param("address"))

		completed, err := s.Survey.HasCompleted(c.Request().Context(), addr, surveyID)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.SurveyCompletionResponse{
			Address:   swag.String(addr.String()),
			SurveyID:  swag.Int64(int64(surveyID)), //nolint:gosec // parsed with 63 bits
			Completed: swag.Bool(completed),
		})
	}
}
