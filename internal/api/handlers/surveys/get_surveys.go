package surveys

import (
	"net/http"
	"strconv"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/api/httperrors"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/survey"
)

func GetSurveysRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/surveys", getSurveysHandler(s))
}

func getSurveysHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, err := queryInt(c, "limit", survey.DefaultListLimit)
		if err != nil {
			return err
		}
		offset, err := queryInt(c, "offset", 0)
		if err != nil {
			return err
		}

		list, err := s.Survey.ListSurveys(c.Request().Context(), survey.ListParams{
			Limit:  limit,
			Offset: offset,
			Search: c.QueryParam("search"),
		})
		if err != nil {
			return err
		}

		res := &types.GetSurveysResponse{Surveys: make([]*types.SurveyItem, 0, len(list))}
		for _, sv := range list {
			createdAt := strfmt.DateTime(sv.CreatedAt)
			res.Surveys = append(res.Surveys, &types.SurveyItem{
				ID:               swag.Int64(int64(sv.ID)), //nolint:gosec // ids are stored as BIGINT
				Creator:          swag.String(sv.Creator.String()),
				Title:            swag.String(sv.Title),
				Description:      sv.Description,
				RewardAmount:     swag.String(sv.RewardAmount.String()),
				MaxResponses:     swag.Int64(sv.MaxResponses),
				CurrentResponses: swag.Int64(sv.CurrentResponses),
				IsActive:         swag.Bool(sv.IsActive),
				TransactionHash:  sv.TransactionHash.String,
				CreatedAt:        &createdAt,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, res)
	}
}

func queryInt(c echo.Context, key string, defaultVal int) (int, error) {
	raw := c.QueryParam(key)
	if raw == "" {
		return defaultVal, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, httperrors.NewInvalidParamError(key, "query", "must be a non-negative integer")
	}

	return v, nil
}
