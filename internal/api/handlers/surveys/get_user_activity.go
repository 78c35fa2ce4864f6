package surveys

import (
	"net/http"

	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/address"
)

func GetUserActivityRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/user-activity/:address", getUserActivityHandler(s))
}

func getUserActivityHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		activity, err := s.Survey.UserActivity(c.Request().Context(), address.NormalizeAddress(c.Param("address")))
		if err != nil {
			return err
		}

		items := make([]*types.ActivityItem, 0, len(activity.Transactions))
		for _, rec := range activity.Transactions {
			createdAt := strfmt.DateTime(rec.CreatedAt)
			items = append(items, &types.ActivityItem{
				TransactionHash: swag.String(rec.Hash),
				Function:        swag.String(rec.Function),
				Status:          swag.String(string(rec.Status)),
				CreatedAt:       &createdAt,
			})
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.UserActivityResponse{
			Address:          swag.String(activity.Address.String()),
			SurveysCreated:   swag.Int64(activity.SurveysCreated),
			SurveysCompleted: swag.Int64(activity.SurveysCompleted),
			Transactions:     items,
		})
	}
}
