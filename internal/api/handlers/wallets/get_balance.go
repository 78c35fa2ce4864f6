package wallets

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
)

func GetBalanceRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/balance/:address", getBalanceHandler(s))
}

func getBalanceHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		b, err := s.Balance.GetBalance(c.Request().Context(), c.Param("address"))
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.BalanceResponse{
			Address: swag.String(b.Address.String()),
			Balance: swag.String(b.Tokens.String()),
			Octas:   swag.Uint64(b.Octas),
		})
	}
}
