package wallets

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/util"
)

func GetWalletRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/wallets/:owner", getWalletHandler(s))
}

func getWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		w, err := s.Wallet.GetWallet(c.Request().Context(), c.Param("owner"))
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toWalletResponse(w))
	}
}
