package wallets

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
)

func PostCreateWalletRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/wallets", postCreateWalletHandler(s))
}

func postCreateWalletHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostCreateWalletPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		w, err := s.Wallet.CreateWallet(ctx, swag.StringValue(body.Owner))
		if err != nil {
			util.LogFromContext(ctx).Debug().Err(err).Msg("Failed to create wallet")
			return err
		}

		return util.ValidateAndReturn(c, http.StatusCreated, toWalletResponse(w))
	}
}
