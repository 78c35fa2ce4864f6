package transactions

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
)

func PostTransferRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/transactions/transfer", postTransferHandler(s))
}

func postTransferHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostTransferTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		p, err := s.Payloads.Transfer(swag.StringValue(body.ToAddress), swag.Float64Value(body.Amount))
		if err != nil {
			return err
		}

		req := signingRequest(body.WalletSigningRef)
		req.Payload = p

		res, err := s.Transactions.SignAndSubmitTransaction(ctx, req)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, toTransactionResponse(res))
	}
}
