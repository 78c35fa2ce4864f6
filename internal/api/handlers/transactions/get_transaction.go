package transactions

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
)

func GetTransactionRoute(s *api.Server) *echo.Route {
	return s.Router.API.GET("/transactions/:hash", getTransactionHandler(s))
}

// Reconciliation lookup for transactions whose confirmation timed out.
func getTransactionHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		hash := c.Param("hash")

		status, err := s.Transactions.GetTransaction(ctx, hash)
		if err != nil {
			return err
		}

		return util.ValidateAndReturn(c, http.StatusOK, &types.TransactionStatusResponse{
			TransactionHash: swag.String(status.Hash),
			Status:          swag.String(string(status.Status())),
			Result:          toTransactionResult(status.Executed),
		})
	}
}
