package transactions

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/address"
)

func PostCompleteSurveyRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/transactions/complete-survey", postCompleteSurveyHandler(s))
}

func postCompleteSurveyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		var body types.PostCompleteSurveyTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		surveyID := uint64(swag.Int64Value(body.SurveyID)) //nolint:gosec // validated to be non-negative

		req := signingRequest(body.WalletSigningRef)
		req.Payload = s.Payloads.CompleteSurvey(surveyID)

		res, err := s.Transactions.SignAndSubmitTransaction(ctx, req)
		if err != nil {
			return err
		}

		participant := address.NormalizeAddress(req.Address)
		if err := s.Survey.RecordCompletion(ctx, surveyID, participant, res.TransactionHash); err != nil {
			util.LogFromContext(ctx).Error().Err(err).
				Uint64("survey_id", surveyID).
				Str("transaction_hash", res.TransactionHash).
				Msg("Failed to record survey completion")
		}

		return util.ValidateAndReturn(c, http.StatusOK, toTransactionResponse(res))
	}
}
