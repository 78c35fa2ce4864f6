package transactions

import (
	"net/http"

	"github.com/go-openapi/swag"
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/survey"
)

func PostCreateSurveyRoute(s *api.Server) *echo.Route {
	return s.Router.API.POST("/transactions/create-survey", postCreateSurveyHandler(s))
}

func postCreateSurveyHandler(s *api.Server) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()
		log := util.LogFromContext(ctx)

		var body types.PostCreateSurveyTransactionPayload
		if err := util.BindAndValidateBody(c, &body); err != nil {
			return err
		}

		input := survey.CreateInput{
			Title:        swag.StringValue(body.SurveyData.Title),
			Description:  swag.StringValue(body.SurveyData.Description),
			RewardAmount: swag.Float64Value(body.SurveyData.RewardAmount),
			MaxResponses: swag.Int64Value(body.SurveyData.MaxResponses),
		}

		p, err := s.Payloads.CreateSurvey(input.Title, input.Description, input.RewardAmount, input.MaxResponses)
		if err != nil {
			log.Debug().Err(err).Msg("Invalid survey data")
			return err
		}

		req := signingRequest(body.WalletSigningRef)
		req.Payload = p

		res, err := s.Transactions.SignAndSubmitTransaction(ctx, req)
		if err != nil {
			return err
		}

		// the survey exists on chain at this point, a failed mirror write must not fail the request
		creator := address.NormalizeAddress(req.Address)
		if _, err := s.Survey.RecordCreated(ctx, creator, input, res.Transaction); err != nil {
			log.Error().Err(err).Str("transaction_hash", res.TransactionHash).Msg("Failed to record created survey")
		}

		return util.ValidateAndReturn(c, http.StatusOK, toTransactionResponse(res))
	}
}
