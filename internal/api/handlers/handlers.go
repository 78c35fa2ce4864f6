package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/api/handlers/common"
	"github.com/paypost/go-paypost/internal/api/handlers/surveys"
	"github.com/paypost/go-paypost/internal/api/handlers/transactions"
	"github.com/paypost/go-paypost/internal/api/handlers/wallets"
)

func AttachAllRoutes(s *api.Server) {
	// attach our routes
	s.Router.Routes = []*echo.Route{
		common.GetHealthyRoute(s),
		common.GetReadyRoute(s),
		common.GetVersionRoute(s),
		surveys.GetSurveyCompletionRoute(s),
		surveys.GetSurveysRoute(s),
		surveys.GetUserActivityRoute(s),
		transactions.GetTransactionRoute(s),
		transactions.PostCompleteSurveyRoute(s),
		transactions.PostCreateSurveyRoute(s),
		transactions.PostTransferRoute(s),
		wallets.GetBalanceRoute(s),
		wallets.GetWalletRoute(s),
		wallets.PostCreateWalletRoute(s),
	}
}
