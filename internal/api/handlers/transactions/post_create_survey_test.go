package transactions_test

import (
	"net/http"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/paypost/go-paypost/internal/api"
	"github.com/paypost/go-paypost/internal/test"
	"github.com/paypost/go-paypost/internal/types"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createSurveyBody(reward float64) test.GenericPayload {
	return withFields(signingRef(), test.GenericPayload{
		"surveyData": test.GenericPayload{
			"title":        "Title",
			"description":  "Desc",
			"rewardAmount": reward,
			"maxResponses": 100,
		},
	})
}

func TestPostCreateSurvey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		executed := successful()
		executed.Events = []chain.Event{
			{Type: test.TestModuleAddress + "::survey::SurveyCreated", Data: map[string]any{"survey_id": "7"}},
		}
		acceptAll(m, executed)

		m.SQL.ExpectExec(regexp.QuoteMeta("INSERT INTO surveys")).
			WithArgs(int64(7), testAddress, "Title", "Desc", sqlmock.AnyArg(), int64(100), int64(0), true, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		res := test.PerformRequest(t, s, "POST", "/api/transactions/create-survey", createSurveyBody(2.5), nil)
		require.Equal(t, http.StatusOK, res.Result().StatusCode)

		var body types.TransactionResponse
		test.ParseResponseAndValidate(t, res, &body)

		assert.True(t, *body.Success)
		assert.Equal(t, testHash, *body.TransactionHash)
		require.NotNil(t, body.Result)
		assert.Equal(t, uint64(42), body.Result.Version)
		require.Len(t, body.Result.Events, 1)

		built, ok := m.Chain.Calls[0].Arguments.Get(2).(*payload.Payload)
		require.True(t, ok)
		assert.Equal(t, test.TestModuleAddress+"::survey::create_survey", built.Function)
		assert.Equal(t, uint64(250000000), built.Arguments[2])
		assert.Equal(t, uint64(100), built.Arguments[3])
		assert.Equal(t, uint64(604800), built.Arguments[4])

		m.AssertExpectations(t)
	})
}

func TestPostCreateSurveyMirrorFailureStillSucceeds(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		// no SurveyCreated event, the survey cannot be mirrored
		acceptAll(m, successful())

		res := test.PerformRequest(t, s, "POST", "/api/transactions/create-survey", createSurveyBody(1), nil)
		assert.Equal(t, http.StatusOK, res.Result().StatusCode)
	})
}

func TestPostCreateSurveyInvalidReward(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		res := test.PerformRequest(t, s, "POST", "/api/transactions/create-survey", createSurveyBody(0), nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidPayload, body.Type)
		assert.Contains(t, body.Detail, payload.ErrNonPositiveReward.Error())

		m.Chain.AssertNotCalled(t, "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
		m.Signer.AssertNotCalled(t, "RawSign", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostCreateSurveyMissingFields(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		res := test.PerformRequest(t, s, "POST", "/api/transactions/create-survey", signingRef(), nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var body types.PublicHTTPValidationError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeValidation, body.Type)
		require.Len(t, body.ValidationErrors, 1)
		assert.Equal(t, "surveyData", *body.ValidationErrors[0].Key)

		m.Chain.AssertNotCalled(t, "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostCreateSurveyShortPublicKey(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		body := createSurveyBody(1)
		body["publicKey"] = "0x" + testPublicKey[:48]

		res := test.PerformRequest(t, s, "POST", "/api/transactions/create-survey", body, nil)
		require.Equal(t, http.StatusBadRequest, res.Result().StatusCode)

		var errBody types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &errBody)
		assert.Equal(t, types.PublicHTTPErrorTypeInvalidPublicKey, errBody.Type)

		m.Chain.AssertNotCalled(t, "BuildTransaction", mock.Anything, mock.Anything, mock.Anything)
		m.Signer.AssertNotCalled(t, "RawSign", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPostCreateSurveyBuildFailure(t *testing.T) {
	test.WithTestServer(t, func(s *api.Server, m *test.Mocks) {
		m.Chain.On("BuildTransaction", mock.Anything, mock.Anything, mock.Anything).Return(nil, &chain.TransactionBuildError{Err: errors.New("sequence number")})

		res := test.PerformRequest(t, s, "POST", "/api/transactions/create-survey", createSurveyBody(1), nil)
		require.Equal(t, http.StatusInternalServerError, res.Result().StatusCode)

		var body types.PublicHTTPError
		test.ParseResponseAndValidate(t, res, &body)
		assert.Equal(t, types.PublicHTTPErrorTypeSubmissionFailure, body.Type)

		m.Signer.AssertNotCalled(t, "RawSign", mock.Anything, mock.Anything, mock.Anything)
	})
}
