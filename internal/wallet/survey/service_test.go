package survey_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aarondl/null/v8"
	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/test/mocks"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/paypost/go-paypost/internal/wallet/survey"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow      = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	surveyColumns = []string{"id", "creator", "title", "description", "reward_amount", "max_responses",
		"current_responses", "is_active", "transaction_hash", "created_at", "updated_at"}
)

type fixture struct {
	service  survey.Service
	db       sqlmock.Sqlmock
	chain    *mocks.ChainClient
	recorder *mocks.Recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	f := &fixture{
		db:       dbMock,
		chain:    &mocks.ChainClient{},
		recorder: &mocks.Recorder{},
	}
	f.service = survey.NewService(db, f.chain, payload.NewBuilder("0xcafe"), f.recorder, time2.NewMockClock(fixedNow))

	return f
}

func createdTx(surveyID any) *chain.ExecutedTransaction {
	return &chain.ExecutedTransaction{
		Hash:    "0x1",
		Success: true,
		Events: []chain.Event{
			{Type: "0x1::coin::WithdrawEvent", Data: map[string]any{"amount": "25000000000"}},
			{Type: "0xcafe::survey::SurveyCreated", Data: map[string]any{"survey_id": surveyID, "creator": "0xabc"}},
		},
	}
}

func TestSurveyIDFromEvents(t *testing.T) {
	id, err := survey.SurveyIDFromEvents(createdTx("12"))
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	id, err = survey.SurveyIDFromEvents(createdTx(float64(7)))
	require.NoError(t, err)
	assert.Equal(t, uint64(7), id)

	for _, invalid := range []any{"abc", float64(-1), 1.5, nil, true} {
		_, err := survey.SurveyIDFromEvents(createdTx(invalid))
		require.ErrorIs(t, err, survey.ErrSurveyIDUnavailable, "%v", invalid)
	}

	_, err = survey.SurveyIDFromEvents(&chain.ExecutedTransaction{Hash: "0x2"})
	require.ErrorIs(t, err, survey.ErrSurveyIDUnavailable)

	_, err = survey.SurveyIDFromEvents(nil)
	require.ErrorIs(t, err, survey.ErrSurveyIDUnavailable)
}

func TestRecordCreated(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectExec(regexp.QuoteMeta("INSERT INTO surveys")).
		WithArgs(int64(12), "0xabc", "Title", "Desc", decimal.RequireFromString("2.5"), int64(100), int64(0), true,
			null.StringFrom("0x1"), fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	sv, err := f.service.RecordCreated(context.Background(), "0xabc", survey.CreateInput{
		Title:        "Title",
		Description:  "Desc",
		RewardAmount: 2.5,
		MaxResponses: 100,
	}, createdTx("12"))
	require.NoError(t, err)

	assert.Equal(t, uint64(12), sv.ID)
	assert.True(t, sv.IsActive)
	assert.Equal(t, "2.5", sv.RewardAmount.String())
	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestRecordCreatedWithoutEvent(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.RecordCreated(context.Background(), "0xabc", survey.CreateInput{Title: "T", RewardAmount: 1, MaxResponses: 1},
		&chain.ExecutedTransaction{Hash: "0x1", Success: true})
	require.ErrorIs(t, err, survey.ErrSurveyIDUnavailable)
	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestRecordCompletion(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectBegin()
	f.db.ExpectExec(regexp.QuoteMeta("INSERT INTO survey_completions")).
		WithArgs(int64(3), "0xdef", "0x9", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.db.ExpectExec(regexp.QuoteMeta("UPDATE surveys")).
		WithArgs(int64(3), fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	f.db.ExpectCommit()

	require.NoError(t, f.service.RecordCompletion(context.Background(), 3, "0xdef", "0x9"))
	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestRecordCompletionIsIdempotent(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectBegin()
	f.db.ExpectExec(regexp.QuoteMeta("INSERT INTO survey_completions")).
		WithArgs(int64(3), "0xdef", "0x9", fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 0))
	f.db.ExpectCommit()

	require.NoError(t, f.service.RecordCompletion(context.Background(), 3, "0xdef", "0x9"))
	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestRecordCompletionRowsAffectedError(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectBegin()
	f.db.ExpectExec(regexp.QuoteMeta("INSERT INTO survey_completions")).
		WithArgs(int64(3), "0xdef", "0x9", fixedNow).
		WillReturnResult(sqlmock.NewErrorResult(errors.New("driver does not report rows")))
	f.db.ExpectRollback()

	err := f.service.RecordCompletion(context.Background(), 3, "0xdef", "0x9")
	require.ErrorContains(t, err, "driver does not report rows")
	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestListSurveys(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectQuery(regexp.QuoteMeta("FROM surveys")).
		WithArgs(survey.MaxListLimit, 0).
		WillReturnRows(sqlmock.NewRows(surveyColumns).
			AddRow(2, "0xabc", "Second", "D", "1.25", 10, 3, true, "0x2", fixedNow, fixedNow).
			AddRow(1, "0xabc", "First", "D", "0.5", 5, 0, true, nil, fixedNow.Add(-time.Hour), fixedNow))

	surveys, err := f.service.ListSurveys(context.Background(), survey.ListParams{Limit: 1000, Offset: -3})
	require.NoError(t, err)
	require.Len(t, surveys, 2)

	assert.Equal(t, uint64(2), surveys[0].ID)
	assert.Equal(t, "1.25", surveys[0].RewardAmount.String())
	assert.Equal(t, int64(3), surveys[0].CurrentResponses)
	assert.False(t, surveys[1].TransactionHash.Valid)

	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestListSurveysDefaultLimit(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectQuery(regexp.QuoteMeta("FROM surveys")).
		WithArgs(survey.DefaultListLimit, 20).
		WillReturnRows(sqlmock.NewRows(surveyColumns))

	surveys, err := f.service.ListSurveys(context.Background(), survey.ListParams{Offset: 20})
	require.NoError(t, err)
	assert.Empty(t, surveys)
}

func TestListSurveysSearch(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectQuery(regexp.QuoteMeta("WHERE is_active = TRUE AND title ILIKE $3")).
		WithArgs(survey.DefaultListLimit, 0, `%100\%\_coffee%`).
		WillReturnRows(sqlmock.NewRows(surveyColumns))

	surveys, err := f.service.ListSurveys(context.Background(), survey.ListParams{Search: " 100%_coffee "})
	require.NoError(t, err)
	assert.Empty(t, surveys)

	require.NoError(t, f.db.ExpectationsWereMet())
}

func TestHasCompleted(t *testing.T) {
	f := newFixture(t)

	f.chain.On("View", mock.Anything, mock.MatchedBy(func(p *payload.Payload) bool {
		return p.Function == "0xcafe::survey::has_completed_survey" &&
			assert.ObjectsAreEqual([]any{payload.Address("0xdef"), uint64(3)}, p.Arguments)
	})).Return([]any{true}, nil).Once()

	completed, err := f.service.HasCompleted(context.Background(), "0xdef", 3)
	require.NoError(t, err)
	assert.True(t, completed)

	f.chain.On("View", mock.Anything, mock.Anything).Return([]any{"yes"}, nil).Once()

	_, err = f.service.HasCompleted(context.Background(), "0xdef", 3)
	require.ErrorIs(t, err, survey.ErrUnexpectedViewValue)
}

func TestHasCompletedMalformedAddress(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.HasCompleted(context.Background(), "0xnothex", 3)
	require.ErrorIs(t, err, chain.ErrInvalidAddress)
	f.chain.AssertNotCalled(t, "View", mock.Anything, mock.Anything)
}

func TestUserActivity(t *testing.T) {
	f := newFixture(t)

	f.db.ExpectQuery(regexp.QuoteMeta("FROM surveys WHERE creator = $1")).
		WithArgs("0xabc").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	f.db.ExpectQuery(regexp.QuoteMeta("FROM survey_completions WHERE participant = $1")).
		WithArgs("0xabc").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	f.recorder.On("ListBySender", mock.Anything, address.Address("0xabc"), 20).Return([]*txn.Record{
		{Hash: "0x1", Function: "0xcafe::survey::create_survey", Status: txn.RecordStatusSuccess},
	}, nil)

	activity, err := f.service.UserActivity(context.Background(), "0xabc")
	require.NoError(t, err)

	assert.Equal(t, int64(2), activity.SurveysCreated)
	assert.Equal(t, int64(5), activity.SurveysCompleted)
	require.Len(t, activity.Transactions, 1)
	assert.Equal(t, "0x1", activity.Transactions[0].Hash)

	require.NoError(t, f.db.ExpectationsWereMet())
}
