package survey

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	// CreatedEventSuffix identifies the event emitted by create_survey.
	CreatedEventSuffix = "::survey::SurveyCreated"
	surveyIDField      = "survey_id"

	DefaultListLimit    = 20
	MaxListLimit        = 100
	activityRecordLimit = 20
)

var (
	ErrSurveyIDUnavailable = errors.New("survey id not found in transaction events")
	ErrSurveyNotFound      = errors.New("survey not found")
	ErrUnexpectedViewValue = errors.New("unexpected view function result")
)

// Survey metadata mirrored from the chain.
type Survey struct {
	ID               uint64
	Creator          address.Address
	Title            string
	Description      string
	RewardAmount     decimal.Decimal
	MaxResponses     int64
	CurrentResponses int64
	IsActive         bool
	TransactionHash  null.String
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// CreateInput is the survey data submitted with create_survey.
type CreateInput struct {
	Title        string
	Description  string
	RewardAmount float64
	MaxResponses int64
}

type ListParams struct {
	Limit  int
	Offset int
	// Search filters by title, case-insensitive. Empty matches all.
	Search string
}

// Activity summarizes what an address did on PayPost.
type Activity struct {
	Address          address.Address
	SurveysCreated   int64
	SurveysCompleted int64
	Transactions     []*txn.Record
}

// Service keeps survey metadata and answers survey related queries
type Service interface {
	// RecordCreated stores the survey created by executed. The survey id is taken from the
	// SurveyCreated event.
	RecordCreated(ctx context.Context, creator address.Address, input CreateInput, executed *chain.ExecutedTransaction) (*Survey, error)
	// RecordCompletion stores that participant completed surveyID and counts the response.
	RecordCompletion(ctx context.Context, surveyID uint64, participant address.Address, txHash string) error
	ListSurveys(ctx context.Context, params ListParams) ([]*Survey, error)
	// HasCompleted asks the chain whether addr completed surveyID.
	HasCompleted(ctx context.Context, addr address.Address, surveyID uint64) (bool, error)
	UserActivity(ctx context.Context, addr address.Address) (*Activity, error)
}
