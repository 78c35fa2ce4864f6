package types

import (
	"github.com/go-openapi/errors"
	"github.com/go-openapi/strfmt"
	"github.com/go-openapi/validate"
)

// SurveyItem is a survey as listed by GET /api/surveys.
type SurveyItem struct {
	ID               *int64           `json:"id"`
	Creator          *string          `json:"creator"`
	Title            *string          `json:"title"`
	Description      string           `json:"description"`
	RewardAmount     *string          `json:"rewardAmount"`
	MaxResponses     *int64           `json:"maxResponses"`
	CurrentResponses *int64           `json:"currentResponses"`
	IsActive         *bool            `json:"isActive"`
	TransactionHash  string           `json:"transactionHash,omitempty"`
	CreatedAt        *strfmt.DateTime `json:"createdAt"`
}

// GetSurveysResponse is returned by GET /api/surveys.
type GetSurveysResponse struct {
	Surveys []*SurveyItem `json:"surveys"`
}

// Validate validates this get surveys response
func (m *GetSurveysResponse) Validate(_ strfmt.Registry) error {
	if err := validate.Required("surveys", "body", m.Surveys); err != nil {
		return errors.CompositeValidationError(err)
	}

	return nil
}

// ActivityItem is a single transaction in a user's activity feed.
type ActivityItem struct {
	TransactionHash *string          `json:"transactionHash"`
	Function        *string          `json:"function"`
	Status          *string          `json:"status"`
	CreatedAt       *strfmt.DateTime `json:"createdAt"`
}

// UserActivityResponse is returned by GET /api/user-activity/:address.
type UserActivityResponse struct {
	Address          *string         `json:"address"`
	SurveysCreated   *int64          `json:"surveysCreated"`
	SurveysCompleted *int64          `json:"surveysCompleted"`
	Transactions     []*ActivityItem `json:"transactions"`
}

// Validate validates this user activity response
func (m *UserActivityResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("transactions", "body", m.Transactions); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}

// SurveyCompletionResponse is returned by GET /api/survey-completion/:address/:surveyId.
type SurveyCompletionResponse struct {
	Address   *string `json:"address"`
	SurveyID  *int64  `json:"surveyId"`
	Completed *bool   `json:"completed"`
}

// Validate validates this survey completion response
func (m *SurveyCompletionResponse) Validate(_ strfmt.Registry) error {
	var res []error

	if err := validate.Required("address", "body", m.Address); err != nil {
		res = append(res, err)
	}
	if err := validate.Required("completed", "body", m.Completed); err != nil {
		res = append(res, err)
	}

	if len(res) > 0 {
		return errors.CompositeValidationError(res...)
	}

	return nil
}
