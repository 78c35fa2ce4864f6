package payload

import (
	"strings"

	"github.com/pkg/errors"
)

const (
	// SurveyDuration is the fixed lifetime of a survey in seconds (7 days).
	SurveyDuration uint64 = 604_800

	// PlaceholderResponseHash is committed on-chain for every survey completion. Survey answers
	// themselves are not part of the transaction.
	PlaceholderResponseHash = "response"

	// TransferFunction is the chain's native coin transfer entrypoint.
	TransferFunction = "0x1::aptos_account::transfer"

	surveyModule = "survey"
)

// Builder encodes PayPost actions into entry function payloads for the survey module
// published at ModuleAddress.
type Builder struct {
	ModuleAddress string
}

func NewBuilder(moduleAddress string) *Builder {
	return &Builder{ModuleAddress: moduleAddress}
}

func (b *Builder) function(name string) string {
	return b.ModuleAddress + "::" + surveyModule + "::" + name
}

// CreateSurvey builds the create_survey call. Args: title, description (UTF-8 bytes), reward
// per response in octas, max responses, duration in seconds.
func (b *Builder) CreateSurvey(title, description string, rewardAmount float64, maxResponses int64) (*Payload, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyDescription
	}
	if !(rewardAmount > 0) {
		return nil, ErrNonPositiveReward
	}
	if maxResponses <= 0 {
		return nil, ErrNonPositiveMaxResponses
	}

	reward, err := ToOctas(rewardAmount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert reward amount")
	}
	if reward == 0 {
		return nil, errors.Wrap(ErrNonPositiveReward, "reward is below one octa")
	}

	return &Payload{
		Function: b.function("create_survey"),
		Arguments: []any{
			[]byte(title),
			[]byte(description),
			reward,
			uint64(maxResponses),
			SurveyDuration,
		},
	}, nil
}

// CompleteSurvey builds the complete_survey call. Args: survey id, placeholder response hash.
func (b *Builder) CompleteSurvey(surveyID uint64) *Payload {
	return &Payload{
		Function: b.function("complete_survey"),
		Arguments: []any{
			surveyID,
			[]byte(PlaceholderResponseHash),
		},
	}
}

// Transfer builds a native coin transfer of amount tokens to toAddress.
func (b *Builder) Transfer(toAddress string, amount float64) (*Payload, error) {
	if strings.TrimSpace(toAddress) == "" {
		return nil, ErrEmptyRecipient
	}
	if !(amount > 0) {
		return nil, ErrNonPositiveAmount
	}

	octas, err := ToOctas(amount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert amount")
	}
	if octas == 0 {
		return nil, errors.Wrap(ErrNonPositiveAmount, "amount is below one octa")
	}

	to := toAddress
	if !strings.HasPrefix(to, "0x") {
		to = "0x" + to
	}

	return &Payload{
		Function: TransferFunction,
		Arguments: []any{
			Address(to),
			octas,
		},
	}, nil
}

// HasCompletedSurveyView is the view function answering whether address completed a survey.
func (b *Builder) HasCompletedSurveyView(participant string, surveyID uint64) *Payload {
	return &Payload{
		Function: b.function("has_completed_survey"),
		Arguments: []any{
			Address(participant),
			surveyID,
		},
	}
}

// IsSurveyFunction reports whether function targets the survey entrypoint name of this module.
func (b *Builder) IsSurveyFunction(function string, name string) bool {
	return function == b.function(name)
}
