package survey

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"github.com/aarondl/null/v8"
	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/util/db"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/payload"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
)

type service struct {
	db       *sql.DB
	chain    chain.Client
	builder  *payload.Builder
	recorder txn.Recorder
	clock    time2.Clock
}

// NewService creates the survey service
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(db *sql.DB, client chain.Client, builder *payload.Builder, recorder txn.Recorder, clock time2.Clock) Service {
	return &service{
		db:       db,
		chain:    client,
		builder:  builder,
		recorder: recorder,
		clock:    clock,
	}
}

const surveyColumns = `id, creator, title, description, reward_amount, max_responses, current_responses, is_active, transaction_hash, created_at, updated_at`

func (s *service) RecordCreated(ctx context.Context, creator address.Address, input CreateInput, executed *chain.ExecutedTransaction) (*Survey, error) {
	id, err := SurveyIDFromEvents(executed)
	if err != nil {
		return nil, err
	}

	octas, err := payload.ToOctas(input.RewardAmount)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert reward amount")
	}

	now := s.clock.Now()
	sv := &Survey{
		ID:               id,
		Creator:          creator,
		Title:            input.Title,
		Description:      input.Description,
		RewardAmount:     payload.FromOctas(octas),
		MaxResponses:     input.MaxResponses,
		CurrentResponses: 0,
		IsActive:         true,
		TransactionHash:  null.StringFrom(executed.Hash),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO surveys (`+surveyColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`,
		int64(sv.ID), sv.Creator.String(), sv.Title, sv.Description, sv.RewardAmount,
		sv.MaxResponses, sv.CurrentResponses, sv.IsActive, sv.TransactionHash, sv.CreatedAt, sv.UpdatedAt,
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to insert survey %d", id)
	}

	util.LogFromContext(ctx).Info().Uint64("survey_id", id).Str("creator", creator.String()).Msg("Survey recorded")

	return sv, nil
}

func (s *service) RecordCompletion(ctx context.Context, surveyID uint64, participant address.Address, txHash string) error {
	id := int64(surveyID)

	return db.WithTransaction(ctx, s.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO survey_completions (survey_id, participant, transaction_hash, created_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (survey_id, participant) DO NOTHING`,
			id, participant.String(), txHash, s.clock.Now(),
		)
		if err != nil {
			return errors.Wrap(err, "failed to insert survey completion")
		}

		n, err := res.RowsAffected()
		if err != nil {
			return errors.Wrap(err, "failed to read inserted survey completions")
		}
		if n == 0 {
			return nil
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE surveys
			SET current_responses = current_responses + 1,
				is_active = current_responses + 1 < max_responses,
				updated_at = $2
			WHERE id = $1`,
			id, s.clock.Now(),
		); err != nil {
			return errors.Wrap(err, "failed to update survey responses")
		}

		return nil
	})
}

func (s *service) ListSurveys(ctx context.Context, params ListParams) ([]*Survey, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	offset := params.Offset
	if offset < 0 {
		offset = 0
	}

	where := "is_active = TRUE"
	args := []any{limit, offset}
	if strings.TrimSpace(params.Search) != "" {
		where += " AND title ILIKE $3"
		args = append(args, db.LikeSearchPattern(params.Search))
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+surveyColumns+` FROM surveys
		WHERE `+where+`
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2`,
		args...,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list surveys")
	}
	defer rows.Close()

	surveys := make([]*Survey, 0, limit)
	for rows.Next() {
		var (
			sv      Survey
			id      int64
			creator string
		)

		if err := rows.Scan(&id, &creator, &sv.Title, &sv.Description, &sv.RewardAmount, &sv.MaxResponses,
			&sv.CurrentResponses, &sv.IsActive, &sv.TransactionHash, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, errors.Wrap(err, "failed to scan survey")
		}

		sv.ID = uint64(id)
		sv.Creator = address.Address(creator)
		surveys = append(surveys, &sv)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate surveys")
	}

	return surveys, nil
}

func (s *service) HasCompleted(ctx context.Context, addr address.Address, surveyID uint64) (bool, error) {
	if _, err := chain.ParseAddress(addr.String()); err != nil {
		return false, err
	}

	values, err := s.chain.View(ctx, s.builder.HasCompletedSurveyView(addr.String(), surveyID))
	if err != nil {
		return false, err
	}

	if len(values) != 1 {
		return false, errors.Wrapf(ErrUnexpectedViewValue, "got %d values", len(values))
	}

	completed, ok := values[0].(bool)
	if !ok {
		return false, errors.Wrapf(ErrUnexpectedViewValue, "got %T", values[0])
	}

	return completed, nil
}

func (s *service) UserActivity(ctx context.Context, addr address.Address) (*Activity, error) {
	activity := &Activity{Address: addr}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM surveys WHERE creator = $1`, addr.String()).
		Scan(&activity.SurveysCreated); err != nil {
		return nil, errors.Wrap(err, "failed to count created surveys")
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM survey_completions WHERE participant = $1`, addr.String()).
		Scan(&activity.SurveysCompleted); err != nil {
		return nil, errors.Wrap(err, "failed to count completed surveys")
	}

	records, err := s.recorder.ListBySender(ctx, addr, activityRecordLimit)
	if err != nil {
		return nil, err
	}
	activity.Transactions = records

	return activity, nil
}

// SurveyIDFromEvents extracts the survey id from the SurveyCreated event of executed. Move u64
// values arrive as decimal strings, plain numbers are accepted too.
func SurveyIDFromEvents(executed *chain.ExecutedTransaction) (uint64, error) {
	if executed == nil {
		return 0, ErrSurveyIDUnavailable
	}

	event, ok := executed.FindEvent(CreatedEventSuffix)
	if !ok {
		return 0, errors.Wrapf(ErrSurveyIDUnavailable, "transaction %s", executed.Hash)
	}

	switch v := event.Data[surveyIDField].(type) {
	case string:
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, errors.Wrapf(ErrSurveyIDUnavailable, "invalid survey id %q", v)
		}
		return id, nil
	case float64:
		if v < 0 || v != float64(uint64(v)) {
			return 0, errors.Wrapf(ErrSurveyIDUnavailable, "invalid survey id %v", v)
		}
		return uint64(v), nil
	default:
		return 0, errors.Wrapf(ErrSurveyIDUnavailable, "survey id has type %T", v)
	}
}
