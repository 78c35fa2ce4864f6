package txn

import (
	"context"
	"database/sql"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/pkg/errors"
)

// RecordStatus is the lifecycle state of a submitted transaction.
type RecordStatus string

const (
	RecordStatusPending     RecordStatus = "pending"
	RecordStatusSuccess     RecordStatus = "success"
	RecordStatusFailure     RecordStatus = "failure"
	RecordStatusUnconfirmed RecordStatus = "unconfirmed"
	// RecordStatusExpired marks a transaction the node never committed and no longer knows.
	RecordStatusExpired RecordStatus = "expired"
)

var ErrRecordNotFound = errors.New("transaction record not found")

// Record is a transaction submitted through the pipeline.
type Record struct {
	Hash      string
	Sender    address.Address
	WalletID  string
	Function  string
	Status    RecordStatus
	VMStatus  null.String
	GasUsed   null.Int64
	Version   null.Int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Recorder persists pipeline outcomes.
type Recorder interface {
	RecordSubmitted(ctx context.Context, rec *Record) error
	RecordOutcome(ctx context.Context, hash string, status RecordStatus, executed *chain.ExecutedTransaction) error
	Get(ctx context.Context, hash string) (*Record, error)
	ListBySender(ctx context.Context, sender address.Address, limit int) ([]*Record, error)
	// ListUnresolved returns pending and unconfirmed records created before olderThan, oldest first.
	ListUnresolved(ctx context.Context, olderThan time.Time, limit int) ([]*Record, error)
}

// SQLRecorder stores records in the transactions table.
type SQLRecorder struct {
	db    *sql.DB
	clock time2.Clock
}

func NewSQLRecorder(db *sql.DB, clock time2.Clock) *SQLRecorder {
	return &SQLRecorder{db: db, clock: clock}
}

func (r *SQLRecorder) RecordSubmitted(ctx context.Context, rec *Record) error {
	now := r.clock.Now()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = RecordStatusPending
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (hash, sender, wallet_id, function, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (hash) DO NOTHING`,
		rec.Hash, rec.Sender.String(), rec.WalletID, rec.Function, string(rec.Status), rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return errors.Wrapf(err, "failed to insert transaction %s", rec.Hash)
	}

	return nil
}

func (r *SQLRecorder) RecordOutcome(ctx context.Context, hash string, status RecordStatus, executed *chain.ExecutedTransaction) error {
	var (
		vmStatus null.String
		gasUsed  null.Int64
		version  null.Int64
	)
	if executed != nil {
		vmStatus = null.StringFrom(executed.VMStatus)
		gasUsed = null.Int64From(int64(executed.GasUsed))
		version = null.Int64From(int64(executed.Version))
	}

	_, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET status = $2, vm_status = $3, gas_used = $4, version = $5, updated_at = $6
		WHERE hash = $1`,
		hash, string(status), vmStatus, gasUsed, version, r.clock.Now(),
	)
	if err != nil {
		return errors.Wrapf(err, "failed to update transaction %s", hash)
	}

	return nil
}

const recordColumns = `hash, sender, wallet_id, function, status, vm_status, gas_used, version, created_at, updated_at`

func (r *SQLRecorder) Get(ctx context.Context, hash string) (*Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM transactions WHERE hash = $1`, hash)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errors.Wrapf(ErrRecordNotFound, "hash %s", hash)
		}
		return nil, errors.Wrapf(err, "failed to get transaction %s", hash)
	}

	return rec, nil
}

func (r *SQLRecorder) ListBySender(ctx context.Context, sender address.Address, limit int) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM transactions
		WHERE sender = $1
		ORDER BY created_at DESC
		LIMIT $2`,
		sender.String(), limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list transactions")
	}

	return scanRecords(rows)
}

func (r *SQLRecorder) ListUnresolved(ctx context.Context, olderThan time.Time, limit int) ([]*Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+recordColumns+` FROM transactions
		WHERE status IN ($1, $2) AND created_at < $3
		ORDER BY created_at ASC
		LIMIT $4`,
		string(RecordStatusPending), string(RecordStatusUnconfirmed), olderThan, limit,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list unresolved transactions")
	}

	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]*Record, error) {
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan transaction")
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate transactions")
	}

	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (*Record, error) {
	var (
		rec    Record
		sender string
		status string
	)

	if err := s.Scan(
		&rec.Hash, &sender, &rec.WalletID, &rec.Function, &status,
		&rec.VMStatus, &rec.GasUsed, &rec.Version, &rec.CreatedAt, &rec.UpdatedAt,
	); err != nil {
		return nil, err
	}

	rec.Sender = address.Address(sender)
	rec.Status = RecordStatus(status)

	return &rec, nil
}
