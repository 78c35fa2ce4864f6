package txn_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aarondl/null/v8"
	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newRecorder(t *testing.T) (*txn.SQLRecorder, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return txn.NewSQLRecorder(db, time2.NewMockClock(fixedNow)), mock
}

func TestRecordSubmitted(t *testing.T) {
	r, mock := newRecorder(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO transactions")).
		WithArgs(testHash, "0xabc", "w1", "0x1::x::y", "pending", fixedNow, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := &txn.Record{Hash: testHash, Sender: "0xabc", WalletID: "w1", Function: "0x1::x::y"}
	require.NoError(t, r.RecordSubmitted(context.Background(), rec))
	assert.Equal(t, txn.RecordStatusPending, rec.Status)
	assert.Equal(t, fixedNow, rec.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordOutcome(t *testing.T) {
	r, mock := newRecorder(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions")).
		WithArgs(testHash, "success", null.StringFrom("Executed successfully"), null.Int64From(7), null.Int64From(99), fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	mock.ExpectExec(regexp.QuoteMeta("UPDATE transactions")).
		WithArgs(testHash, "unconfirmed", null.String{}, null.Int64{}, null.Int64{}, fixedNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, r.RecordOutcome(context.Background(), testHash, txn.RecordStatusSuccess, &chain.ExecutedTransaction{
		VMStatus: "Executed successfully",
		GasUsed:  7,
		Version:  99,
	}))
	require.NoError(t, r.RecordOutcome(context.Background(), testHash, txn.RecordStatusUnconfirmed, nil))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRecord(t *testing.T) {
	r, mock := newRecorder(t)

	columns := []string{"hash", "sender", "wallet_id", "function", "status", "vm_status", "gas_used", "version", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE hash = $1")).
		WithArgs(testHash).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(testHash, "0xabc", "w1", "0x1::x::y", "success", "Executed successfully", 7, 99, fixedNow, fixedNow))

	mock.ExpectQuery(regexp.QuoteMeta("FROM transactions WHERE hash = $1")).
		WithArgs("0xmissing").
		WillReturnError(sql.ErrNoRows)

	rec, err := r.Get(context.Background(), testHash)
	require.NoError(t, err)
	assert.Equal(t, address.Address("0xabc"), rec.Sender)
	assert.Equal(t, txn.RecordStatusSuccess, rec.Status)
	assert.Equal(t, null.StringFrom("Executed successfully"), rec.VMStatus)
	assert.Equal(t, int64(99), rec.Version.Int64)

	_, err = r.Get(context.Background(), "0xmissing")
	require.ErrorIs(t, err, txn.ErrRecordNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListBySender(t *testing.T) {
	r, mock := newRecorder(t)

	columns := []string{"hash", "sender", "wallet_id", "function", "status", "vm_status", "gas_used", "version", "created_at", "updated_at"}

	mock.ExpectQuery(regexp.QuoteMeta("WHERE sender = $1")).
		WithArgs("0xabc", 10).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("0x2", "0xabc", "w1", "0xcafe::survey::complete_survey", "pending", nil, nil, nil, fixedNow, fixedNow).
			AddRow("0x1", "0xabc", "w1", "0xcafe::survey::create_survey", "success", "Executed successfully", 7, 99, fixedNow, fixedNow))

	recs, err := r.ListBySender(context.Background(), "0xabc", 10)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "0x2", recs[0].Hash)
	assert.False(t, recs[0].VMStatus.Valid)
	assert.True(t, recs[1].GasUsed.Valid)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListUnresolved(t *testing.T) {
	r, mock := newRecorder(t)

	columns := []string{"hash", "sender", "wallet_id", "function", "status", "vm_status", "gas_used", "version", "created_at", "updated_at"}
	cutoff := fixedNow.Add(-time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE status IN ($1, $2) AND created_at < $3")).
		WithArgs("pending", "unconfirmed", cutoff, 50).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("0x9", "0xabc", "w1", "0x1::aptos_account::transfer", "unconfirmed", nil, nil, nil, cutoff, cutoff))

	recs, err := r.ListUnresolved(context.Background(), cutoff, 50)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, txn.RecordStatusUnconfirmed, recs[0].Status)

	require.NoError(t, mock.ExpectationsWereMet())
}
