package scan_test

import (
	"context"
	"testing"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/test/mocks"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/scan"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(chainClient *mocks.ChainClient, recorder *mocks.Recorder) scan.Service {
	return scan.NewService(config.Scan{
		Interval:    time.Millisecond,
		MinAge:      time.Minute,
		ExpireAfter: 15 * time.Minute,
		BatchSize:   10,
	}, chainClient, recorder, time2.NewMockClock(fixedNow))
}

func record(hash string, age time.Duration) *txn.Record {
	return &txn.Record{
		Hash:      hash,
		Sender:    "0xabc",
		Status:    txn.RecordStatusUnconfirmed,
		CreatedAt: fixedNow.Add(-age),
	}
}

func TestScanOnce(t *testing.T) {
	chainClient := &mocks.ChainClient{}
	recorder := &mocks.Recorder{}

	recorder.On("ListUnresolved", mock.Anything, fixedNow.Add(-time.Minute), 10).Return([]*txn.Record{
		record("0xsuccess", 2*time.Minute),
		record("0xfailure", 2*time.Minute),
		record("0xpending", 2*time.Minute),
		record("0xrecent", 2*time.Minute),
		record("0xgone", time.Hour),
		record("0xbroken", 2*time.Minute),
	}, nil)

	succeeded := &chain.ExecutedTransaction{Hash: "0xsuccess", Success: true, Version: 3}
	failed := &chain.ExecutedTransaction{Hash: "0xfailure", Success: false, VMStatus: "Move abort"}

	chainClient.On("TransactionByHash", mock.Anything, "0xsuccess").Return(&chain.TransactionStatus{Hash: "0xsuccess", Executed: succeeded}, nil)
	chainClient.On("TransactionByHash", mock.Anything, "0xfailure").Return(&chain.TransactionStatus{Hash: "0xfailure", Executed: failed}, nil)
	chainClient.On("TransactionByHash", mock.Anything, "0xpending").Return(&chain.TransactionStatus{Hash: "0xpending"}, nil)
	chainClient.On("TransactionByHash", mock.Anything, "0xrecent").Return(nil, errors.Wrap(chain.ErrTransactionNotFound, "0xrecent"))
	chainClient.On("TransactionByHash", mock.Anything, "0xgone").Return(nil, errors.Wrap(chain.ErrTransactionNotFound, "0xgone"))
	chainClient.On("TransactionByHash", mock.Anything, "0xbroken").Return(nil, errors.New("connection reset"))

	recorder.On("RecordOutcome", mock.Anything, "0xsuccess", txn.RecordStatusSuccess, succeeded).Return(nil).Once()
	recorder.On("RecordOutcome", mock.Anything, "0xfailure", txn.RecordStatusFailure, failed).Return(nil).Once()
	recorder.On("RecordOutcome", mock.Anything, "0xgone", txn.RecordStatusExpired, (*chain.ExecutedTransaction)(nil)).Return(nil).Once()

	progress, err := newService(chainClient, recorder).ScanOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, &scan.Progress{Checked: 6, Resolved: 2, Expired: 1, Pending: 2, Failed: 1}, progress)

	chainClient.AssertExpectations(t)
	recorder.AssertExpectations(t)
}

func TestScanOnceListError(t *testing.T) {
	recorder := &mocks.Recorder{}
	recorder.On("ListUnresolved", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	_, err := newService(&mocks.ChainClient{}, recorder).ScanOnce(context.Background())
	require.Error(t, err)
}

func TestRunStopsWithContext(t *testing.T) {
	recorder := &mocks.Recorder{}
	recorder.On("ListUnresolved", mock.Anything, mock.Anything, mock.Anything).Return([]*txn.Record{}, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, newService(&mocks.ChainClient{}, recorder).Run(ctx))
	recorder.AssertCalled(t, "ListUnresolved", mock.Anything, mock.Anything, 10)
}
