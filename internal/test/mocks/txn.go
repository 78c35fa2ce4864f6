package mocks

import (
	"context"
	"time"

	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/stretchr/testify/mock"
)

// Recorder is a testify mock of txn.Recorder.
type Recorder struct {
	mock.Mock
}

var _ txn.Recorder = (*Recorder)(nil)

// NewPermissiveRecorder accepts any call.
func NewPermissiveRecorder() *Recorder {
	r := &Recorder{}
	r.On("RecordSubmitted", mock.Anything, mock.Anything).Return(nil).Maybe()
	r.On("RecordOutcome", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	return r
}

func (m *Recorder) RecordSubmitted(ctx context.Context, rec *txn.Record) error {
	return m.Called(ctx, rec).Error(0)
}

func (m *Recorder) RecordOutcome(ctx context.Context, hash string, status txn.RecordStatus, executed *chain.ExecutedTransaction) error {
	return m.Called(ctx, hash, status, executed).Error(0)
}

func (m *Recorder) Get(ctx context.Context, hash string) (*txn.Record, error) {
	args := m.Called(ctx, hash)
	rec, _ := args.Get(0).(*txn.Record)
	return rec, args.Error(1)
}

func (m *Recorder) ListBySender(ctx context.Context, sender address.Address, limit int) ([]*txn.Record, error) {
	args := m.Called(ctx, sender, limit)
	recs, _ := args.Get(0).([]*txn.Record)
	return recs, args.Error(1)
}

func (m *Recorder) ListUnresolved(ctx context.Context, olderThan time.Time, limit int) ([]*txn.Record, error) {
	args := m.Called(ctx, olderThan, limit)
	recs, _ := args.Get(0).([]*txn.Record)
	return recs, args.Error(1)
}
