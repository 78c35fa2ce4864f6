package scan

import (
	"context"
	"time"

	"github.com/dropbox/godropbox/time2"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/metrics"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/txn"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	defaultScanInterval = 15 * time.Second
	defaultBatchSize    = 50
)

type service struct {
	chain    chain.Client
	recorder txn.Recorder
	clock    time2.Clock

	interval    time.Duration
	minAge      time.Duration
	expireAfter time.Duration
	batchSize   int
}

// NewService creates the scan service. Records younger than cfg.MinAge are left to the pipeline,
// records unknown to the node after cfg.ExpireAfter are marked expired.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cfg config.Scan, client chain.Client, recorder txn.Recorder, clock time2.Clock) Service {
	s := &service{
		chain:       client,
		recorder:    recorder,
		clock:       clock,
		interval:    cfg.Interval,
		minAge:      cfg.MinAge,
		expireAfter: cfg.ExpireAfter,
		batchSize:   cfg.BatchSize,
	}

	if s.interval <= 0 {
		s.interval = defaultScanInterval
	}
	if s.batchSize <= 0 {
		s.batchSize = defaultBatchSize
	}

	return s
}

func (s *service) Run(ctx context.Context) error {
	log.Info().Dur("interval", s.interval).Msg("Starting transaction scan")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Transaction scan stopped by context")
			return nil
		case <-ticker.C:
			progress, err := s.ScanOnce(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				log.Error().Err(err).Msg("Failed to scan unresolved transactions")
				continue
			}

			if progress.Checked > 0 {
				log.Info().
					Int("checked", progress.Checked).
					Int("resolved", progress.Resolved).
					Int("expired", progress.Expired).
					Int("pending", progress.Pending).
					Int("failed", progress.Failed).
					Msg("Scanned unresolved transactions")
			}
		}
	}
}

func (s *service) ScanOnce(ctx context.Context) (*Progress, error) {
	now := s.clock.Now()

	records, err := s.recorder.ListUnresolved(ctx, now.Add(-s.minAge), s.batchSize)
	if err != nil {
		return nil, err
	}

	progress := &Progress{Checked: len(records)}

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return progress, err
		}

		status, err := s.check(ctx, rec, now)
		if err != nil {
			util.LogFromContext(ctx).Warn().Err(err).Str("transaction_hash", rec.Hash).Msg("Failed to reconcile transaction")
			progress.Failed++
			continue
		}

		switch status {
		case txn.RecordStatusSuccess, txn.RecordStatusFailure:
			progress.Resolved++
		case txn.RecordStatusExpired:
			progress.Expired++
		case txn.RecordStatusPending, txn.RecordStatusUnconfirmed:
			progress.Pending++
		}
	}

	return progress, nil
}

// check looks rec up on the chain and stores the outcome. It returns the record's new status.
func (s *service) check(ctx context.Context, rec *txn.Record, now time.Time) (txn.RecordStatus, error) {
	logger := util.LogFromContext(ctx).With().Str("transaction_hash", rec.Hash).Logger()

	status, err := s.chain.TransactionByHash(ctx, rec.Hash)
	if err != nil {
		if !errors.Is(err, chain.ErrTransactionNotFound) {
			return "", err
		}

		if now.Sub(rec.CreatedAt) < s.expireAfter {
			return rec.Status, nil
		}

		if err := s.recorder.RecordOutcome(ctx, rec.Hash, txn.RecordStatusExpired, nil); err != nil {
			return "", err
		}
		metrics.TransactionsReconciled.WithLabelValues(string(txn.RecordStatusExpired)).Inc()
		logger.Warn().Time("created_at", rec.CreatedAt).Msg("Transaction unknown to the node, marked expired")

		return txn.RecordStatusExpired, nil
	}

	executed := status.Executed
	if executed == nil {
		return rec.Status, nil
	}

	outcome := txn.RecordStatusFailure
	if executed.Success {
		outcome = txn.RecordStatusSuccess
	}

	if err := s.recorder.RecordOutcome(ctx, rec.Hash, outcome, executed); err != nil {
		return "", err
	}
	metrics.TransactionsReconciled.WithLabelValues(string(outcome)).Inc()
	logger.Info().Str("status", string(outcome)).Uint64("version", executed.Version).Msg("Transaction reconciled")

	return outcome, nil
}
