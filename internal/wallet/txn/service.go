package txn

import (
	"context"
	"strings"
	"time"

	"github.com/aptos-labs/aptos-go-sdk"
	"github.com/aptos-labs/aptos-go-sdk/crypto"
	"github.com/paypost/go-paypost/internal/config"
	"github.com/paypost/go-paypost/internal/metrics"
	"github.com/paypost/go-paypost/internal/tracing"
	"github.com/paypost/go-paypost/internal/util"
	"github.com/paypost/go-paypost/internal/wallet/address"
	"github.com/paypost/go-paypost/internal/wallet/chain"
	"github.com/paypost/go-paypost/internal/wallet/signer"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	stageNormalize    = "normalize"
	stageLock         = "lock"
	stageBuild        = "build"
	stageSigningMsg   = "signing_message"
	stageSign         = "sign"
	stageAssemble     = "assemble"
	stageSubmit       = "submit"
	stageConfirm      = "confirm"
	defaultConfirmTTL = 30 * time.Second
)

type service struct {
	chain          chain.Client
	signer         signer.Service
	locker         SenderLocker
	recorder       Recorder
	confirmTimeout time.Duration
	tracer         trace.Tracer
}

// NewService creates the transaction pipeline
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService(cfg config.Chain, client chain.Client, signerService signer.Service, locker SenderLocker, recorder Recorder) Service {
	timeout := cfg.ConfirmTimeout
	if timeout <= 0 {
		timeout = defaultConfirmTTL
	}

	return &service{
		chain:          client,
		signer:         signerService,
		locker:         locker,
		recorder:       recorder,
		confirmTimeout: timeout,
		tracer:         tracing.Tracer("github.com/paypost/go-paypost/internal/wallet/txn"),
	}
}

type normalizedRequest struct {
	walletID  string
	publicKey address.PublicKey
	sender    address.Address
}

func normalizeRequest(req *Request) (*normalizedRequest, error) {
	if strings.TrimSpace(req.WalletID) == "" {
		return nil, ErrMissingWalletID
	}

	pk, err := address.NormalizePublicKey(req.PublicKey)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Address) == "" {
		return nil, ErrMissingAddress
	}

	sender := address.NormalizeAddress(req.Address)
	if _, err := chain.ParseAddress(sender.String()); err != nil {
		return nil, err
	}

	if err := chain.ValidatePayload(req.Payload); err != nil {
		return nil, err
	}

	return &normalizedRequest{
		walletID:  req.WalletID,
		publicKey: pk,
		sender:    sender,
	}, nil
}

func (s *service) SignAndSubmitTransaction(ctx context.Context, req *Request) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, "txn.SignAndSubmitTransaction")
	defer span.End()

	log := util.LogFromContext(ctx)

	var norm *normalizedRequest
	if err := s.stage(ctx, stageNormalize, func(context.Context) error {
		var err error
		norm, err = normalizeRequest(req)
		return err
	}); err != nil {
		return nil, err
	}

	span.SetAttributes(
		attribute.String("paypost.sender", norm.sender.String()),
		attribute.String("paypost.function", req.Payload.Function),
	)

	var unlock func()
	if err := s.stage(ctx, stageLock, func(ctx context.Context) error {
		start := time.Now()
		var err error
		unlock, err = s.locker.Lock(ctx, norm.sender)
		metrics.SenderLockWait.Observe(time.Since(start).Seconds())
		return err
	}); err != nil {
		return nil, err
	}
	defer unlock()

	var rawTx *aptos.RawTransaction
	if err := s.stage(ctx, stageBuild, func(ctx context.Context) error {
		var err error
		rawTx, err = s.chain.BuildTransaction(ctx, norm.sender, req.Payload)
		return err
	}); err != nil {
		return nil, err
	}

	var message []byte
	if err := s.stage(ctx, stageSigningMsg, func(context.Context) error {
		var err error
		message, err = s.chain.SigningMessage(rawTx)
		return err
	}); err != nil {
		return nil, err
	}

	var sig signer.Signature
	if err := s.stage(ctx, stageSign, func(ctx context.Context) error {
		var err error
		sig, err = s.signer.RequestSignature(ctx, norm.walletID, message)
		if err != nil {
			metrics.SignerRequests.WithLabelValues("error").Inc()
		} else {
			metrics.SignerRequests.WithLabelValues("ok").Inc()
		}
		return err
	}); err != nil {
		return nil, err
	}

	var auth *crypto.AccountAuthenticator
	if err := s.stage(ctx, stageAssemble, func(context.Context) error {
		var err error
		auth, err = AssembleAuthenticator(norm.publicKey, sig)
		return err
	}); err != nil {
		return nil, err
	}

	var pending *chain.PendingTransaction
	if err := s.stage(ctx, stageSubmit, func(ctx context.Context) error {
		var err error
		pending, err = s.chain.SubmitTransaction(ctx, rawTx, auth)
		return err
	}); err != nil {
		return nil, err
	}

	hash := pending.Hash
	span.SetAttributes(attribute.String("paypost.hash", hash))
	metrics.TransactionsSubmitted.WithLabelValues(req.Payload.Function).Inc()
	log.Info().Str("hash", hash).Str("sender", norm.sender.String()).Str("function", req.Payload.Function).Msg("Transaction submitted")

	s.recordSubmitted(ctx, &Record{
		Hash:     hash,
		Sender:   norm.sender,
		WalletID: norm.walletID,
		Function: req.Payload.Function,
		Status:   RecordStatusPending,
	})

	var executed *chain.ExecutedTransaction
	if err := s.stage(ctx, stageConfirm, func(ctx context.Context) error {
		waitCtx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
		defer cancel()

		var err error
		executed, err = s.chain.WaitForTransaction(waitCtx, hash)
		if err != nil && errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
			return errors.Wrapf(ErrConfirmationTimeout, "after %s", s.confirmTimeout)
		}
		return err
	}); err != nil {
		log.Warn().Err(err).Str("hash", hash).Msg("Transaction submitted but not confirmed")
		s.recordOutcome(ctx, hash, RecordStatusUnconfirmed, nil)
		metrics.TransactionsFinalized.WithLabelValues(string(RecordStatusUnconfirmed)).Inc()
		return nil, &SubmittedButUnconfirmedError{Hash: hash, Err: err}
	}

	if !executed.Success {
		log.Warn().Str("hash", hash).Str("vmStatus", executed.VMStatus).Msg("Transaction failed on-chain")
		s.recordOutcome(ctx, hash, RecordStatusFailure, executed)
		metrics.TransactionsFinalized.WithLabelValues(string(RecordStatusFailure)).Inc()
		return nil, &ExecutionFailedError{Hash: hash, VMStatus: executed.VMStatus}
	}

	s.recordOutcome(ctx, hash, RecordStatusSuccess, executed)
	metrics.TransactionsFinalized.WithLabelValues(string(RecordStatusSuccess)).Inc()
	log.Info().Str("hash", hash).Uint64("version", executed.Version).Uint64("gasUsed", executed.GasUsed).Msg("Transaction confirmed")

	return &Result{
		TransactionHash: hash,
		Transaction:     executed,
	}, nil
}

func (s *service) GetTransaction(ctx context.Context, hash string) (*chain.TransactionStatus, error) {
	status, err := s.chain.TransactionByHash(ctx, hash)
	if err != nil {
		return nil, err
	}

	if executed := status.Executed; executed != nil {
		outcome := RecordStatusFailure
		if executed.Success {
			outcome = RecordStatusSuccess
		}
		s.recordOutcome(ctx, hash, outcome, executed)
	}

	return status, nil
}

func (s *service) stage(ctx context.Context, name string, f func(ctx context.Context) error) error {
	ctx, span := s.tracer.Start(ctx, "txn."+name)
	defer span.End()

	start := time.Now()
	err := f(ctx)
	metrics.PipelineStageLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.PipelineStageErrors.WithLabelValues(name).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		util.LogFromContext(ctx).Debug().Err(err).Str("stage", name).Msg("Pipeline stage failed")
	}

	return err
}

// Record writes must not be lost to a client disconnect once the transaction is on-chain.
func (s *service) recordSubmitted(ctx context.Context, rec *Record) {
	if err := s.recorder.RecordSubmitted(context.WithoutCancel(ctx), rec); err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("hash", rec.Hash).Msg("Failed to record submitted transaction")
	}
}

func (s *service) recordOutcome(ctx context.Context, hash string, status RecordStatus, executed *chain.ExecutedTransaction) {
	if err := s.recorder.RecordOutcome(context.WithoutCancel(ctx), hash, status, executed); err != nil {
		util.LogFromContext(ctx).Error().Err(err).Str("hash", hash).Msg("Failed to record transaction outcome")
	}
}
