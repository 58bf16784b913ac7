package payment

import (
	"context"
	"strings"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"
	paymenterrors "github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment/errors"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service interface {
	Submit(ctx context.Context, req SubmitPaymentRequest) (ReceiptResponse, error)
	Decide(ctx context.Context, receiptID, outcome, adminNotes string) (ReceiptResponse, error)
	GetPending(ctx context.Context) ([]ReceiptResponse, error)
	QueueStatus(ctx context.Context) QueueStatus
	LoadPending(ctx context.Context) error
}

type service struct {
	queue  *Queue
	repo   Repository
	bus    *eventbus.Bus
	logger *zap.Logger
}

// NewService builds a queue-only service; state lives in memory.
func NewService(queue *Queue, bus *eventbus.Bus, logger ...*zap.Logger) Service {
	return NewServiceWithRepo(queue, nil, bus, logger...)
}

// NewServiceWithRepo additionally writes receipts through to the external
// store.
func NewServiceWithRepo(queue *Queue, repo Repository, bus *eventbus.Bus, logger ...*zap.Logger) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	return &service{queue: queue, repo: repo, bus: bus, logger: l}
}

func validateSubmit(req SubmitPaymentRequest) error {
	if req.Amount <= 0 {
		return paymenterrors.ErrInvalidAmount
	}
	if strings.TrimSpace(req.UserID) == "" {
		return paymenterrors.ErrMissingUserID
	}
	if strings.TrimSpace(req.PlanType) == "" {
		return paymenterrors.ErrMissingPlanType
	}
	if strings.TrimSpace(req.ReceiptURL) == "" {
		return paymenterrors.ErrMissingReceiptReference
	}
	return nil
}

func (s *service) Submit(ctx context.Context, req SubmitPaymentRequest) (ReceiptResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit payment requested",
		zap.String("request_id", rid),
		zap.String("user_id", req.UserID),
		zap.String("plan_type", req.PlanType),
		zap.Int64("amount", req.Amount),
	)

	if err := validateSubmit(req); err != nil {
		s.logger.Warn("submit payment validation failed",
			zap.String("request_id", rid),
			zap.Error(err),
		)
		return ReceiptResponse{}, err
	}

	receipt := Receipt{
		ID:               uuid.New(),
		UserID:           req.UserID,
		UserName:         req.UserName,
		UserEmail:        req.UserEmail,
		PlanType:         req.PlanType,
		Amount:           req.Amount,
		ReceiptReference: req.ReceiptURL,
		Status:           StatusPending,
		CreatedAt:        time.Now().UTC(),
	}

	// Persistence first: a failed store write must not leave a queued
	// receipt or emit a misleading event.
	if s.repo != nil {
		if err := s.repo.Create(ctx, &receipt); err != nil {
			s.logger.Error("submit payment persist failed",
				zap.String("request_id", rid),
				zap.Error(err),
			)
			return ReceiptResponse{}, err
		}
	}

	if err := s.queue.Insert(receipt); err != nil {
		s.logger.Error("submit payment enqueue failed",
			zap.String("receipt_id", receipt.ID.String()),
			zap.Error(err),
		)
		return ReceiptResponse{}, err
	}

	s.bus.Publish(events.New(events.PaymentSubmittedPayload{ReceiptSnapshot: receipt.snapshot()}))

	s.logger.Info("submit payment success",
		zap.String("request_id", rid),
		zap.String("receipt_id", receipt.ID.String()),
		zap.Int64("amount", receipt.Amount),
	)
	return mapToResponse(receipt), nil
}

func (s *service) Decide(ctx context.Context, receiptID, outcome, adminNotes string) (ReceiptResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("decide payment requested",
		zap.String("request_id", rid),
		zap.String("receipt_id", receiptID),
		zap.String("outcome", outcome),
	)

	done := s.queue.TrackDecide()
	defer done()

	id, err := uuid.Parse(receiptID)
	if err != nil {
		return ReceiptResponse{}, paymenterrors.ErrInvalidReceiptID
	}

	var status string
	switch outcome {
	case StatusApproved:
		status = StatusApproved
	case StatusRejected:
		status = StatusRejected
	default:
		return ReceiptResponse{}, paymenterrors.ErrInvalidOutcome
	}

	receipt, err := s.queue.Decide(id, status, adminNotes, time.Now().UTC())
	if err != nil {
		s.logger.Warn("decide payment rejected by queue",
			zap.String("request_id", rid),
			zap.String("receipt_id", receiptID),
			zap.Error(err),
		)
		return ReceiptResponse{}, err
	}

	// The transition is committed; a failed store write is logged, not
	// surfaced, so two admins can never both see success.
	if s.repo != nil {
		if err := s.repo.UpdateDecision(ctx, &receipt); err != nil {
			s.logger.Error("decide payment persist failed",
				zap.String("receipt_id", receiptID),
				zap.Error(err),
			)
		}
	}

	switch status {
	case StatusApproved:
		s.bus.Publish(events.New(events.PaymentApprovedPayload{ReceiptSnapshot: receipt.snapshot()}))
	case StatusRejected:
		s.bus.Publish(events.New(events.PaymentRejectedPayload{ReceiptSnapshot: receipt.snapshot()}))
	}

	s.logger.Info("decide payment success",
		zap.String("request_id", rid),
		zap.String("receipt_id", receiptID),
		zap.String("status", status),
	)
	return mapToResponse(receipt), nil
}

func (s *service) GetPending(ctx context.Context) ([]ReceiptResponse, error) {
	return mapToListResponse(s.queue.Pending()), nil
}

func (s *service) QueueStatus(ctx context.Context) QueueStatus {
	return s.queue.Status()
}

// LoadPending rehydrates the in-memory queue from the external store at
// startup. No events are published: these submissions were announced when
// they first happened.
func (s *service) LoadPending(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	receipts, err := s.repo.FindPending(ctx)
	if err != nil {
		s.logger.Error("load pending receipts failed", zap.Error(err))
		return err
	}

	for _, r := range receipts {
		if err := s.queue.Insert(r); err != nil {
			s.logger.Warn("skip duplicate receipt during rehydration",
				zap.String("receipt_id", r.ID.String()),
			)
		}
	}

	s.logger.Info("pending receipts rehydrated", zap.Int("count", len(receipts)))
	return nil
}
