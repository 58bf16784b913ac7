package payment_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/eventbus"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"
	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment"
	paymenterrors "github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakePaymentRepository struct {
	createFn         func(ctx context.Context, r *payment.Receipt) error
	updateDecisionFn func(ctx context.Context, r *payment.Receipt) error
	findPendingFn    func(ctx context.Context) ([]payment.Receipt, error)
}

func (f *fakePaymentRepository) Create(ctx context.Context, r *payment.Receipt) error {
	if f.createFn != nil {
		return f.createFn(ctx, r)
	}
	return nil
}

func (f *fakePaymentRepository) UpdateDecision(ctx context.Context, r *payment.Receipt) error {
	if f.updateDecisionFn != nil {
		return f.updateDecisionFn(ctx, r)
	}
	return nil
}

func (f *fakePaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Receipt, error) {
	return nil, errors.New("not implemented")
}

func (f *fakePaymentRepository) FindPending(ctx context.Context) ([]payment.Receipt, error) {
	if f.findPendingFn != nil {
		return f.findPendingFn(ctx)
	}
	return nil, nil
}

// capture subscribes to the bus and records every event it sees.
func capture(bus *eventbus.Bus) *[]events.Event {
	var got []events.Event
	bus.Subscribe(func(e events.Event) {
		got = append(got, e)
	})
	return &got
}

func validSubmit() payment.SubmitPaymentRequest {
	return payment.SubmitPaymentRequest{
		UserID:     "user-42",
		UserName:   "Rani Wijaya",
		UserEmail:  "rani@example.com",
		PlanType:   "premium",
		Amount:     999,
		ReceiptURL: "https://cdn.example.com/receipts/42.png",
	}
}

func TestService_SubmitPublishesSubmittedEvent(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	got := capture(bus)
	svc := payment.NewService(payment.NewQueue(), bus, zap.NewNop())

	resp, err := svc.Submit(context.Background(), validSubmit())

	assert.NoError(t, err)
	assert.Equal(t, payment.StatusPending, resp.Status)
	assert.Equal(t, "premium", resp.PlanType)
	assert.Equal(t, int64(999), resp.Amount)

	assert.Len(t, *got, 1)
	e := (*got)[0]
	assert.Equal(t, events.KindPaymentSubmitted, e.Kind)
	assert.False(t, e.Timestamp.IsZero())
	snap := e.Payload.(events.PaymentSubmittedPayload)
	assert.Equal(t, resp.ID, snap.ReceiptID)
	assert.Equal(t, int64(999), snap.Amount)
}

func TestService_SubmitValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*payment.SubmitPaymentRequest)
		wantErr error
	}{
		{"zero amount", func(r *payment.SubmitPaymentRequest) { r.Amount = 0 }, paymenterrors.ErrInvalidAmount},
		{"negative amount", func(r *payment.SubmitPaymentRequest) { r.Amount = -10 }, paymenterrors.ErrInvalidAmount},
		{"missing user id", func(r *payment.SubmitPaymentRequest) { r.UserID = "  " }, paymenterrors.ErrMissingUserID},
		{"missing plan type", func(r *payment.SubmitPaymentRequest) { r.PlanType = "" }, paymenterrors.ErrMissingPlanType},
		{"missing receipt url", func(r *payment.SubmitPaymentRequest) { r.ReceiptURL = "" }, paymenterrors.ErrMissingReceiptReference},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := eventbus.New(zap.NewNop())
			got := capture(bus)
			queue := payment.NewQueue()
			svc := payment.NewService(queue, bus, zap.NewNop())

			req := validSubmit()
			tt.mutate(&req)

			_, err := svc.Submit(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			// Rejected submissions leave no trace: no receipt, no event.
			assert.Equal(t, 0, queue.Status().QueueLength)
			assert.Empty(t, *got)
		})
	}
}

func TestService_SubmitPersistFailurePublishesNothing(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	got := capture(bus)
	queue := payment.NewQueue()
	repo := &fakePaymentRepository{
		createFn: func(ctx context.Context, r *payment.Receipt) error {
			return errors.New("connection refused")
		},
	}
	svc := payment.NewServiceWithRepo(queue, repo, bus, zap.NewNop())

	_, err := svc.Submit(context.Background(), validSubmit())

	assert.Error(t, err)
	assert.Equal(t, 0, queue.Status().QueueLength)
	assert.Empty(t, *got)
}

func TestService_DecideApproveThenSecondDecideFails(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	got := capture(bus)
	queue := payment.NewQueue()
	svc := payment.NewService(queue, bus, zap.NewNop())

	submitted, err := svc.Submit(context.Background(), validSubmit())
	assert.NoError(t, err)

	decided, err := svc.Decide(context.Background(), submitted.ID, payment.StatusApproved, "verified transfer")
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusApproved, decided.Status)
	assert.Equal(t, "verified transfer", decided.AdminNotes)
	assert.NotNil(t, decided.DecidedAt)

	_, err = svc.Decide(context.Background(), submitted.ID, payment.StatusRejected, "")
	assert.ErrorIs(t, err, paymenterrors.ErrAlreadyDecided)

	// Exactly one submitted and one approved event, nothing else.
	assert.Len(t, *got, 2)
	assert.Equal(t, events.KindPaymentSubmitted, (*got)[0].Kind)
	assert.Equal(t, events.KindPaymentApproved, (*got)[1].Kind)
	snap := (*got)[1].Payload.(events.PaymentApprovedPayload)
	assert.Equal(t, payment.StatusApproved, snap.Status)
	assert.Equal(t, "verified transfer", snap.AdminNotes)
}

func TestService_DecideRejectedPublishesRejectedEvent(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	got := capture(bus)
	svc := payment.NewService(payment.NewQueue(), bus, zap.NewNop())

	submitted, err := svc.Submit(context.Background(), validSubmit())
	assert.NoError(t, err)

	decided, err := svc.Decide(context.Background(), submitted.ID, payment.StatusRejected, "blurry screenshot")
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusRejected, decided.Status)

	assert.Equal(t, events.KindPaymentRejected, (*got)[1].Kind)
}

func TestService_DecideInvalidInput(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	svc := payment.NewService(payment.NewQueue(), bus, zap.NewNop())

	_, err := svc.Decide(context.Background(), "not-a-uuid", payment.StatusApproved, "")
	assert.ErrorIs(t, err, paymenterrors.ErrInvalidReceiptID)

	_, err = svc.Decide(context.Background(), uuid.NewString(), "escalated", "")
	assert.ErrorIs(t, err, paymenterrors.ErrInvalidOutcome)

	_, err = svc.Decide(context.Background(), uuid.NewString(), payment.StatusApproved, "")
	assert.ErrorIs(t, err, paymenterrors.ErrReceiptNotFound)
}

func TestService_DecidePersistFailureIsNotSurfaced(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	got := capture(bus)
	queue := payment.NewQueue()
	repo := &fakePaymentRepository{
		updateDecisionFn: func(ctx context.Context, r *payment.Receipt) error {
			return errors.New("connection reset")
		},
	}
	svc := payment.NewServiceWithRepo(queue, repo, bus, zap.NewNop())

	submitted, err := svc.Submit(context.Background(), validSubmit())
	assert.NoError(t, err)

	// The in-memory transition is the commit point; the store write is
	// best-effort.
	decided, err := svc.Decide(context.Background(), submitted.ID, payment.StatusApproved, "")
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusApproved, decided.Status)
	assert.Equal(t, events.KindPaymentApproved, (*got)[1].Kind)
}

func TestService_GetPendingMatchesQueueLength(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	svc := payment.NewService(payment.NewQueue(), bus, zap.NewNop())

	var ids []string
	for i := 0; i < 3; i++ {
		req := validSubmit()
		resp, err := svc.Submit(context.Background(), req)
		assert.NoError(t, err)
		ids = append(ids, resp.ID)
	}

	_, err := svc.Decide(context.Background(), ids[0], payment.StatusApproved, "")
	assert.NoError(t, err)

	pending, err := svc.GetPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Equal(t, ids[1], pending[0].ID)
	assert.Equal(t, ids[2], pending[1].ID)

	status := svc.QueueStatus(context.Background())
	assert.Equal(t, len(pending), status.QueueLength)
	assert.Equal(t, int64(0), status.CurrentProcessing)
}

func TestService_LoadPendingRehydratesWithoutEvents(t *testing.T) {
	bus := eventbus.New(zap.NewNop())
	got := capture(bus)
	queue := payment.NewQueue()

	stored := []payment.Receipt{
		pendingReceipt("user-1", time.Now().UTC().Add(-2*time.Hour)),
		pendingReceipt("user-2", time.Now().UTC().Add(-time.Hour)),
	}
	repo := &fakePaymentRepository{
		findPendingFn: func(ctx context.Context) ([]payment.Receipt, error) {
			return stored, nil
		},
	}
	svc := payment.NewServiceWithRepo(queue, repo, bus, zap.NewNop())

	assert.NoError(t, svc.LoadPending(context.Background()))

	pending, err := svc.GetPending(context.Background())
	assert.NoError(t, err)
	assert.Len(t, pending, 2)
	assert.Equal(t, stored[0].ID.String(), pending[0].ID)

	// Rehydration replays nothing onto the bus.
	assert.Empty(t, *got)
}
