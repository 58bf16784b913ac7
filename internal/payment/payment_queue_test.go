package payment_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment"
	paymenterrors "github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func pendingReceipt(userID string, createdAt time.Time) payment.Receipt {
	return payment.Receipt{
		ID:               uuid.New(),
		UserID:           userID,
		PlanType:         "basic",
		Amount:           150,
		ReceiptReference: "https://cdn.example.com/receipts/" + userID + ".png",
		Status:           payment.StatusPending,
		CreatedAt:        createdAt,
	}
}

func TestQueue_InsertRejectsDuplicateID(t *testing.T) {
	q := payment.NewQueue()
	r := pendingReceipt("user-1", time.Now().UTC())

	assert.NoError(t, q.Insert(r))
	assert.Error(t, q.Insert(r))
	assert.Equal(t, 1, q.Status().QueueLength)
}

func TestQueue_DecideUnknownReceipt(t *testing.T) {
	q := payment.NewQueue()

	_, err := q.Decide(uuid.New(), payment.StatusApproved, "", time.Now().UTC())
	assert.ErrorIs(t, err, paymenterrors.ErrReceiptNotFound)
}

func TestQueue_DecideExactlyOnce(t *testing.T) {
	q := payment.NewQueue()
	r := pendingReceipt("user-1", time.Now().UTC())
	assert.NoError(t, q.Insert(r))

	decided, err := q.Decide(r.ID, payment.StatusApproved, "looks good", time.Now().UTC())
	assert.NoError(t, err)
	assert.Equal(t, payment.StatusApproved, decided.Status)
	assert.Equal(t, "looks good", decided.AdminNotes)
	assert.NotNil(t, decided.DecidedAt)

	_, err = q.Decide(r.ID, payment.StatusRejected, "changed my mind", time.Now().UTC())
	assert.ErrorIs(t, err, paymenterrors.ErrAlreadyDecided)

	// The first decision stands.
	stored, ok := q.Get(r.ID)
	assert.True(t, ok)
	assert.Equal(t, payment.StatusApproved, stored.Status)
	assert.Equal(t, "looks good", stored.AdminNotes)
}

func TestQueue_ConcurrentDecideSingleWinner(t *testing.T) {
	q := payment.NewQueue()
	r := pendingReceipt("user-1", time.Now().UTC())
	assert.NoError(t, q.Insert(r))

	const admins = 16
	var wg sync.WaitGroup
	errs := make([]error, admins)

	for i := 0; i < admins; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			status := payment.StatusApproved
			if i%2 == 1 {
				status = payment.StatusRejected
			}
			_, errs[i] = q.Decide(r.ID, status, "", time.Now().UTC())
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, paymenterrors.ErrAlreadyDecided)
		}
	}
	assert.Equal(t, 1, wins)

	stored, ok := q.Get(r.ID)
	assert.True(t, ok)
	assert.True(t, payment.IsTerminal(stored.Status))
}

func TestQueue_PendingKeepsSubmissionOrder(t *testing.T) {
	q := payment.NewQueue()
	base := time.Now().UTC()

	var ids []uuid.UUID
	for i := 0; i < 5; i++ {
		r := pendingReceipt(fmt.Sprintf("user-%d", i), base.Add(time.Duration(i)*time.Second))
		ids = append(ids, r.ID)
		assert.NoError(t, q.Insert(r))
	}

	_, err := q.Decide(ids[2], payment.StatusRejected, "", time.Now().UTC())
	assert.NoError(t, err)

	pending := q.Pending()
	assert.Len(t, pending, 4)
	assert.Equal(t, ids[0], pending[0].ID)
	assert.Equal(t, ids[1], pending[1].ID)
	assert.Equal(t, ids[3], pending[2].ID)
	assert.Equal(t, ids[4], pending[3].ID)

	// Queue length always matches the pending view.
	assert.Equal(t, len(pending), q.Status().QueueLength)

	all := q.All()
	assert.Len(t, all, 5)
}

func TestQueue_TrackDecideCountsInFlight(t *testing.T) {
	q := payment.NewQueue()

	done1 := q.TrackDecide()
	done2 := q.TrackDecide()
	assert.Equal(t, int64(2), q.Status().CurrentProcessing)

	done1()
	assert.Equal(t, int64(1), q.Status().CurrentProcessing)
	done2()
	assert.Equal(t, int64(0), q.Status().CurrentProcessing)
}
