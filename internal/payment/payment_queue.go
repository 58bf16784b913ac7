package payment

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	paymenterrors "github.com/SekiryuuteiDxD/keyra1-sub001/internal/payment/errors"

	"github.com/google/uuid"
)

// QueueStatus is the operational snapshot exposed to admin dashboards.
// CurrentProcessing is diagnostic only: a sustained non-zero value means a
// decide operation is stuck, it carries no correctness weight.
type QueueStatus struct {
	QueueLength       int   `json:"queueLength"`
	CurrentProcessing int64 `json:"currentProcessing"`
}

// Queue exclusively owns receipt state in this process. Decided receipts
// stay in the map for historical queries but leave the pending view.
// All transitions happen as a check-and-set under the queue lock, so at
// most one decision is ever accepted per receipt. The lock is never held
// while events fan out; publishing is the service's job.
type Queue struct {
	mu       sync.Mutex
	receipts map[uuid.UUID]*Receipt
	order    []uuid.UUID // submission order

	processing atomic.Int64
}

func NewQueue() *Queue {
	return &Queue{
		receipts: make(map[uuid.UUID]*Receipt),
	}
}

// Insert adds a newly submitted receipt. Duplicate ids are rejected so a
// retried submission cannot shadow an existing receipt.
func (q *Queue) Insert(r Receipt) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if _, ok := q.receipts[r.ID]; ok {
		return paymenterrors.ErrAlreadyDecided
	}
	stored := r
	q.receipts[r.ID] = &stored
	q.order = append(q.order, r.ID)
	return nil
}

// Get returns a copy of the receipt, if present.
func (q *Queue) Get(id uuid.UUID) (Receipt, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	r, ok := q.receipts[id]
	if !ok {
		return Receipt{}, false
	}
	return *r, true
}

// Decide atomically transitions a pending receipt to the given terminal
// status. The status check and the write happen under one critical
// section: of two concurrent calls for the same receipt exactly one
// succeeds, the other gets ErrAlreadyDecided.
func (q *Queue) Decide(id uuid.UUID, status, adminNotes string, at time.Time) (Receipt, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	r, ok := q.receipts[id]
	if !ok {
		return Receipt{}, paymenterrors.ErrReceiptNotFound
	}
	if IsTerminal(r.Status) {
		return Receipt{}, paymenterrors.ErrAlreadyDecided
	}

	r.Status = status
	r.AdminNotes = adminNotes
	decidedAt := at
	r.DecidedAt = &decidedAt

	return *r, nil
}

// Pending returns a snapshot of all pending receipts in submission order.
func (q *Queue) Pending() []Receipt {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Receipt, 0, len(q.order))
	for _, id := range q.order {
		if r, ok := q.receipts[id]; ok && r.Status == StatusPending {
			out = append(out, *r)
		}
	}
	return out
}

// All returns every receipt, decided ones included, in submission order.
func (q *Queue) All() []Receipt {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := make([]Receipt, 0, len(q.order))
	for _, id := range q.order {
		if r, ok := q.receipts[id]; ok {
			out = append(out, *r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// TrackDecide marks a decide operation in flight and returns the matching
// release func.
func (q *Queue) TrackDecide() func() {
	q.processing.Add(1)
	return func() { q.processing.Add(-1) }
}

func (q *Queue) Status() QueueStatus {
	q.mu.Lock()
	pending := 0
	for _, r := range q.receipts {
		if r.Status == StatusPending {
			pending++
		}
	}
	q.mu.Unlock()

	return QueueStatus{
		QueueLength:       pending,
		CurrentProcessing: q.processing.Load(),
	}
}
