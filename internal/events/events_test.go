package events_test

import (
	"testing"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestKind_Valid(t *testing.T) {
	assert.True(t, events.KindPaymentSubmitted.Valid())
	assert.True(t, events.KindSystemNotification.Valid())
	assert.False(t, events.Kind("payment_refunded").Valid())
	assert.False(t, events.Kind("").Valid())
}

func TestKind_TopicRouting(t *testing.T) {
	assert.Equal(t, events.PaymentLifecycleTopic, events.KindPaymentSubmitted.Topic())
	assert.Equal(t, events.PaymentLifecycleTopic, events.KindPaymentApproved.Topic())
	assert.Equal(t, events.PaymentLifecycleTopic, events.KindPaymentRejected.Topic())
	assert.Equal(t, events.EmployeeLifecycleTopic, events.KindEmployeeCreated.Topic())
	assert.Equal(t, events.EmployeeLifecycleTopic, events.KindEmployeeDeleted.Topic())
	assert.Equal(t, events.SystemNoticeTopic, events.KindSystemNotification.Topic())
}

func TestNew_DerivesKindFromPayload(t *testing.T) {
	e := events.New(events.PaymentSubmittedPayload{
		ReceiptSnapshot: events.ReceiptSnapshot{ReceiptID: "rcpt-1"},
	})

	assert.Equal(t, events.KindPaymentSubmitted, e.Kind)
	assert.Equal(t, "rcpt-1", e.Payload.AggregateID())
	// The bus owns the timestamp.
	assert.True(t, e.Timestamp.IsZero())
}
