package events

import "time"

// Kind is the closed enumeration of event types the bus carries.
type Kind string

const (
	KindPaymentSubmitted   Kind = "payment_submitted"
	KindPaymentApproved    Kind = "payment_approved"
	KindPaymentRejected    Kind = "payment_rejected"
	KindEmployeeCreated    Kind = "employee_created"
	KindEmployeeUpdated    Kind = "employee_updated"
	KindEmployeeDeleted    Kind = "employee_deleted"
	KindSystemNotification Kind = "system_notification"
)

// Topics used by the optional Kafka relay, one per event family.
const (
	PaymentLifecycleTopic  = "qr.payment.lifecycle.v1"
	EmployeeLifecycleTopic = "qr.employee.lifecycle.v1"
	SystemNoticeTopic      = "qr.system.notice.v1"
)

func (k Kind) Valid() bool {
	switch k {
	case KindPaymentSubmitted, KindPaymentApproved, KindPaymentRejected,
		KindEmployeeCreated, KindEmployeeUpdated, KindEmployeeDeleted,
		KindSystemNotification:
		return true
	}
	return false
}

// Topic maps an event kind to its relay topic.
func (k Kind) Topic() string {
	switch k {
	case KindPaymentSubmitted, KindPaymentApproved, KindPaymentRejected:
		return PaymentLifecycleTopic
	case KindEmployeeCreated, KindEmployeeUpdated, KindEmployeeDeleted:
		return EmployeeLifecycleTopic
	default:
		return SystemNoticeTopic
	}
}

// Payload is the tagged-variant side of an Event: one concrete type per
// kind, so consumers can type-switch exhaustively.
type Payload interface {
	EventKind() Kind
	AggregateID() string
}

// Event is an immutable record delivered to every subscriber. Timestamp is
// stamped by the bus at publish time; events are never mutated after that.
type Event struct {
	Kind      Kind      `json:"kind"`
	Payload   Payload   `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

func New(p Payload) Event {
	return Event{Kind: p.EventKind(), Payload: p}
}

// ReceiptSnapshot is the full payment receipt state carried by every
// payment event.
type ReceiptSnapshot struct {
	ReceiptID        string     `json:"receipt_id"`
	UserID           string     `json:"user_id"`
	UserName         string     `json:"user_name,omitempty"`
	UserEmail        string     `json:"user_email,omitempty"`
	PlanType         string     `json:"plan_type"`
	Amount           int64      `json:"amount"`
	ReceiptReference string     `json:"receipt_reference"`
	Status           string     `json:"status"`
	AdminNotes       string     `json:"admin_notes,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	DecidedAt        *time.Time `json:"decided_at,omitempty"`
}

type PaymentSubmittedPayload struct{ ReceiptSnapshot }

func (PaymentSubmittedPayload) EventKind() Kind { return KindPaymentSubmitted }

type PaymentApprovedPayload struct{ ReceiptSnapshot }

func (PaymentApprovedPayload) EventKind() Kind { return KindPaymentApproved }

type PaymentRejectedPayload struct{ ReceiptSnapshot }

func (PaymentRejectedPayload) EventKind() Kind { return KindPaymentRejected }

func (r ReceiptSnapshot) AggregateID() string { return r.ReceiptID }

// EmployeeSnapshot is the employee state carried by lifecycle events.
type EmployeeSnapshot struct {
	EmployeeID  string `json:"employee_id"`
	CompanyID   string `json:"company_id"`
	FullName    string `json:"full_name,omitempty"`
	Email       string `json:"email,omitempty"`
	BadgeNumber string `json:"badge_number,omitempty"`
}

type EmployeeCreatedPayload struct{ EmployeeSnapshot }

func (EmployeeCreatedPayload) EventKind() Kind { return KindEmployeeCreated }

type EmployeeUpdatedPayload struct{ EmployeeSnapshot }

func (EmployeeUpdatedPayload) EventKind() Kind { return KindEmployeeUpdated }

type EmployeeDeletedPayload struct{ EmployeeSnapshot }

func (EmployeeDeletedPayload) EventKind() Kind { return KindEmployeeDeleted }

func (e EmployeeSnapshot) AggregateID() string { return e.EmployeeID }

// NoticePayload carries a generic operator-issued system notice.
type NoticePayload struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

func (NoticePayload) EventKind() Kind { return KindSystemNotification }
func (NoticePayload) AggregateID() string { return "" }
