package payment

import "time"

type SubmitPaymentRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email" binding:"omitempty,email"`
	PlanType   string `json:"plan_type" binding:"required,oneof=basic premium enterprise"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	ReceiptURL string `json:"receipt_url" binding:"required"`
}

type DecidePaymentRequest struct {
	Outcome    string `json:"outcome" binding:"required,oneof=approved rejected"`
	AdminNotes string `json:"admin_notes"`
}

type ReceiptResponse struct {
	ID               string  `json:"id"`
	UserID           string  `json:"user_id"`
	UserName         string  `json:"user_name,omitempty"`
	UserEmail        string  `json:"user_email,omitempty"`
	PlanType         string  `json:"plan_type"`
	Amount           int64   `json:"amount"`
	ReceiptReference string  `json:"receipt_reference"`
	Status           string  `json:"status"`
	AdminNotes       string  `json:"admin_notes,omitempty"`
	CreatedAt        string  `json:"created_at"`
	DecidedAt        *string `json:"decided_at,omitempty"`
}

func mapToResponse(r Receipt) ReceiptResponse {
	resp := ReceiptResponse{
		ID:               r.ID.String(),
		UserID:           r.UserID,
		UserName:         r.UserName,
		UserEmail:        r.UserEmail,
		PlanType:         r.PlanType,
		Amount:           r.Amount,
		ReceiptReference: r.ReceiptReference,
		Status:           r.Status,
		AdminNotes:       r.AdminNotes,
		CreatedAt:        r.CreatedAt.Format(time.RFC3339),
	}
	if r.DecidedAt != nil {
		v := r.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(receipts []Receipt) []ReceiptResponse {
	res := make([]ReceiptResponse, len(receipts))
	for i, r := range receipts {
		res[i] = mapToResponse(r)
	}
	return res
}
