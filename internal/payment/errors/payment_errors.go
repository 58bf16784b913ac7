package paymenterrors

import (
	"net/http"

	"github.com/SekiryuuteiDxD/keyra1-sub001/internal/shared/apperror"
)

var (
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"amount must be greater than zero",
		http.StatusBadRequest,
	)
	ErrMissingUserID = apperror.New(
		apperror.CodeInvalidInput,
		"user_id is required",
		http.StatusBadRequest,
	)
	ErrMissingPlanType = apperror.New(
		apperror.CodeInvalidInput,
		"plan_type is required",
		http.StatusBadRequest,
	)
	ErrMissingReceiptReference = apperror.New(
		apperror.CodeInvalidInput,
		"receipt_url is required",
		http.StatusBadRequest,
	)
	ErrInvalidReceiptID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid receipt id",
		http.StatusBadRequest,
	)
	ErrInvalidOutcome = apperror.New(
		apperror.CodeInvalidInput,
		"outcome must be approved or rejected",
		http.StatusBadRequest,
	)
	ErrReceiptNotFound = apperror.New(
		apperror.CodeNotFound,
		"payment receipt not found",
		http.StatusNotFound,
	)
	// ErrAlreadyDecided is the expected concurrent-admin race, not an
	// exceptional condition; the UI shows it as "already reviewed".
	ErrAlreadyDecided = apperror.New(
		apperror.CodeAlreadyDecided,
		"this payment has already been reviewed",
		http.StatusConflict,
	)
)
