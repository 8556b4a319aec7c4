package model

import (
	"time"

	"github.com/google/uuid"
)

// Payment is an append-only record of a completed charge. Rows are
// written in the same transaction that marks the booking paid.
type Payment struct {
	ID            uuid.UUID `db:"id" json:"id"`
	BookingID     uuid.UUID `db:"booking_id" json:"booking_id"`
	TransactionID string    `db:"transaction_id" json:"transactionId"`
	Amount        float64   `db:"amount" json:"amount"`
	PatientEmail  string    `db:"patient_email" json:"patient"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CreatePaymentIntentRequest represents a charge-intent request
type CreatePaymentIntentRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}
