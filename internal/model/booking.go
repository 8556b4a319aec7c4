package model

// Booking records a patient's claim on one slot of a treatment for a
// given date. At most one booking exists per (treatment, date, patient);
// the slot is deliberately not part of that key.
type Booking struct {
	Base
	Treatment     string  `db:"treatment" json:"treatment"`
	Date          string  `db:"appointment_date" json:"date"`
	Patient       string  `db:"patient_email" json:"patient"`
	PatientName   *string `db:"patient_name" json:"patientName,omitempty"`
	Phone         *string `db:"phone" json:"phone,omitempty"`
	Slot          string  `db:"slot" json:"slot"`
	Price         float64 `db:"price" json:"price"`
	Paid          bool    `db:"paid" json:"paid"`
	TransactionID *string `db:"transaction_id" json:"transactionId,omitempty"`
}

// CreateBookingRequest represents booking creation parameters
type CreateBookingRequest struct {
	Treatment   string  `json:"treatment" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	Patient     string  `json:"patient" binding:"required,email"`
	PatientName *string `json:"patientName"`
	Phone       *string `json:"phone"`
	Slot        string  `json:"slot" binding:"required"`
	Price       float64 `json:"price" binding:"omitempty,gte=0"`
}

// MarkPaidRequest carries the processor transaction reference recorded
// once a payment is confirmed client-side.
type MarkPaidRequest struct {
	TransactionID string `json:"transactionId" binding:"required"`
}
