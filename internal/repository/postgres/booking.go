package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

const pgUniqueViolation = "23505"

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (
			id, treatment, appointment_date, patient_email, patient_name,
			phone, slot, price, paid, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		booking.ID,
		booking.Treatment,
		booking.Date,
		booking.Patient,
		booking.PatientName,
		booking.Phone,
		booking.Slot,
		booking.Price,
		booking.Paid,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return repository.ErrDuplicateBooking
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `
		SELECT id, treatment, appointment_date, patient_email, patient_name,
			   phone, slot, price, paid, transaction_id, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, id); err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) GetByKey(ctx context.Context, treatment, date, patient string) (*model.Booking, error) {
	query := `
		SELECT id, treatment, appointment_date, patient_email, patient_name,
			   phone, slot, price, paid, transaction_id, created_at, updated_at
		FROM bookings
		WHERE treatment = $1 AND appointment_date = $2 AND patient_email = $3
	`

	var booking model.Booking
	if err := r.db.GetContext(ctx, &booking, query, treatment, date, patient); err != nil {
		return nil, fmt.Errorf("failed to get booking by key: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) ListForDate(ctx context.Context, date string) ([]*model.Booking, error) {
	query := `
		SELECT id, treatment, appointment_date, patient_email, patient_name,
			   phone, slot, price, paid, transaction_id, created_at, updated_at
		FROM bookings
		WHERE appointment_date = $1
	`

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, date); err != nil {
		return nil, fmt.Errorf("failed to list bookings for date: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ListForPatient(ctx context.Context, email string) ([]*model.Booking, error) {
	query := `
		SELECT id, treatment, appointment_date, patient_email, patient_name,
			   phone, slot, price, paid, transaction_id, created_at, updated_at
		FROM bookings
		WHERE patient_email = $1
		ORDER BY created_at ASC
	`

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, email); err != nil {
		return nil, fmt.Errorf("failed to list bookings for patient: %w", err)
	}
	return bookings, nil
}

// MarkPaid records the payment and flips the booking's paid flag in a
// single transaction, so a payment row never exists without the booking
// reflecting it.
func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (*model.Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var booking model.Booking
	getQuery := `
		SELECT id, treatment, appointment_date, patient_email, patient_name,
			   phone, slot, price, paid, transaction_id, created_at, updated_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`
	if err := tx.GetContext(ctx, &booking, getQuery, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("failed to get booking: %w", err)
		}
		return nil, fmt.Errorf("failed to lock booking: %w", err)
	}

	insertQuery := `
		INSERT INTO payments (id, booking_id, transaction_id, amount, patient_email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		uuid.New(),
		booking.ID,
		transactionID,
		booking.Price,
		booking.Patient,
		time.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	updateQuery := `
		UPDATE bookings
		SET paid = TRUE, transaction_id = $1, updated_at = $2
		WHERE id = $3
	`
	now := time.Now()
	if _, err := tx.ExecContext(ctx, updateQuery, transactionID, now, id); err != nil {
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit payment: %w", err)
	}

	booking.Paid = true
	booking.TransactionID = &transactionID
	booking.UpdatedAt = now
	return &booking, nil
}
