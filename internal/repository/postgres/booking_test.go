package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func bookingColumns() []string {
	return []string{
		"id", "treatment", "appointment_date", "patient_email", "patient_name",
		"phone", "slot", "price", "paid", "transaction_id", "created_at", "updated_at",
	}
}

func TestBookingCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))

	booking := &model.Booking{
		Treatment: "Teeth Cleaning",
		Date:      "May 11, 2022",
		Patient:   "a@x.com",
		Slot:      "10:00",
		Price:     80,
	}
	err := repo.Create(context.Background(), booking)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, booking.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingCreateUniqueViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	mock.ExpectExec("INSERT INTO bookings").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "bookings_treatment_date_patient_key"})

	err := repo.Create(context.Background(), &model.Booking{
		Treatment: "Teeth Cleaning",
		Date:      "May 11, 2022",
		Patient:   "a@x.com",
		Slot:      "10:00",
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateBooking)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingGetNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	id := uuid.New()
	mock.ExpectQuery("SELECT .+ FROM bookings").
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Get(context.Background(), id)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingMarkPaidTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(id, "Teeth Cleaning", "May 11, 2022", "a@x.com", nil,
			nil, "10:00", 80.0, false, nil, now, now)

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT .+ FROM bookings.+FOR UPDATE").
		WithArgs(id).
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO payments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bookings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	booking, err := repo.MarkPaid(context.Background(), id, "tx_123")
	require.NoError(t, err)
	assert.True(t, booking.Paid)
	require.NotNil(t, booking.TransactionID)
	assert.Equal(t, "tx_123", *booking.TransactionID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingMarkPaidRollsBackOnPaymentFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewBookingRepository(db)

	id := uuid.New()
	now := time.Now()
	rows := sqlmock.NewRows(bookingColumns()).
		AddRow(id, "Teeth Cleaning", "May 11, 2022", "a@x.com", nil,
			nil, "10:00", 80.0, false, nil, now, now)

	mock.ExpectBegin()
	mock.ExpectQuery("(?s)SELECT .+ FROM bookings.+FOR UPDATE").
		WithArgs(id).
		WillReturnRows(rows)
	mock.ExpectExec("INSERT INTO payments").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	_, err := repo.MarkPaid(context.Background(), id, "tx_123")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
