package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
)

// ErrDuplicateBooking is returned when an insert hits the
// (treatment, date, patient) uniqueness constraint.
var ErrDuplicateBooking = errors.New("booking already exists")

type ServiceRepository interface {
	List(ctx context.Context) ([]*model.Service, error)
	ListSummaries(ctx context.Context) ([]*model.ServiceSummary, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	GetByKey(ctx context.Context, treatment, date, patient string) (*model.Booking, error)
	ListForDate(ctx context.Context, date string) ([]*model.Booking, error)
	ListForPatient(ctx context.Context, email string) ([]*model.Booking, error)
	MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (*model.Booking, error)
}

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]*model.User, error)
	SetRole(ctx context.Context, email string, role model.Role) error
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	List(ctx context.Context) ([]*model.Doctor, error)
	DeleteByEmail(ctx context.Context, email string) error
}
