package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-api/internal/email"
	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	apperrors "github.com/jwalitptl/booking-api/pkg/errors"
)

type Service struct {
	repo     repository.BookingRepository
	emailSvc email.Service
}

func NewService(repo repository.BookingRepository, emailSvc email.Service) *Service {
	return &Service{
		repo:     repo,
		emailSvc: emailSvc,
	}
}

// CreateBooking inserts a booking unless one already exists for the
// same (treatment, date, patient). The duplicate check deliberately
// ignores the requested slot, so a second request for the same triple
// is rejected even when it names a different slot. Returns the stored
// booking and whether this call created it.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, bool, error) {
	booking := &model.Booking{
		Treatment:   req.Treatment,
		Date:        req.Date,
		Patient:     req.Patient,
		PatientName: req.PatientName,
		Phone:       req.Phone,
		Slot:        req.Slot,
		Price:       req.Price,
	}

	err := s.repo.Create(ctx, booking)
	if err == nil {
		s.sendConfirmation(booking)
		return booking, true, nil
	}

	if errors.Is(err, repository.ErrDuplicateBooking) {
		existing, getErr := s.repo.GetByKey(ctx, req.Treatment, req.Date, req.Patient)
		if getErr != nil {
			return nil, false, fmt.Errorf("failed to load existing booking: %w", getErr)
		}
		return existing, false, nil
	}

	return nil, false, fmt.Errorf("failed to create booking: %w", err)
}

// ListForPatient returns the bookings of the given patient. The caller
// identity must match the requested patient email.
func (s *Service) ListForPatient(ctx context.Context, patient, callerEmail string) ([]*model.Booking, error) {
	if patient != callerEmail {
		return nil, apperrors.Forbidden("forbidden access")
	}

	bookings, err := s.repo.ListForPatient(ctx, patient)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// MarkPaid records the payment and flags the booking paid. Both writes
// happen in one store transaction.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (*model.Booking, error) {
	booking, err := s.repo.MarkPaid(ctx, id, transactionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, fmt.Errorf("failed to mark booking paid: %w", err)
	}
	return booking, nil
}

func (s *Service) sendConfirmation(booking *model.Booking) {
	if s.emailSvc == nil {
		return
	}
	if err := s.emailSvc.SendBookingConfirmation(booking); err != nil {
		log.Warn().Err(err).
			Str("patient", booking.Patient).
			Str("treatment", booking.Treatment).
			Msg("failed to send booking confirmation")
	}
}
