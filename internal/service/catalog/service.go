package catalog

import (
	"context"
	"fmt"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

// DefaultDate is the fallback used when no date query is supplied.
// Kept for compatibility with existing clients; callers should always
// pass an explicit date.
const DefaultDate = "May 11, 2022"

type Service struct {
	serviceRepo repository.ServiceRepository
	bookingRepo repository.BookingRepository
}

func NewService(serviceRepo repository.ServiceRepository, bookingRepo repository.BookingRepository) *Service {
	return &Service{
		serviceRepo: serviceRepo,
		bookingRepo: bookingRepo,
	}
}

// ListServices returns the treatment catalog without slot lists.
func (s *Service) ListServices(ctx context.Context) ([]*model.ServiceSummary, error) {
	services, err := s.serviceRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// GetAvailability narrows each service's slot list to the slots still
// open on the given date: full slots minus the slots of that date's
// bookings whose treatment matches the service name. Order is preserved
// and a fully booked service keeps an empty, non-nil list.
func (s *Service) GetAvailability(ctx context.Context, date string) ([]*model.Service, error) {
	if date == "" {
		date = DefaultDate
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}

	bookings, err := s.bookingRepo.ListForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	bookedByTreatment := make(map[string]map[string]struct{})
	for _, b := range bookings {
		slots, ok := bookedByTreatment[b.Treatment]
		if !ok {
			slots = make(map[string]struct{})
			bookedByTreatment[b.Treatment] = slots
		}
		slots[b.Slot] = struct{}{}
	}

	for _, svc := range services {
		booked := bookedByTreatment[svc.Name]
		available := make(model.StringList, 0, len(svc.Slots))
		for _, slot := range svc.Slots {
			if _, taken := booked[slot]; !taken {
				available = append(available, slot)
			}
		}
		svc.Slots = available
	}

	return services, nil
}
