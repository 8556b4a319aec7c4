// Package bookingtest provides an in-memory BookingRepository for
// tests that behaves like the store-enforced uniqueness constraint.
package bookingtest

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
)

type Repo struct {
	mu    sync.Mutex
	byKey map[string]*model.Booking
	byID  map[uuid.UUID]*model.Booking

	// CreateCalls counts successful inserts.
	CreateCalls int
}

func NewRepo() *Repo {
	return &Repo{
		byKey: make(map[string]*model.Booking),
		byID:  make(map[uuid.UUID]*model.Booking),
	}
}

func key(treatment, date, patient string) string {
	return treatment + "|" + date + "|" + patient
}

func (r *Repo) Create(ctx context.Context, b *model.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key(b.Treatment, b.Date, b.Patient)
	if _, ok := r.byKey[k]; ok {
		return repository.ErrDuplicateBooking
	}

	b.ID = uuid.New()
	stored := *b
	r.byKey[k] = &stored
	r.byID[b.ID] = &stored
	r.CreateCalls++
	return nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get booking: %w", sql.ErrNoRows)
	}
	copied := *b
	return &copied, nil
}

func (r *Repo) GetByKey(ctx context.Context, treatment, date, patient string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byKey[key(treatment, date, patient)]
	if !ok {
		return nil, fmt.Errorf("failed to get booking by key: %w", sql.ErrNoRows)
	}
	copied := *b
	return &copied, nil
}

func (r *Repo) ListForDate(ctx context.Context, date string) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Booking
	for _, b := range r.byKey {
		if b.Date == date {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *Repo) ListForPatient(ctx context.Context, email string) ([]*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*model.Booking
	for _, b := range r.byKey {
		if b.Patient == email {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *Repo) MarkPaid(ctx context.Context, id uuid.UUID, transactionID string) (*model.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("failed to get booking: %w", sql.ErrNoRows)
	}
	b.Paid = true
	b.TransactionID = &transactionID
	copied := *b
	return &copied, nil
}
