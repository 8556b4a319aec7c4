package postgres

import (
	"context"
	"fmt"

	"github.com/jwalitptl/booking-api/internal/model"
)

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	query := `
		SELECT id, name, price, slots, created_at, updated_at
		FROM services
		ORDER BY name ASC
	`

	var services []*model.Service
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

// ListSummaries returns services without their slot lists, for listings
// that only need names and prices.
func (r *serviceRepository) ListSummaries(ctx context.Context) ([]*model.ServiceSummary, error) {
	query := `
		SELECT id, name, price, created_at, updated_at
		FROM services
		ORDER BY name ASC
	`

	var services []*model.ServiceSummary
	if err := r.db.SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list service summaries: %w", err)
	}
	return services, nil
}
