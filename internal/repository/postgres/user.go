package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/booking-api/internal/model"
)

// Upsert inserts a profile or replaces its profile fields by email.
// Role is never touched here; promotion goes through SetRole.
func (r *userRepository) Upsert(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
		INSERT INTO users (id, email, name, phone, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (email) DO UPDATE
		SET name = EXCLUDED.name,
			phone = EXCLUDED.phone,
			updated_at = EXCLUDED.updated_at
		RETURNING id, email, name, phone, role, created_at, updated_at
	`

	now := time.Now()
	var stored model.User
	err := r.db.GetContext(ctx, &stored, query,
		uuid.New(),
		user.Email,
		user.Name,
		user.Phone,
		model.RolePatient,
		now,
		now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return &stored, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, name, phone, role, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context) ([]*model.User, error) {
	query := `
		SELECT id, email, name, phone, role, created_at, updated_at
		FROM users
		ORDER BY created_at ASC
	`

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) SetRole(ctx context.Context, email string, role model.Role) error {
	query := `
		UPDATE users
		SET role = $1, updated_at = $2
		WHERE email = $3
	`

	result, err := r.db.ExecContext(ctx, query, role, time.Now(), email)
	if err != nil {
		return fmt.Errorf("failed to set role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}

	return nil
}
