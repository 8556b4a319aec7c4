package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/internal/repository"
	"github.com/jwalitptl/booking-api/pkg/auth"
)

type Service struct {
	repo   repository.UserRepository
	tokens *auth.TokenService
}

func NewService(repo repository.UserRepository, tokens *auth.TokenService) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
	}
}

// UpsertUser creates or replaces the profile for the given email and
// issues a fresh access token bound to it.
func (s *Service) UpsertUser(ctx context.Context, userEmail string, req *model.UpsertUserRequest) (*model.User, string, error) {
	user := &model.User{
		Email: userEmail,
		Name:  req.Name,
		Phone: req.Phone,
	}

	stored, err := s.repo.Upsert(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to upsert user: %w", err)
	}

	token, err := s.tokens.Generate(userEmail)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return stored, token, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// PromoteToAdmin grants the admin role to the target email. Idempotent.
func (s *Service) PromoteToAdmin(ctx context.Context, userEmail string) error {
	if err := s.repo.SetRole(ctx, userEmail, model.RoleAdmin); err != nil {
		return fmt.Errorf("failed to promote user: %w", err)
	}
	return nil
}

// IsAdmin reports whether the given email currently has the admin role.
// Unknown emails are simply not admins.
func (s *Service) IsAdmin(ctx context.Context, userEmail string) (bool, error) {
	user, err := s.repo.GetByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check admin role: %w", err)
	}
	return user.Role.IsAdmin(), nil
}
