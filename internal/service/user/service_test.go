package user

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/booking-api/internal/model"
	"github.com/jwalitptl/booking-api/pkg/auth"
)

type stubUserRepo struct {
	users map[string]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*model.User)}
}

func (s *stubUserRepo) Upsert(ctx context.Context, u *model.User) (*model.User, error) {
	existing, ok := s.users[u.Email]
	if ok {
		existing.Name = u.Name
		existing.Phone = u.Phone
		copied := *existing
		return &copied, nil
	}
	stored := *u
	stored.Role = model.RolePatient
	s.users[u.Email] = &stored
	copied := stored
	return &copied, nil
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, fmt.Errorf("failed to get user: %w", sql.ErrNoRows)
	}
	copied := *u
	return &copied, nil
}

func (s *stubUserRepo) List(ctx context.Context) ([]*model.User, error) {
	var out []*model.User
	for _, u := range s.users {
		copied := *u
		out = append(out, &copied)
	}
	return out, nil
}

func (s *stubUserRepo) SetRole(ctx context.Context, email string, role model.Role) error {
	u, ok := s.users[email]
	if !ok {
		return fmt.Errorf("user not found: %w", sql.ErrNoRows)
	}
	u.Role = role
	return nil
}

func newTestService() (*Service, *stubUserRepo) {
	repo := newStubUserRepo()
	return NewService(repo, auth.NewTokenService("secret", time.Hour)), repo
}

func TestUpsertUserIssuesToken(t *testing.T) {
	svc, _ := newTestService()

	stored, token, err := svc.UpsertUser(context.Background(), "a@x.com", &model.UpsertUserRequest{Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", stored.Email)
	assert.NotEmpty(t, token)

	claims, err := auth.NewTokenService("secret", time.Hour).Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestUpsertUserPreservesRole(t *testing.T) {
	svc, repo := newTestService()

	_, _, err := svc.UpsertUser(context.Background(), "a@x.com", &model.UpsertUserRequest{Name: "Alice"})
	require.NoError(t, err)
	require.NoError(t, repo.SetRole(context.Background(), "a@x.com", model.RoleAdmin))

	stored, _, err := svc.UpsertUser(context.Background(), "a@x.com", &model.UpsertUserRequest{Name: "Alice B"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B", stored.Name)
	assert.Equal(t, model.RoleAdmin, stored.Role)
}

func TestPromoteToAdmin(t *testing.T) {
	svc, _ := newTestService()

	_, _, err := svc.UpsertUser(context.Background(), "a@x.com", &model.UpsertUserRequest{Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, svc.PromoteToAdmin(context.Background(), "a@x.com"))

	isAdmin, err := svc.IsAdmin(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.True(t, isAdmin)
}

func TestIsAdminUnknownEmail(t *testing.T) {
	svc, _ := newTestService()

	isAdmin, err := svc.IsAdmin(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.False(t, isAdmin)
}
