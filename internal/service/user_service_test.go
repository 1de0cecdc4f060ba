package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-tracker/internal/model"
)

func TestUserService_UpdateRoleRevokesTokens(t *testing.T) {
	f := newFixture(t, false)
	svc := NewUserService(f.users, f.tokens, f.auth)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "rootpass"))
	admin, err := f.users.FindByEmail(ctx, "root@example.com")
	require.NoError(t, err)

	target := register(t, f, "dev@example.com")

	updated, err := svc.UpdateRole(ctx, admin.Identity(), target.User.ID, "Project Manager")
	require.NoError(t, err)
	assert.Equal(t, model.RoleProjectManager, updated.Role)

	_, err = f.auth.Refresh(ctx, target.RefreshToken)
	assert.ErrorIs(t, err, model.ErrNoRefreshToken)
}

func TestUserService_UpdateRoleErrors(t *testing.T) {
	f := newFixture(t, false)
	svc := NewUserService(f.users, f.tokens, f.auth)
	ctx := context.Background()
	admin := model.Identity{ID: "admin-1", Role: model.RoleAdmin}

	_, err := svc.UpdateRole(ctx, admin, "missing", "developer")
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	_, err = svc.UpdateRole(ctx, admin, "missing", "janitor")
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = svc.UpdateRole(ctx, admin, admin.ID, "developer")
	assert.ErrorIs(t, err, model.ErrForbidden)
}

func TestUserService_EnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t, false)
	svc := NewUserService(f.users, f.tokens, f.auth)
	ctx := context.Background()

	require.NoError(t, svc.EnsureAdmin(ctx, "Root@Example.com", "rootpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "root@example.com", "otherpass"))
	require.NoError(t, svc.EnsureAdmin(ctx, "", ""))

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
	assert.Equal(t, "root", users[0].Name)

	pair, err := f.auth.Login(ctx, model.LoginRequest{Email: "root@example.com", Password: "rootpass"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, pair.User.Role)
}

func TestUserService_EnsureAdminRejectsWeakCredentials(t *testing.T) {
	f := newFixture(t, false)
	svc := NewUserService(f.users, f.tokens, f.auth)
	ctx := context.Background()

	assert.ErrorIs(t, svc.EnsureAdmin(ctx, "root@example.com", "short"), model.ErrInvalidInput)
	assert.ErrorIs(t, svc.EnsureAdmin(ctx, "not-an-email", "rootpass"), model.ErrInvalidInput)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}
