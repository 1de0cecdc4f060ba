package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
	"go-ticket-tracker/pkg/apierror"
)

type UserService struct {
	users  repository.UserRepository
	tokens repository.TokenStore
	auth   *AuthService
}

func NewUserService(users repository.UserRepository, tokens repository.TokenStore, auth *AuthService) *UserService {
	return &UserService{users: users, tokens: tokens, auth: auth}
}

func (s *UserService) List(ctx context.Context) ([]model.Identity, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Identity, 0, len(users))
	for _, u := range users {
		out = append(out, u.Identity())
	}
	return out, nil
}

// UpdateRole changes a user's role and revokes their refresh tokens, so the
// user has to sign in again before the new role shows up on a fresh session.
func (s *UserService) UpdateRole(ctx context.Context, actor model.Identity, userID string, rawRole string) (model.Identity, error) {
	role, err := model.ParseRole(rawRole)
	if err != nil {
		return model.Identity{}, invalidInput("invalid role", rawRole)
	}

	if actor.ID == userID && role != model.RoleAdmin {
		return model.Identity{}, apierror.Forbidden(model.ErrForbidden, "admins cannot demote themselves")
	}

	updated, err := s.users.UpdateRole(ctx, userID, role)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return model.Identity{}, notFound(err, "user not found", userID)
		}
		return model.Identity{}, err
	}

	if err := s.tokens.DeleteByUser(ctx, userID); err != nil {
		return model.Identity{}, fmt.Errorf("revoke tokens after role change: %w", err)
	}

	slog.Info("user role updated", "user_id", userID, "role", role, "actor_id", actor.ID)
	return updated.Identity(), nil
}

// EnsureAdmin seeds an admin account on first start. An existing account with the
// same email is left untouched.
func (s *UserService) EnsureAdmin(ctx context.Context, email string, password string) error {
	email = normalizeEmail(email)
	if email == "" {
		return nil
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return invalidInput("admin email is not a valid address", email)
	}
	if len(password) < minPasswordLength {
		return invalidInput(fmt.Sprintf("admin password must be at least %d characters", minPasswordLength), "")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, model.ErrUserNotFound) {
		return err
	}

	name, _, _ := strings.Cut(email, "@")
	user, err := s.auth.createUser(ctx, name, email, password, model.RoleAdmin)
	if err != nil {
		return err
	}

	slog.Info("admin account seeded", "user_id", user.ID, "email", email)
	return nil
}
