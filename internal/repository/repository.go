// Package repository declares the persistence contracts shared by the memory,
// mongo and postgres backends.
package repository

import (
	"context"

	"go-ticket-tracker/internal/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
	UpdateRole(ctx context.Context, id string, role model.Role) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

// TokenStore persists refresh tokens keyed by their own string value.
// Find returns model.ErrTokenNotFound for unknown tokens; Save returns
// model.ErrTokenConflict when the value is already stored.
type TokenStore interface {
	Save(ctx context.Context, token model.RefreshToken) error
	Find(ctx context.Context, token string) (model.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID string) error
}

type TicketRepository interface {
	FindByID(ctx context.Context, id string) (model.Ticket, error)
	List(ctx context.Context, filter model.TicketFilter) (model.TicketPage, error)
	Create(ctx context.Context, t model.Ticket) error
	Update(ctx context.Context, t model.Ticket) error
	Delete(ctx context.Context, id string) error
}

// Store bundles the repositories of one backend.
type Store struct {
	Users   UserRepository
	Tokens  TokenStore
	Tickets TicketRepository
	Close   func()
}
