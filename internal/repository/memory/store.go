// Package memory holds map-backed repositories used in tests and for
// STORE_BACKEND=memory development runs.
package memory

import "go-ticket-tracker/internal/repository"

func NewStore() *repository.Store {
	return &repository.Store{
		Users:   NewUserRepository(),
		Tokens:  NewTokenStore(),
		Tickets: NewTicketRepository(),
		Close:   func() {},
	}
}
