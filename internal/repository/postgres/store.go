// Package postgres implements the repositories on a pgx connection pool.
package postgres

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"go-ticket-tracker/internal/repository"
)

func NewStore(pool *pgxpool.Pool, closeFn func()) *repository.Store {
	return &repository.Store{
		Users:   NewUserRepository(pool),
		Tokens:  NewTokenStore(pool),
		Tickets: NewTicketRepository(pool),
		Close:   closeFn,
	}
}
