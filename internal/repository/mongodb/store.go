// Package mongodb implements the repositories on MongoDB collections.
package mongodb

import (
	"go-ticket-tracker/internal/database"
	"go-ticket-tracker/internal/repository"
)

func NewStore(m *database.Mongo) *repository.Store {
	return &repository.Store{
		Users:   NewUserRepository(m.Database.Collection(database.UsersCollection)),
		Tokens:  NewTokenStore(m.Database.Collection(database.TokensCollection)),
		Tickets: NewTicketRepository(m.Database.Collection(database.TicketsCollection)),
		Close:   m.Close,
	}
}
