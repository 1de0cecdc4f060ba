package memory

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-tracker/internal/model"
)

func TestTicketRepository_ListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo := NewTicketRepository()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, model.Ticket{
			ID:        fmt.Sprintf("t%d", i),
			Project:   "p1",
			Submitter: "alice",
			Status:    "open",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, repo.Create(ctx, model.Ticket{ID: "t9", Project: "p2", Submitter: "carol", Developer: "bob", Status: "closed", CreatedAt: base}))

	page, err := repo.List(ctx, model.TicketFilter{Project: "p1", Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	require.Len(t, page.Tickets, 2)
	assert.Equal(t, "t2", page.Tickets[0].ID, "newest first")

	page, err = repo.List(ctx, model.TicketFilter{User: "bob"})
	require.NoError(t, err)
	require.Len(t, page.Tickets, 1)
	assert.Equal(t, "t9", page.Tickets[0].ID)

	page, err = repo.List(ctx, model.TicketFilter{Page: 10, Limit: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Tickets)
	assert.Equal(t, 6, page.Total)
}

func TestTicketRepository_UpdateDeleteMissing(t *testing.T) {
	repo := NewTicketRepository()
	assert.ErrorIs(t, repo.Update(context.Background(), model.Ticket{ID: "nope"}), model.ErrTicketNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), model.ErrTicketNotFound)
}

func TestUserRepository_EmailIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	require.NoError(t, repo.Create(ctx, model.User{ID: "u1", Email: "Alice@Example.com", Role: model.RoleDeveloper}))
	assert.ErrorIs(t, repo.Create(ctx, model.User{ID: "u2", Email: "alice@example.com"}), model.ErrUserAlreadyExists)

	u, err := repo.FindByEmail(ctx, " ALICE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	updated, err := repo.UpdateRole(ctx, "u1", model.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)
}
