//go:build integration

package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-tracker/internal/database"
	"go-ticket-tracker/internal/model"
)

func TestTokenStore_Postgres(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgres(ctx, database.PostgresConfig{URL: url})
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.EnsureSchema(ctx))

	store := NewStore(db.Pool, db.Close)
	now := time.Now().UTC()
	user := model.User{ID: uuid.NewString(), Name: "Test", Email: uuid.NewString() + "@example.com", PasswordHash: "x", Role: model.RoleDeveloper, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.Users.Create(ctx, user))

	token := "tok-" + uuid.NewString()
	record := model.RefreshToken{ID: "r1", Token: token, UserID: user.ID, CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Tokens.Save(ctx, record))
	assert.ErrorIs(t, store.Tokens.Save(ctx, record), model.ErrTokenConflict)

	found, err := store.Tokens.Find(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.UserID)

	require.NoError(t, store.Tokens.Delete(ctx, token))
	_, err = store.Tokens.Find(ctx, token)
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}
