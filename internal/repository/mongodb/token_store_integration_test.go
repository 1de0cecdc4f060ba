//go:build integration

package mongodb

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

func TestTokenStore_Mongo(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}

	ctx := context.Background()
	m, err := database.NewMongo(ctx, uri, "tickets_test_"+uuid.NewString()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = m.Database.Drop(context.Background())
		m.Close()
	})
	require.NoError(t, m.EnsureIndexes(ctx))

	store := NewStore(m).Tokens
	record := model.RefreshToken{ID: "r1", Token: "tok-1", UserID: "u1", CreatedAt: time.Now().UTC(), ExpiresAt: time.Now().Add(time.Hour).UTC()}

	require.NoError(t, store.Save(ctx, record))
	assert.ErrorIs(t, store.Save(ctx, record), model.ErrTokenConflict)

	found, err := store.Find(ctx, "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	require.NoError(t, store.DeleteByUser(ctx, "u1"))
	_, err = store.Find(ctx, "tok-1")
	assert.ErrorIs(t, err, model.ErrTokenNotFound)
}
