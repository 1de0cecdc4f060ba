package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"go-ticket-tracker/internal/lock"
	"go-ticket-tracker/internal/repository/memory"
	"go-ticket-tracker/internal/token"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	clock   *fakeClock
	issuer  *token.Issuer
	users   *memory.UserRepository
	tokens  *memory.TokenStore
	tickets *memory.TicketRepository
	auth    *AuthService
}

func newFixture(t *testing.T, rotation bool) *fixture {
	t.Helper()

	clock := newFakeClock()
	issuer, err := token.NewIssuer(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    24 * time.Hour,
	}, token.WithClock(clock.Now))
	require.NoError(t, err)

	f := &fixture{
		clock:   clock,
		issuer:  issuer,
		users:   memory.NewUserRepository(),
		tokens:  memory.NewTokenStore(),
		tickets: memory.NewTicketRepository(),
	}
	f.auth = NewAuthService(f.users, f.tokens, issuer, lock.NewMemoryLocker(), nil, AuthConfig{
		RefreshRotation: rotation,
		BcryptCost:      bcrypt.MinCost,
	})
	f.auth.now = clock.Now

	return f
}
