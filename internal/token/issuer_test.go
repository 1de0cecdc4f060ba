package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-ticket-tracker/internal/model"
)

func testConfig() Config {
	return Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     15 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNewIssuer_RejectsBadConfig(t *testing.T) {
	cases := map[string]Config{
		"missing access secret":  {RefreshSecret: "r", AccessTTL: time.Minute, RefreshTTL: time.Hour},
		"missing refresh secret": {AccessSecret: "a", AccessTTL: time.Minute, RefreshTTL: time.Hour},
		"shared secret":          {AccessSecret: "same", RefreshSecret: "same", AccessTTL: time.Minute, RefreshTTL: time.Hour},
		"zero access ttl":        {AccessSecret: "a", RefreshSecret: "r", RefreshTTL: time.Hour},
	}

	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewIssuer(cfg)
			assert.Error(t, err)
		})
	}
}

func TestIssuer_AccessRoundTrip(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	for _, userID := range []string{"u1", "6523f1c2a9", "user with spaces"} {
		tok, err := issuer.IssueAccessToken(userID)
		require.NoError(t, err)

		claims, err := issuer.VerifyAccessToken(tok)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID())
		assert.Equal(t, model.TokenTypeAccess, claims.Type)
	}
}

func TestIssuer_AccessTokenIsDeterministic(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewIssuer(testConfig(), WithClock(fixedClock(now)))
	require.NoError(t, err)

	first, err := issuer.IssueAccessToken("u1")
	require.NoError(t, err)
	second, err := issuer.IssueAccessToken("u1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIssuer_RefreshTokensAreUnique(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	issuer, err := NewIssuer(testConfig(), WithClock(fixedClock(now)))
	require.NoError(t, err)

	first, expiresAt, err := issuer.IssueRefreshToken("u1")
	require.NoError(t, err)
	second, _, err := issuer.IssueRefreshToken("u1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, now.Add(7*24*time.Hour), expiresAt)

	claims, err := issuer.VerifyRefreshToken(first)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID())
}

func TestIssuer_RejectsExpiredToken(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := issued
	issuer, err := NewIssuer(testConfig(), WithClock(func() time.Time { return clock }))
	require.NoError(t, err)

	tok, err := issuer.IssueAccessToken("u1")
	require.NoError(t, err)

	clock = issued.Add(16 * time.Minute)
	_, err = issuer.VerifyAccessToken(tok)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestIssuer_RejectsWrongSecretAndType(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	other, err := NewIssuer(Config{
		AccessSecret:  "another-access-secret",
		RefreshSecret: "another-refresh-secret",
		AccessTTL:     time.Minute,
		RefreshTTL:    time.Hour,
	})
	require.NoError(t, err)

	foreign, err := other.IssueAccessToken("u1")
	require.NoError(t, err)
	_, err = issuer.VerifyAccessToken(foreign)
	assert.ErrorIs(t, err, model.ErrInvalidToken)

	refresh, _, err := issuer.IssueRefreshToken("u1")
	require.NoError(t, err)
	_, err = issuer.VerifyAccessToken(refresh)
	assert.ErrorIs(t, err, model.ErrInvalidToken, "refresh token must not pass as access token")

	access, err := issuer.IssueAccessToken("u1")
	require.NoError(t, err)
	_, err = issuer.VerifyRefreshToken(access)
	assert.ErrorIs(t, err, model.ErrInvalidToken)
}

func TestIssuer_RejectsUnsignedAndMalformed(t *testing.T) {
	issuer, err := NewIssuer(testConfig())
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Type: model.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for _, tok := range []string{"", "garbage", "a.b.c", raw} {
		_, err := issuer.VerifyAccessToken(tok)
		assert.ErrorIs(t, err, model.ErrInvalidToken, "token %q", tok)
	}
}
