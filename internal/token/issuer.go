// Package token mints and verifies the HS256 access and refresh tokens.
//
// Access and refresh tokens are signed with different secrets so that a leaked
// access secret cannot be used to forge long-lived refresh tokens.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"go-ticket-tracker/internal/model"
)

type Config struct {
	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Claims is the payload shared by both token kinds. Subject carries the user id.
type Claims struct {
	Type string `json:"typ"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

type Option func(*Issuer)

// WithClock overrides the time source used for iat/exp and for expiry checks.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) {
		i.now = now
	}
}

func NewIssuer(cfg Config, opts ...Option) (*Issuer, error) {
	access := strings.TrimSpace(cfg.AccessSecret)
	refresh := strings.TrimSpace(cfg.RefreshSecret)
	if access == "" {
		return nil, errors.New("access token secret is not configured")
	}
	if refresh == "" {
		return nil, errors.New("refresh token secret is not configured")
	}
	if access == refresh {
		return nil, errors.New("access and refresh token secrets must differ")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token TTLs must be positive")
	}

	issuer := &Issuer{
		accessSecret:  []byte(access),
		refreshSecret: []byte(refresh),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(issuer)
	}

	return issuer, nil
}

func (i *Issuer) AccessTTL() time.Duration {
	return i.accessTTL
}

// IssueAccessToken is deterministic for a given user id and clock reading.
func (i *Issuer) IssueAccessToken(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("user id is required")
	}

	now := i.now().UTC()
	claims := Claims{
		Type: model.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.accessTTL)),
		},
	}

	return sign(claims, i.accessSecret)
}

// IssueRefreshToken returns the signed token and its expiry. Each call carries a
// fresh jti, so two tokens for the same user never share a store key.
func (i *Issuer) IssueRefreshToken(userID string) (string, time.Time, error) {
	if strings.TrimSpace(userID) == "" {
		return "", time.Time{}, errors.New("user id is required")
	}

	now := i.now().UTC()
	expiresAt := now.Add(i.refreshTTL)
	claims := Claims{
		Type: model.TokenTypeRefresh,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := sign(claims, i.refreshSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (i *Issuer) VerifyAccessToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, i.accessSecret, model.TokenTypeAccess)
}

func (i *Issuer) VerifyRefreshToken(tokenString string) (*Claims, error) {
	return i.verify(tokenString, i.refreshSecret, model.TokenTypeRefresh)
}

func (i *Issuer) verify(tokenString string, secret []byte, expectedType string) (*Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return nil, model.ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (any, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, model.ErrInvalidToken
	}
	if claims.Type != expectedType {
		return nil, fmt.Errorf("%w: unexpected token type %q", model.ErrInvalidToken, claims.Type)
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fmt.Errorf("%w: subject missing", model.ErrInvalidToken)
	}

	return claims, nil
}

func sign(claims Claims, secret []byte) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
