package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

const uniqueViolation = "23505"

type TokenStore struct {
	pool *pgxpool.Pool
}

func NewTokenStore(pool *pgxpool.Pool) *TokenStore {
	return &TokenStore{pool: pool}
}

func (s *TokenStore) Save(ctx context.Context, token model.RefreshToken) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO refresh_tokens (token, record_id, user_id, created_at, expires_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		token.Token, token.ID, token.UserID, token.CreatedAt, token.ExpiresAt)
	if isUniqueViolation(err) {
		return model.ErrTokenConflict
	}
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) Find(ctx context.Context, token string) (model.RefreshToken, error) {
	record := model.RefreshToken{Token: token}
	err := s.pool.QueryRow(ctx,
		`SELECT record_id, user_id, created_at, expires_at
		 FROM refresh_tokens WHERE token = $1`, token).
		Scan(&record.ID, &record.UserID, &record.CreatedAt, &record.ExpiresAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return model.RefreshToken{}, model.ErrTokenNotFound
	}
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("find refresh token: %w", err)
	}
	return record, nil
}

func (s *TokenStore) Delete(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) DeleteByUser(ctx context.Context, userID string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
