package memory

import (
	"context"
	"sync"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

type TokenStore struct {
	mu     sync.RWMutex
	tokens map[string]model.RefreshToken
}

func NewTokenStore() *TokenStore {
	return &TokenStore{tokens: map[string]model.RefreshToken{}}
}

func (s *TokenStore) Save(_ context.Context, token model.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tokens[token.Token]; exists {
		return model.ErrTokenConflict
	}
	s.tokens[token.Token] = token
	return nil
}

func (s *TokenStore) Find(_ context.Context, token string) (model.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.tokens[token]
	if !ok {
		return model.RefreshToken{}, model.ErrTokenNotFound
	}
	return record, nil
}

func (s *TokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return nil
}

func (s *TokenStore) DeleteByUser(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, record := range s.tokens {
		if record.UserID == userID {
			delete(s.tokens, key)
		}
	}
	return nil
}

// Len reports the number of live records.
func (s *TokenStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
