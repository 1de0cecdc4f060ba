package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"go-ticket-tracker/internal/model"
	"go-ticket-tracker/internal/repository"
)

var _ repository.TokenStore = (*TokenStore)(nil)

// TokenStore keeps one document per refresh token in the tokens collection,
// shaped {refreshToken, userId, ...}. The unique index on refreshToken is created
// by database.Mongo.EnsureIndexes.
type TokenStore struct {
	coll *mongo.Collection
}

func NewTokenStore(coll *mongo.Collection) *TokenStore {
	return &TokenStore{coll: coll}
}

func (s *TokenStore) Save(ctx context.Context, token model.RefreshToken) error {
	_, err := s.coll.InsertOne(ctx, token)
	if mongo.IsDuplicateKeyError(err) {
		return model.ErrTokenConflict
	}
	if err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) Find(ctx context.Context, token string) (model.RefreshToken, error) {
	var record model.RefreshToken
	err := s.coll.FindOne(ctx, bson.M{"refreshToken": token}).Decode(&record)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.RefreshToken{}, model.ErrTokenNotFound
	}
	if err != nil {
		return model.RefreshToken{}, fmt.Errorf("find refresh token: %w", err)
	}
	return record, nil
}

func (s *TokenStore) Delete(ctx context.Context, token string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"refreshToken": token}); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func (s *TokenStore) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"userId": userID}); err != nil {
		return fmt.Errorf("revoke all refresh tokens: %w", err)
	}
	return nil
}
