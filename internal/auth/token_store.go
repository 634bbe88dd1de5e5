package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"assetverse/internal/cache"
	"assetverse/internal/model"
)

const refreshTokenKeyPrefix = "refresh_token:"

// TokenStoreInterface defines the interface for token storage operations.
type TokenStoreInterface interface {
	StoreRefreshToken(ctx context.Context, tokenID, email string, role model.Role, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, tokenID string) (email string, role model.Role, err error)
	DeleteRefreshToken(ctx context.Context, tokenID string) error
}

// TokenStore handles storage and retrieval of refresh tokens in Redis.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

type refreshTokenRecord struct {
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}

// StoreRefreshToken stores a refresh token in Redis with TTL. Uses the
// strict cache path: a token that silently fails to persist would make
// every later refresh fail.
func (s *TokenStore) StoreRefreshToken(ctx context.Context, tokenID, email string, role model.Role, ttl time.Duration) error {
	payload, err := json.Marshal(refreshTokenRecord{Email: email, Role: role})
	if err != nil {
		return fmt.Errorf("marshal token data: %w", err)
	}
	if err := s.cache.SetStrict(ctx, refreshTokenKeyPrefix+tokenID, payload, ttl); err != nil {
		return fmt.Errorf("store refresh token: %w", err)
	}
	return nil
}

// GetRefreshToken retrieves refresh token data from Redis.
func (s *TokenStore) GetRefreshToken(ctx context.Context, tokenID string) (string, model.Role, error) {
	data, err := s.cache.GetStrict(ctx, refreshTokenKeyPrefix+tokenID)
	if err != nil {
		if cache.IsMiss(err) {
			return "", "", fmt.Errorf("refresh token not found")
		}
		return "", "", fmt.Errorf("read refresh token: %w", err)
	}

	var record refreshTokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return "", "", fmt.Errorf("unmarshal token data: %w", err)
	}
	return record.Email, record.Role, nil
}

// DeleteRefreshToken removes a refresh token from Redis.
func (s *TokenStore) DeleteRefreshToken(ctx context.Context, tokenID string) error {
	if err := s.cache.DeleteStrict(ctx, refreshTokenKeyPrefix+tokenID); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
