package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"assetverse/internal/cache"
	apperrors "assetverse/internal/errors"
	"assetverse/internal/model"
	"assetverse/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes profile operations. GetByEmail backs the role
// resolver, so it must never return a partial record.
type UserService interface {
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	InvalidateProfile(ctx context.Context, email string)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(email)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(email), payload, userCacheTTL)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}

// InvalidateProfile drops the cached profile so the next read reflects
// a package change immediately.
func (s *userService) InvalidateProfile(ctx context.Context, email string) {
	_ = s.cache.Delete(ctx, userCacheKey(email))
}
