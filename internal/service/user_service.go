package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskrooms/internal/cache"
	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/model"
	"taskrooms/internal/repository"
)

const (
	usersCacheKey = "users:all"
	listCacheTTL  = 5 * time.Minute
)

// UserService exposes user collection operations. Creation goes through
// AuthService.Register so the hashing policy lives in one place.
type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id uuid.UUID, email, credential, role string) (*model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func (s *userService) List(ctx context.Context) ([]model.User, error) {
	if data, _ := s.cache.Get(ctx, usersCacheKey); data != nil {
		var cached []model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(users); err == nil {
		_ = s.cache.Set(ctx, usersCacheKey, payload, listCacheTTL)
	}
	return users, nil
}

// Update performs a full overwrite: all three fields are replaced by the
// request values, absent ones included. A non-empty credential is re-hashed.
func (s *userService) Update(ctx context.Context, id uuid.UUID, email, credential, role string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if credential != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash credential: %w", err)
		}
		credential = string(hashed)
	}

	user.Email = email
	user.PasswordCredential = credential
	user.Role = role

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return nil
}
