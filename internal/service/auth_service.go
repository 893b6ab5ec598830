package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskrooms/internal/auth"
	"taskrooms/internal/cache"
	apperrors "taskrooms/internal/errors"
	"taskrooms/internal/model"
	"taskrooms/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration and login. Registration always stores the
// credential as a bcrypt hash and login verifies against that hash; the
// plaintext never reaches the database.
type AuthService interface {
	Register(ctx context.Context, email, credential, role string) (*model.User, error)
	Login(ctx context.Context, email, credential string) (token string, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		cache:      cache,
	}
}

// Register creates a new user with a hashed credential. Email is deliberately
// not checked for prior use; the data layer carries no unique constraint on it.
func (s *authService) Register(ctx context.Context, email, credential, role string) (*model.User, error) {
	if email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}
	if credential == "" {
		return nil, apperrors.NewValidationError("passwordCredential is required")
	}
	if role == "" {
		role = model.DefaultRole
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(credential), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash credential: %w", err)
	}

	user := &model.User{
		Email:              email,
		PasswordCredential: string(hashed),
		Role:               role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	_ = s.cache.Delete(ctx, usersCacheKey)
	return user, nil
}

// Login authenticates a user and returns a signed one-hour bearer token.
// An unknown email and a bad password are reported as distinct failures.
func (s *authService) Login(ctx context.Context, email, credential string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordCredential), []byte(credential)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.ID)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
