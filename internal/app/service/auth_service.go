package service

import (
	"context"
	"errors"
	"fmt"

	"quiz_api/internal/common"
	"quiz_api/internal/common/security"
	"quiz_api/internal/domain/model"
	"quiz_api/internal/domain/repository"

	"github.com/golang-jwt/jwt/v5"
)

// AttemptLimiter throttles login attempts per subject. A nil limiter on the
// service disables throttling.
type AttemptLimiter interface {
	Allow(ctx context.Context, subject string) (bool, error)
}

type AuthService struct {
	userRepo repository.UserRepository
	limiter  AttemptLimiter
}

func NewAuthService(userRepo repository.UserRepository, limiter AttemptLimiter) *AuthService {
	return &AuthService{userRepo: userRepo, limiter: limiter}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("username, email and password are required: %w", common.ErrValidation)
	}

	// Friendly pre-check; the unique index backstops concurrent registrations.
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", common.ErrConflict)
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		IsAdmin:        false,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.HashedPassword = "" // Clear before returning
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, fmt.Errorf("username and password are required: %w", common.ErrValidation)
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check login attempts: %w", err)
		}
		if !ok {
			return nil, common.ErrTooManyRequests
		}
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

// ResolveIdentity loads the user a verified token's claims point at.
func (s *AuthService) ResolveIdentity(ctx context.Context, claims jwt.MapClaims) (*model.User, error) {
	username, err := security.GetSubjectFromClaims(claims)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrUnauthorized)
	}
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, fmt.Errorf("token subject no longer exists: %w", common.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
