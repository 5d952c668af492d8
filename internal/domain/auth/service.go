package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"quizbank/internal/core/apperror"
	appctx "quizbank/internal/core/context"
	"quizbank/internal/core/id"
	"quizbank/internal/domain/user"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		PasswordMinLength: 8,
	}
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Password    string `json:"password"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse carries an issued access token.
type TokenResponse struct {
	AccessToken string     `json:"accessToken"`
	ExpiresAt   time.Time  `json:"expiresAt"`
	User        *user.User `json:"user"`
}

// Service provides registration and login.
type Service struct {
	users      *user.Service
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates the auth service.
func NewService(users *user.Service, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		users:      users,
		jwtService: jwtService,
		config:     config,
	}
}

// Register creates a new learner account.
// A deleted account does not reserve its email: the live-scoped unique
// index lets the address be registered again, and it is the old account's
// restore that then becomes conditional.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*user.User, error) {
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := user.New(req.Email, req.DisplayName)
	u.PasswordHash = string(hash)

	if err := s.users.Create(ctx, u); err != nil {
		if apperror.IsDuplicate(err) {
			return nil, apperror.NewConflict("email already registered").WithDetail("email", u.Email)
		}
		return nil, err
	}
	return u, nil
}

// Login verifies credentials and issues an access token.
// A soft-deleted account is invisible to the live email lookup, so its
// credentials stop working the moment it is deleted.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	invalid := apperror.NewUnauthorized("invalid email or password")

	u, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, invalid
		}
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.NewForbidden("account is disabled")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		return nil, invalid
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(
		u.ID.String(), u.Email, string(u.Role), u.Permissions, u.IsAdmin(),
	)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &TokenResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        u,
	}, nil
}

// Me returns the account behind the authenticated context.
func (s *Service) Me(ctx context.Context) (*user.User, error) {
	uc := appctx.GetUser(ctx)
	if uc == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}
	uid, err := id.Parse(uc.UserID)
	if err != nil {
		return nil, apperror.NewUnauthorized("invalid token subject")
	}
	return s.users.GetByID(ctx, uid)
}
