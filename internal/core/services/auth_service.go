package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
	"github.com/SscSPs/pfm_backend/internal/utils"
	"github.com/google/uuid"
)

const msgInvalidCredentials = "Invalid email or password"

// AuthSettings carries the token parameters of the auth service.
type AuthSettings struct {
	JWTSecret           string
	JWTExpiryDuration   time.Duration
	JWTIssuer           string
	DefaultBaseCurrency string
}

// authService issues JWTs for registered users.
type authService struct {
	BaseService
	settings AuthSettings
	userRepo portsrepo.UserRepositoryFacade
}

// NewAuthService creates a new instance of authService.
func NewAuthService(settings AuthSettings, userRepo portsrepo.UserRepositoryFacade) portssvc.AuthSvcFacade {
	if settings.DefaultBaseCurrency == "" {
		settings.DefaultBaseCurrency = "USD"
	}
	return &authService{BaseService: newBaseService(), settings: settings, userRepo: userRepo}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) issue(user *domain.User) (*dto.AuthResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(user.UserID, s.settings.JWTSecret, s.settings.JWTExpiryDuration, s.settings.JWTIssuer, s.now())
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign token", err)
	}
	return &dto.AuthResponse{Token: token, UserID: user.UserID, ExpiresAt: expiresAt}, nil
}

// Register creates a user with a bcrypt-hashed password and signs them in.
func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if len(req.Password) < 8 {
		return nil, apperrors.NewFieldValidationError(userResource, "password", "Password must be at least 8 characters")
	}
	base := req.BaseCurrency
	if base == "" {
		base = s.settings.DefaultBaseCurrency
	}
	if !domain.IsValidCurrencyCode(base) {
		return nil, apperrors.NewFieldValidationError(userResource, "baseCurrency", "Base currency must be a 3-letter code")
	}

	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.NewConflictError(userResource, "Email already registered")
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		BaseCurrency: base,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save user")
		return nil, err
	}
	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return s.issue(&user)
}

// Login verifies credentials. Unknown emails still cost one bcrypt comparison.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !utils.CheckPasswordHash(req.Password, hash) || user == nil {
		s.LogWarn(ctx, "Login failed")
		return nil, apperrors.NewUnauthorizedError(msgInvalidCredentials)
	}
	return s.issue(user)
}
