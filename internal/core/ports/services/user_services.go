package services

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/SscSPs/pfm_backend/internal/dto"
)

// UserSvcFacade manages user profiles.
type UserSvcFacade interface {
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.User, error)
}

// AuthSvcFacade registers and authenticates users.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
}
