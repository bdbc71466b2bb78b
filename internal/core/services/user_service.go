package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/SscSPs/pfm_backend/internal/apperrors"
	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
	"github.com/SscSPs/pfm_backend/internal/dto"
)

const userResource = "User"

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

// NewUserService creates the user profile service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{BaseService: newBaseService(), userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// UpdatePreferences changes the name, base currency or monthly income.
func (s *userService) UpdatePreferences(ctx context.Context, userID string, req dto.UpdatePreferencesRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewFieldValidationError(userResource, "name", "Name cannot be empty")
		}
		user.Name = name
	}
	if req.BaseCurrency != nil {
		if !domain.IsValidCurrencyCode(*req.BaseCurrency) {
			return nil, apperrors.NewFieldValidationError(userResource, "baseCurrency", "Base currency must be a 3-letter code")
		}
		user.BaseCurrency = *req.BaseCurrency
	}
	if req.MonthlyIncome != nil {
		if req.MonthlyIncome.IsNegative() {
			return nil, apperrors.NewFieldValidationError(userResource, "monthlyIncome", "Monthly income cannot be negative")
		}
		income := *req.MonthlyIncome
		user.MonthlyIncome = &income
	}
	user.UpdatedAt = s.now()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user preferences", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}
