package dto

import (
	"time"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// UpdatePreferencesRequest changes a user's reporting preferences.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdatePreferencesRequest struct {
	Name          *string          `json:"name"`
	BaseCurrency  *string          `json:"baseCurrency" binding:"omitempty,currency"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string           `json:"userID"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	BaseCurrency  string           `json:"baseCurrency"`
	MonthlyIncome *decimal.Decimal `json:"monthlyIncome,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		BaseCurrency:  u.BaseCurrency,
		MonthlyIncome: u.MonthlyIncome,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
