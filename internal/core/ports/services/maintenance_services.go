package services

import (
	"context"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
)

// MaintenanceSvc reclaims space and refreshes planner statistics.
type MaintenanceSvc interface {
	PerformMaintenance(ctx context.Context) (*domain.MaintenanceReport, error)
}
