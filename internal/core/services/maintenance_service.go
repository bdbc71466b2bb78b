package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pfm_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/pfm_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pfm_backend/internal/core/ports/services"
)

// MaintenanceServiceOption is a functional option for configuring the maintenance service
type MaintenanceServiceOption func(*maintenanceService)

// WithFullVacuum switches VACUUM (ANALYZE) to VACUUM FULL, which locks every table.
func WithFullVacuum(enabled bool) MaintenanceServiceOption {
	return func(s *maintenanceService) {
		s.fullVacuum = enabled
	}
}

// WithReindex enables REINDEX DATABASE, which locks every index.
func WithReindex(enabled bool) MaintenanceServiceOption {
	return func(s *maintenanceService) {
		s.reindex = enabled
	}
}

type maintenanceService struct {
	BaseService
	repo       portsrepo.MaintenanceRepository
	fullVacuum bool
	reindex    bool
}

// NewMaintenanceService creates the database maintenance service. Both blocking
// operations are off by default.
func NewMaintenanceService(repo portsrepo.MaintenanceRepository, options ...MaintenanceServiceOption) portssvc.MaintenanceSvc {
	s := &maintenanceService{
		BaseService: newBaseService(),
		repo:        repo,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

var _ portssvc.MaintenanceSvc = (*maintenanceService)(nil)

// PerformMaintenance vacuums, optionally reindexes, then analyzes, measuring the
// database size around the work.
func (s *maintenanceService) PerformMaintenance(ctx context.Context) (*domain.MaintenanceReport, error) {
	report := &domain.MaintenanceReport{FullVacuum: s.fullVacuum, Reindexed: s.reindex}

	before, err := s.repo.DatabaseSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("measure database size: %w", err)
	}
	report.SizeBefore = before
	s.LogInfo(ctx, "Database maintenance started",
		slog.Int64("size_bytes", before),
		slog.Bool("full_vacuum", s.fullVacuum),
		slog.Bool("reindex", s.reindex))

	if err := s.repo.Vacuum(ctx, s.fullVacuum); err != nil {
		return nil, fmt.Errorf("vacuum: %w", err)
	}
	if s.reindex {
		if err := s.repo.Reindex(ctx); err != nil {
			return nil, fmt.Errorf("reindex: %w", err)
		}
	} else {
		s.LogDebug(ctx, "Skipping REINDEX DATABASE")
	}
	if err := s.repo.Analyze(ctx); err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}

	after, err := s.repo.DatabaseSize(ctx)
	if err != nil {
		return nil, fmt.Errorf("measure database size: %w", err)
	}
	report.SizeAfter = after
	return report, nil
}
