package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/repositories"
)

// DashboardService defines the overview page operations
type DashboardService interface {
	GetDashboard(ctx context.Context, reload bool) (*dto.DashboardResponse, error)
}

// dashboardServiceImpl implements DashboardService
type dashboardServiceImpl struct {
	rosterRepo     *repositories.RosterRepository
	studentService StudentService
	logger         zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(rosterRepo *repositories.RosterRepository, studentService StudentService, logger zerolog.Logger) DashboardService {
	return &dashboardServiceImpl{
		rosterRepo:     rosterRepo,
		studentService: studentService,
		logger:         logger,
	}
}

// GetDashboard computes stats and charts over the current roster. With
// reload set the roster is regenerated first.
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, reload bool) (*dto.DashboardResponse, error) {
	if reload {
		if _, err := s.studentService.Regenerate(ctx); err != nil {
			return nil, err
		}
	}

	students, err := s.rosterRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		Stats:  ComputeStats(students),
		Charts: ComputeCharts(students),
	}, nil
}
