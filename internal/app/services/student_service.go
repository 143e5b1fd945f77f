package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/export"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/repositories"
	"github.com/yigit/mentoraid/internal/pkg/helpers"
	"github.com/yigit/mentoraid/internal/pkg/metrics"
	"github.com/yigit/mentoraid/internal/pkg/notify"
	"github.com/yigit/mentoraid/internal/seed"
)

// Export notification shown once the CSV has been written
const msgExported = "Data exported successfully!"

// StudentService defines the roster operations
type StudentService interface {
	List(ctx context.Context, filter dto.StudentFilter, page, size int) (*dto.StudentListResponse, error)
	Filter(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error)
	GetByID(ctx context.Context, id string) (*models.Student, error)
	GetDetail(ctx context.Context, id string) (*dto.StudentDetailResponse, error)
	Regenerate(ctx context.Context) (*repositories.Snapshot, error)
	ExportCSV(ctx context.Context, filter dto.StudentFilter, w io.Writer) (int, error)
}

// studentServiceImpl implements StudentService
type studentServiceImpl struct {
	rosterRepo       *repositories.RosterRepository
	interventionRepo *repositories.InterventionRepository
	generator        *seed.Generator
	genMu            sync.Mutex
	size             int
	publisher        notify.Publisher
	metrics          *metrics.Metrics
	logger           zerolog.Logger
}

// NewStudentService creates a new StudentService. size is the number of
// records produced by every regeneration.
func NewStudentService(
	rosterRepo *repositories.RosterRepository,
	interventionRepo *repositories.InterventionRepository,
	generator *seed.Generator,
	size int,
	publisher notify.Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		rosterRepo:       rosterRepo,
		interventionRepo: interventionRepo,
		generator:        generator,
		size:             size,
		publisher:        publisher,
		metrics:          m,
		logger:           logger,
	}
}

// List returns one page of the filtered roster
func (s *studentServiceImpl) List(ctx context.Context, filter dto.StudentFilter, page, size int) (*dto.StudentListResponse, error) {
	students, err := s.Filter(ctx, filter)
	if err != nil {
		return nil, err
	}

	items, pagination := helpers.Paginate(students, page, size)
	return &dto.StudentListResponse{
		Students:   items,
		Pagination: pagination,
	}, nil
}

// Filter returns the filtered roster in stored order
func (s *studentServiceImpl) Filter(ctx context.Context, filter dto.StudentFilter) ([]models.Student, error) {
	students, err := s.rosterRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return FilterStudents(students, filter), nil
}

// GetByID retrieves a single student
func (s *studentServiceImpl) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student, err := s.rosterRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Debug().Err(err).Str("studentID", id).Msg("Student lookup failed")
		return nil, err
	}
	return student, nil
}

// GetDetail returns a student with the metrics and progress of the detail view
func (s *studentServiceImpl) GetDetail(ctx context.Context, id string) (*dto.StudentDetailResponse, error) {
	student, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &dto.StudentDetailResponse{
		Student:  *student,
		Metrics:  BuildStudentMetrics(*student),
		Progress: BuildStudentProgress(*student),
	}, nil
}

// Regenerate replaces the roster with a freshly generated one. Intervention
// histories belong to the old roster and start over.
func (s *studentServiceImpl) Regenerate(ctx context.Context) (*repositories.Snapshot, error) {
	s.genMu.Lock()
	students := s.generator.Students(s.size)
	s.genMu.Unlock()

	snap, err := s.rosterRepo.Replace(ctx, students)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to store generated roster")
		return nil, fmt.Errorf("failed to store roster: %w", err)
	}
	s.interventionRepo.Reset()
	s.metrics.RosterGenerated(students)

	s.logger.Info().
		Int64("version", snap.Version).
		Int("students", snap.Len()).
		Msg("Roster generated")
	return snap, nil
}

// ExportCSV writes the filtered roster as CSV and returns the row count
func (s *studentServiceImpl) ExportCSV(ctx context.Context, filter dto.StudentFilter, w io.Writer) (int, error) {
	students, err := s.Filter(ctx, filter)
	if err != nil {
		return 0, err
	}

	if err := export.WriteStudentsCSV(w, students); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write CSV export")
		return 0, fmt.Errorf("failed to export students: %w", err)
	}

	s.publisher.Publish(ctx, notify.Success(msgExported))
	return len(students), nil
}

// FilterStudents applies search and the categorical filters. Search is a
// case-insensitive substring match over name, email and student code.
func FilterStudents(students []models.Student, filter dto.StudentFilter) []models.Student {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Student, 0, len(students))
	for _, st := range students {
		if search != "" &&
			!strings.Contains(strings.ToLower(st.Name), search) &&
			!strings.Contains(strings.ToLower(st.Email), search) &&
			!strings.Contains(strings.ToLower(st.StudentID), search) {
			continue
		}
		if !matches(filter.RiskLevel, string(st.RiskLevel)) ||
			!matches(filter.Class, st.Class) ||
			!matches(filter.Department, st.Department) {
			continue
		}
		out = append(out, st)
	}
	return out
}

func matches(want, got string) bool {
	return want == "" || want == "all" || want == got
}
