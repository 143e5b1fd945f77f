package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/repositories"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

const (
	msgMissingFields     = "Please fill in all required fields."
	msgInterventionSaved = "Intervention logged successfully!"
)

// InterventionService manages intervention histories
type InterventionService interface {
	List(ctx context.Context, studentID string) ([]models.Intervention, error)
	Log(ctx context.Context, studentID string, mentor models.User, req dto.CreateInterventionRequest) (*models.Intervention, error)
}

// interventionServiceImpl implements InterventionService
type interventionServiceImpl struct {
	rosterRepo       *repositories.RosterRepository
	interventionRepo *repositories.InterventionRepository
	publisher        notify.Publisher
	now              func() time.Time
	logger           zerolog.Logger
}

// NewInterventionService creates a new InterventionService
func NewInterventionService(
	rosterRepo *repositories.RosterRepository,
	interventionRepo *repositories.InterventionRepository,
	publisher notify.Publisher,
	logger zerolog.Logger,
) InterventionService {
	return &interventionServiceImpl{
		rosterRepo:       rosterRepo,
		interventionRepo: interventionRepo,
		publisher:        publisher,
		now:              time.Now,
		logger:           logger,
	}
}

// List returns the student's history, newest first
func (s *interventionServiceImpl) List(ctx context.Context, studentID string) ([]models.Intervention, error) {
	if _, err := s.rosterRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.interventionRepo.ListByStudent(ctx, studentID)
}

// Log records a new intervention by mentor
func (s *interventionServiceImpl) Log(ctx context.Context, studentID string, mentor models.User, req dto.CreateInterventionRequest) (*models.Intervention, error) {
	if _, err := s.rosterRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		s.publisher.Publish(ctx, notify.Error(msgMissingFields))
		return nil, apperrors.NewValidationError(msgMissingFields)
	}

	interventionType := models.InterventionType(req.Type)
	if interventionType == "" {
		interventionType = models.InterventionMeeting
	}
	outcome := models.InterventionOutcome(req.Outcome)
	if outcome == "" {
		outcome = models.OutcomeScheduled
	}

	intervention := models.Intervention{
		ID:          uuid.New().String(),
		StudentID:   studentID,
		Date:        s.now().UTC(),
		Type:        interventionType,
		Title:       title,
		Description: description,
		Outcome:     outcome,
		Mentor:      mentor.Name,
	}

	if err := s.interventionRepo.Create(ctx, intervention); err != nil {
		s.logger.Error().Err(err).Str("studentID", studentID).Msg("Failed to store intervention")
		return nil, err
	}

	s.logger.Info().
		Str("studentID", studentID).
		Str("type", string(intervention.Type)).
		Str("mentor", intervention.Mentor).
		Msg("Intervention logged")
	s.publisher.Publish(ctx, notify.Success(msgInterventionSaved))
	return &intervention, nil
}
