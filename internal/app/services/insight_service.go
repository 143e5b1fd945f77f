package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/repositories"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/metrics"
	"github.com/yigit/mentoraid/internal/pkg/notify"
	"github.com/yigit/mentoraid/internal/pkg/textgen"
)

const msgEmptySyllabus = "Please enter some syllabus text to simplify."

var insightMessages = map[textgen.Kind]string{
	textgen.KindRiskStory:        "Risk story generated successfully!",
	textgen.KindResources:        "Curated resources generated!",
	textgen.KindEmailDraft:       "Email draft generated with positive tone!",
	textgen.KindInterventionPlan: "Comprehensive intervention plan generated!",
	textgen.KindSyllabus:         "Syllabus simplified for student understanding!",
}

// InsightService generates narrative text for a student
type InsightService interface {
	Generate(ctx context.Context, studentID string, kind textgen.Kind, input string) (*dto.InsightResponse, error)
}

// insightServiceImpl implements InsightService
type insightServiceImpl struct {
	rosterRepo *repositories.RosterRepository
	generator  textgen.Generator
	publisher  notify.Publisher
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewInsightService creates a new InsightService
func NewInsightService(
	rosterRepo *repositories.RosterRepository,
	generator textgen.Generator,
	publisher notify.Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) InsightService {
	return &insightServiceImpl{
		rosterRepo: rosterRepo,
		generator:  generator,
		publisher:  publisher,
		metrics:    m,
		logger:     logger,
	}
}

// Generate produces one insight and announces it
func (s *insightServiceImpl) Generate(ctx context.Context, studentID string, kind textgen.Kind, input string) (*dto.InsightResponse, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrUnknownInsightKind, kind)
	}

	student, err := s.rosterRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp, err := s.generator.Generate(ctx, textgen.Request{
		Kind:    kind,
		Student: *student,
		Input:   input,
	})
	s.metrics.InsightGenerated(string(kind), err)

	if err != nil {
		switch {
		case errors.Is(err, textgen.ErrEmptyInput):
			s.publisher.Publish(ctx, notify.Error(msgEmptySyllabus))
			return nil, apperrors.NewCustomError(apperrors.ErrEmptySyllabus, msgEmptySyllabus)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			s.logger.Debug().Err(err).Str("kind", string(kind)).Msg("Insight generation cancelled")
			return nil, err
		default:
			s.logger.Error().Err(err).
				Str("kind", string(kind)).
				Str("studentID", studentID).
				Msg("Insight generation failed")
			return nil, fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
		}
	}

	s.publisher.Publish(ctx, notify.Success(insightMessages[kind]))
	return &dto.InsightResponse{
		Kind:      string(resp.Kind),
		StudentID: student.ID,
		Content:   resp.Content,
	}, nil
}
