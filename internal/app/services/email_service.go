package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/repositories"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/email"
	"github.com/yigit/mentoraid/internal/pkg/notify"
)

// EmailService sends guardian emails about a student
type EmailService interface {
	SendToGuardian(ctx context.Context, studentID string, req dto.SendEmailRequest) (*dto.SendEmailResponse, error)
}

// emailServiceImpl implements EmailService
type emailServiceImpl struct {
	rosterRepo *repositories.RosterRepository
	sender     email.Sender
	publisher  notify.Publisher
	logger     zerolog.Logger
}

// NewEmailService creates a new EmailService
func NewEmailService(
	rosterRepo *repositories.RosterRepository,
	sender email.Sender,
	publisher notify.Publisher,
	logger zerolog.Logger,
) EmailService {
	return &emailServiceImpl{
		rosterRepo: rosterRepo,
		sender:     sender,
		publisher:  publisher,
		logger:     logger,
	}
}

// SendToGuardian delivers a drafted email
func (s *emailServiceImpl) SendToGuardian(ctx context.Context, studentID string, req dto.SendEmailRequest) (*dto.SendEmailResponse, error) {
	student, err := s.rosterRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	err = s.sender.Send(email.Message{
		To:      req.To,
		ToName:  req.ToName,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		s.logger.Error().Err(err).
			Str("studentID", student.ID).
			Str("to", req.To).
			Msg("Failed to send guardian email")
		s.publisher.Publish(ctx, notify.Error("Failed to send email to "+req.To))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDeliveryFailed, err)
	}

	s.logger.Info().Str("studentID", student.ID).Str("to", req.To).Msg("Guardian email sent")
	s.publisher.Publish(ctx, notify.Success("Email sent to "+req.To))
	return &dto.SendEmailResponse{
		StudentID: student.ID,
		To:        req.To,
		Delivered: true,
	}, nil
}
