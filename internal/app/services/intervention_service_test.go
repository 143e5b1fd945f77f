package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
)

func TestInterventionServiceLog(t *testing.T) {
	repos := newTestRepos(t)
	pub := &recordingPublisher{}
	svc := NewInterventionService(repos.RosterRepository, repos.InterventionRepository, pub, zerolog.Nop())
	ctx := context.Background()
	mentor := models.User{ID: "1", Name: "Jane Mentor", Role: models.RoleMentor}

	seeded, err := svc.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, seeded, 4)

	created, err := svc.Log(ctx, "1", mentor, dto.CreateInterventionRequest{
		Type:        "call",
		Title:       "  Follow-up call ",
		Description: "Checked in about homework.",
	})
	require.NoError(t, err)
	assert.Equal(t, "Follow-up call", created.Title)
	assert.Equal(t, models.InterventionCall, created.Type)
	assert.Equal(t, models.OutcomeScheduled, created.Outcome)
	assert.Equal(t, "Jane Mentor", created.Mentor)
	assert.NotEmpty(t, created.ID)

	history, err := svc.List(ctx, "1")
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, created.ID, history[0].ID)
	assert.Equal(t, []string{msgInterventionSaved}, pub.messages())
}

func TestInterventionServiceRequiresFields(t *testing.T) {
	repos := newTestRepos(t)
	pub := &recordingPublisher{}
	svc := NewInterventionService(repos.RosterRepository, repos.InterventionRepository, pub, zerolog.Nop())

	_, err := svc.Log(context.Background(), "1", models.User{Name: "X"}, dto.CreateInterventionRequest{Type: "meeting", Title: "Only a title"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
	assert.Equal(t, msgMissingFields, apperrors.UserMessage(err))
	assert.Equal(t, []string{msgMissingFields}, pub.messages())
}

func TestInterventionServiceUnknownStudent(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewInterventionService(repos.RosterRepository, repos.InterventionRepository, &recordingPublisher{}, zerolog.Nop())

	_, err := svc.List(context.Background(), "404")
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))
}
