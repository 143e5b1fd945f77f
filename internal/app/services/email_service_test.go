package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/pkg/email"
)

type stubSender struct {
	sent []email.Message
	err  error
}

func (s *stubSender) Send(msg email.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func TestEmailServiceSendToGuardian(t *testing.T) {
	repos := newTestRepos(t)
	pub := &recordingPublisher{}
	sender := &stubSender{}
	svc := NewEmailService(repos.RosterRepository, sender, pub, zerolog.Nop())

	resp, err := svc.SendToGuardian(context.Background(), "1", dto.SendEmailRequest{
		To:      "parent@example.com",
		Subject: "Supporting Emma",
		Body:    "Dear parent",
	})
	require.NoError(t, err)
	assert.True(t, resp.Delivered)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "parent@example.com", sender.sent[0].To)
	assert.Equal(t, []string{"Email sent to parent@example.com"}, pub.messages())
}

func TestEmailServiceFailures(t *testing.T) {
	repos := newTestRepos(t)
	pub := &recordingPublisher{}
	svc := NewEmailService(repos.RosterRepository, &stubSender{err: errors.New("smtp down")}, pub, zerolog.Nop())

	_, err := svc.SendToGuardian(context.Background(), "1", dto.SendEmailRequest{To: "parent@example.com", Subject: "s", Body: "b"})
	assert.True(t, errors.Is(err, apperrors.ErrDeliveryFailed))
	assert.Equal(t, "Failed to send email to parent@example.com", pub.last().Message)

	_, err = svc.SendToGuardian(context.Background(), "404", dto.SendEmailRequest{To: "parent@example.com", Subject: "s", Body: "b"})
	assert.True(t, errors.Is(err, apperrors.ErrStudentNotFound))
}
