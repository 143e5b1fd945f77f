package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/repositories"
	"github.com/yigit/mentoraid/internal/pkg/notify"
	"github.com/yigit/mentoraid/internal/seed"
)

// recordingPublisher keeps every published notification
type recordingPublisher struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (p *recordingPublisher) Publish(ctx context.Context, n notify.Notification) notify.Notification {
	if recipient, ok := notify.RecipientFrom(ctx); ok && n.Recipient == "" {
		n.Recipient = recipient
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
	return n
}

func (p *recordingPublisher) messages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.sent))
	for i, n := range p.sent {
		out[i] = n.Message
	}
	return out
}

func (p *recordingPublisher) last() notify.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sent) == 0 {
		return notify.Notification{}
	}
	return p.sent[len(p.sent)-1]
}

var fixedNow = time.Date(2024, time.January, 20, 12, 0, 0, 0, time.UTC)

func testStudents() []models.Student {
	return []models.Student{
		{ID: "1", Name: "Emma Thompson", Email: "emma.thompson@school.edu", StudentID: "STU0001", Class: "10A", Department: "Science", Attendance: 62, AverageMarks: 55, FeeStatus: models.FeeOverdue, RiskLevel: models.RiskHigh, RiskScore: 76},
		{ID: "2", Name: "Liam Johnson", Email: "liam.johnson@school.edu", StudentID: "STU0002", Class: "10B", Department: "Arts", Attendance: 70, AverageMarks: 60, FeeStatus: models.FeePending, RiskLevel: models.RiskMedium, RiskScore: 51},
		{ID: "3", Name: "Olivia Brown", Email: "olivia.brown@school.edu", StudentID: "STU0003", Class: "10A", Department: "Science", Attendance: 95, AverageMarks: 88, FeeStatus: models.FeePaid, RiskLevel: models.RiskLow, RiskScore: 8},
		{ID: "4", Name: "Noah Davis", Email: "noah.davis@school.edu", StudentID: "STU0004", Class: "11A", Department: "Commerce", Attendance: 88, AverageMarks: 72, FeeStatus: models.FeePaid, RiskLevel: models.RiskLow, RiskScore: 18},
	}
}

func newTestRepos(t *testing.T) *repositories.Repositories {
	t.Helper()
	repos := repositories.NewRepositories()
	_, err := repos.RosterRepository.Replace(context.Background(), testStudents())
	require.NoError(t, err)
	return repos
}

func newTestStudentService(repos *repositories.Repositories, pub notify.Publisher) StudentService {
	gen := seed.NewGenerator(42).WithClock(func() time.Time { return fixedNow })
	return NewStudentService(repos.RosterRepository, repos.InterventionRepository, gen, 20, pub, nil, zerolog.Nop())
}
