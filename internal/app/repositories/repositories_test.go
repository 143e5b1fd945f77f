package repositories

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
	"github.com/yigit/mentoraid/internal/seed"
)

func roster(ids ...string) []models.Student {
	out := make([]models.Student, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Student{ID: id, Name: "Student " + id, RiskScore: 50})
	}
	return out
}

func TestRosterReplaceAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository()

	snap, err := repo.Replace(ctx, roster("1", "2"))
	require.NoError(t, err)
	assert.Equal(t, int64(1), snap.Version)
	assert.Equal(t, 2, snap.Len())

	student, err := repo.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Student 2", student.Name)

	_, err = repo.GetByID(ctx, "3")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRosterHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository()
	input := roster("1")
	_, err := repo.Replace(ctx, input)
	require.NoError(t, err)

	input[0].Name = "changed"
	all, err := repo.GetAll(ctx)
	require.NoError(t, err)
	all[0].RiskScore = 99

	student, err := repo.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Student 1", student.Name)
	assert.Equal(t, 50, student.RiskScore)
}

func TestRosterReplaceSwapsWholeSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository()
	_, err := repo.Replace(ctx, roster("1", "2", "3"))
	require.NoError(t, err)
	before := repo.Current()

	_, err = repo.Replace(ctx, roster("9"))
	require.NoError(t, err)

	assert.Equal(t, 3, before.Len())
	assert.Equal(t, 1, repo.Current().Len())
	assert.Equal(t, int64(2), repo.Current().Version)
	_, err = repo.GetByID(ctx, "1")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
}

func TestRosterRejectsDuplicateIDs(t *testing.T) {
	_, err := NewRosterRepository().Replace(context.Background(), roster("1", "1"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
}

func TestRosterConcurrentReadsDuringReplace(t *testing.T) {
	ctx := context.Background()
	repo := NewRosterRepository()
	_, err := repo.Replace(ctx, roster("1", "2"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = repo.Replace(ctx, roster("1", "2"))
		}()
		go func() {
			defer wg.Done()
			all, err := repo.GetAll(ctx)
			assert.NoError(t, err)
			assert.Len(t, all, 2)
		}()
	}
	wg.Wait()
}

func TestRosterHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewRosterRepository().GetAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestInterventionsSeededAndPrepended(t *testing.T) {
	ctx := context.Background()
	repo := NewInterventionRepository(seed.Interventions)

	history, err := repo.ListByStudent(ctx, "5")
	require.NoError(t, err)
	require.Len(t, history, 4)

	require.NoError(t, repo.Create(ctx, models.Intervention{ID: "new", StudentID: "5", Title: "Call home"}))

	history, err = repo.ListByStudent(ctx, "5")
	require.NoError(t, err)
	require.Len(t, history, 5)
	assert.Equal(t, "new", history[0].ID)

	other, err := repo.ListByStudent(ctx, "6")
	require.NoError(t, err)
	assert.Len(t, other, 4)
}

func TestInterventionsReset(t *testing.T) {
	ctx := context.Background()
	repo := NewInterventionRepository(nil)
	require.NoError(t, repo.Create(ctx, models.Intervention{ID: "a", StudentID: "1"}))

	repo.Reset()

	history, err := repo.ListByStudent(ctx, "1")
	require.NoError(t, err)
	assert.Empty(t, history)
}
