package repositories

import (
	"context"
	"sync"

	"github.com/yigit/mentoraid/internal/app/models"
)

// InterventionSeeder returns the starting history of a student
type InterventionSeeder func(studentID string) []models.Intervention

// InterventionRepository keeps intervention histories in memory, newest first
type InterventionRepository struct {
	mu      sync.Mutex
	entries map[string][]models.Intervention
	seeder  InterventionSeeder
}

// NewInterventionRepository creates a repository that lazily seeds each student
// the first time their history is read or written. A nil seeder starts empty.
func NewInterventionRepository(seeder InterventionSeeder) *InterventionRepository {
	return &InterventionRepository{
		entries: make(map[string][]models.Intervention),
		seeder:  seeder,
	}
}

// ListByStudent returns a copy of the student's history
func (r *InterventionRepository) ListByStudent(ctx context.Context, studentID string) ([]models.Intervention, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.historyLocked(studentID)
	out := make([]models.Intervention, len(history))
	copy(out, history)
	return out, nil
}

// Create prepends an intervention to the student's history
func (r *InterventionRepository) Create(ctx context.Context, intervention models.Intervention) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	history := r.historyLocked(intervention.StudentID)
	updated := make([]models.Intervention, 0, len(history)+1)
	updated = append(updated, intervention)
	updated = append(updated, history...)
	r.entries[intervention.StudentID] = updated
	return nil
}

// Reset forgets every history; used when the roster is regenerated
func (r *InterventionRepository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string][]models.Intervention)
}

func (r *InterventionRepository) historyLocked(studentID string) []models.Intervention {
	history, ok := r.entries[studentID]
	if !ok {
		if r.seeder != nil {
			history = r.seeder(studentID)
		}
		r.entries[studentID] = history
	}
	return history
}
