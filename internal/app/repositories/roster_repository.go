package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/pkg/apperrors"
)

// Snapshot is one generation of the roster. It is never modified after it is
// stored.
type Snapshot struct {
	Version     int64
	GeneratedAt time.Time
	students    []models.Student
	byID        map[string]int
}

// Students returns a copy of the roster in stored order
func (s *Snapshot) Students() []models.Student {
	out := make([]models.Student, len(s.students))
	copy(out, s.students)
	return out
}

// Len returns the roster size
func (s *Snapshot) Len() int {
	return len(s.students)
}

// RosterRepository holds the current roster snapshot in memory
type RosterRepository struct {
	mu      sync.RWMutex
	current *Snapshot
	now     func() time.Time
}

// NewRosterRepository creates an empty roster repository
func NewRosterRepository() *RosterRepository {
	return &RosterRepository{
		current: &Snapshot{byID: map[string]int{}},
		now:     time.Now,
	}
}

// Replace swaps in a new roster atomically and returns the stored snapshot
func (r *RosterRepository) Replace(ctx context.Context, students []models.Student) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stored := make([]models.Student, len(students))
	copy(stored, students)

	byID := make(map[string]int, len(stored))
	for i, st := range stored {
		if _, dup := byID[st.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate student id %s", apperrors.ErrConflict, st.ID)
		}
		byID[st.ID] = i
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snap := &Snapshot{
		Version:     r.current.Version + 1,
		GeneratedAt: r.now(),
		students:    stored,
		byID:        byID,
	}
	r.current = snap
	return snap, nil
}

// Current returns the snapshot in effect
func (r *RosterRepository) Current() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

// GetAll returns a copy of every student of the current snapshot
func (r *RosterRepository) GetAll(ctx context.Context) ([]models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Current().Students(), nil
}

// GetByID retrieves a student of the current snapshot
func (r *RosterRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snap := r.Current()
	idx, ok := snap.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %s", apperrors.ErrStudentNotFound, id)
	}

	student := snap.students[idx]
	return &student, nil
}
