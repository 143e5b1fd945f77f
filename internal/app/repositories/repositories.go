package repositories

import "github.com/yigit/mentoraid/internal/seed"

// Repositories holds all the repository instances
type Repositories struct {
	RosterRepository       *RosterRepository
	InterventionRepository *InterventionRepository
}

// NewRepositories initializes all repositories
func NewRepositories() *Repositories {
	return &Repositories{
		RosterRepository:       NewRosterRepository(),
		InterventionRepository: NewInterventionRepository(seed.Interventions),
	}
}
