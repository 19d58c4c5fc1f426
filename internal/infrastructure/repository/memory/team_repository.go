package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/gridironhq/roster-api/internal/domain/team"
)

// TeamRepository stores teams in memory. It holds a reference to the player
// repository so Delete can release the roster and drop the team under one
// lock, mirroring the transactional cascade of the SQL version.
type TeamRepository struct {
	mu      sync.RWMutex
	teams   map[string]team.Team
	players *PlayerRepository
}

func NewTeamRepository(players *PlayerRepository) *TeamRepository {
	return &TeamRepository{
		teams:   make(map[string]team.Team),
		players: players,
	}
}

func (r *TeamRepository) Create(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[t.ID]; ok {
		return fmt.Errorf("team %s already exists", t.ID)
	}
	r.teams[t.ID] = t

	return nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.teams[teamID]
	return item, ok, nil
}

func (r *TeamRepository) ListByOwner(_ context.Context, ownerID string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, 2)
	for _, item := range r.teams {
		if item.OwnerID == ownerID {
			out = append(out, item)
		}
	}

	return out, nil
}

func (r *TeamRepository) Update(_ context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[t.ID]; !ok {
		return fmt.Errorf("team %s not found", t.ID)
	}
	r.teams[t.ID] = t

	return nil
}

func (r *TeamRepository) Delete(_ context.Context, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.teams[teamID]; !ok {
		return nil
	}

	if r.players != nil {
		r.players.releaseAllForTeam(teamID)
	}
	delete(r.teams, teamID)

	return nil
}
