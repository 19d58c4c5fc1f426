package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gridironhq/roster-api/internal/domain/player"
)

// PlayerRepository keeps the whole player pool in memory. The single mutex
// gives Assign the same lost-update safety the SQL version gets from its
// conditional write.
type PlayerRepository struct {
	mu      sync.RWMutex
	players map[string]player.Player
	now     func() time.Time
}

func NewPlayerRepository(seed []player.Player) *PlayerRepository {
	players := make(map[string]player.Player, len(seed))
	for _, item := range seed {
		players[item.ID] = item
	}

	return &PlayerRepository{
		players: players,
		now:     time.Now,
	}
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.players[playerID]
	return clonePlayer(item), ok, nil
}

func (r *PlayerRepository) ListFree(_ context.Context, pos player.Position) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.players))
	for _, item := range r.players {
		if !item.FreeAgent() {
			continue
		}
		if pos != "" && item.Position != pos {
			continue
		}
		out = append(out, clonePlayer(item))
	}

	sortByRankThenName(out)
	return out, nil
}

func (r *PlayerRepository) ListByTeam(_ context.Context, teamID string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, 8)
	for _, item := range r.players {
		if item.TeamID != nil && *item.TeamID == teamID {
			out = append(out, clonePlayer(item))
		}
	}

	sortByRankThenName(out)
	return out, nil
}

func (r *PlayerRepository) Assign(_ context.Context, playerID, teamID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.players[playerID]
	if !ok {
		return fmt.Errorf("player %s not found", playerID)
	}
	if item.TeamID != nil {
		return fmt.Errorf("%w: player=%s", player.ErrAlreadyOwned, playerID)
	}

	owner := teamID
	item.TeamID = &owner
	item.UpdatedAt = r.now().UTC()
	r.players[playerID] = item

	return nil
}

func (r *PlayerRepository) Release(_ context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.players[playerID]
	if !ok || item.TeamID == nil {
		return nil
	}

	item.TeamID = nil
	item.UpdatedAt = r.now().UTC()
	r.players[playerID] = item

	return nil
}

func (r *PlayerRepository) UpsertCatalog(_ context.Context, candidateID, name string, pos player.Position, nflTeam string, rank *int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for key, item := range r.players {
		if strings.EqualFold(item.Name, name) && item.Position == pos && strings.EqualFold(item.NFLTeam, nflTeam) {
			item.Rank = cloneInt(rank)
			item.UpdatedAt = now
			r.players[key] = item
			return false, nil
		}
	}

	r.players[candidateID] = player.Player{
		ID:        candidateID,
		Name:      name,
		Position:  pos,
		NFLTeam:   nflTeam,
		Rank:      cloneInt(rank),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return true, nil
}

// releaseAllForTeam is called by the team repository while deleting a team.
func (r *PlayerRepository) releaseAllForTeam(teamID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now().UTC()
	for key, item := range r.players {
		if item.TeamID != nil && *item.TeamID == teamID {
			item.TeamID = nil
			item.UpdatedAt = now
			r.players[key] = item
		}
	}
}

func sortByRankThenName(items []player.Player) {
	sort.SliceStable(items, func(i, j int) bool {
		ri, rj := items[i].Rank, items[j].Rank
		switch {
		case ri != nil && rj != nil && *ri != *rj:
			return *ri < *rj
		case ri != nil && rj == nil:
			return true
		case ri == nil && rj != nil:
			return false
		}
		return items[i].Name < items[j].Name
	})
}

func clonePlayer(item player.Player) player.Player {
	item.Rank = cloneInt(item.Rank)
	item.FantasyPoints = cloneInt(item.FantasyPoints)
	if item.TeamID != nil {
		teamID := *item.TeamID
		item.TeamID = &teamID
	}
	return item
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
