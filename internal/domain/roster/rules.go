package roster

import (
	"errors"
	"fmt"

	"github.com/gridironhq/roster-api/internal/domain/player"
)

var (
	ErrRosterFull   = errors.New("roster is full")
	ErrPositionFull = errors.New("position slots are full")
	ErrNotOnTeam    = errors.New("player is not on this team")
)

// Rules stores roster composition limits. One instance is built at startup
// and injected wherever a mutation needs vetting, so the caps live in exactly
// one place.
type Rules struct {
	TotalCap      int
	CapByPosition map[player.Position]int
}

func DefaultRules() Rules {
	return Rules{
		TotalCap: 8,
		CapByPosition: map[player.Position]int{
			player.PositionQuarterback:  2,
			player.PositionRunningBack:  3,
			player.PositionWideReceiver: 3,
			player.PositionTightEnd:     2,
		},
	}
}

// CanAdd decides whether a player of the candidate position may join the
// given roster snapshot. It inspects the snapshot only; no I/O.
func (r Rules) CanAdd(current []player.Player, candidate player.Position) error {
	if len(current) >= r.TotalCap {
		return fmt.Errorf("%w: cap=%d", ErrRosterFull, r.TotalCap)
	}

	posCap, ok := r.CapByPosition[candidate]
	if !ok {
		return fmt.Errorf("%w: %s", player.ErrUnknownPosition, candidate)
	}

	count := 0
	for _, p := range current {
		if p.Position == candidate {
			count++
		}
	}
	if count >= posCap {
		return fmt.Errorf("%w: position=%s cap=%d", ErrPositionFull, candidate, posCap)
	}

	return nil
}

// CanRemove succeeds iff the player appears in the roster snapshot.
func (r Rules) CanRemove(current []player.Player, playerID string) error {
	for _, p := range current {
		if p.ID == playerID {
			return nil
		}
	}

	return fmt.Errorf("%w: player=%s", ErrNotOnTeam, playerID)
}
