package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/gridironhq/roster-api/internal/domain/player"
)

// PlayerService serves the league-wide player pool read paths.
type PlayerService struct {
	playerRepo player.Repository
}

func NewPlayerService(playerRepo player.Repository) *PlayerService {
	return &PlayerService{playerRepo: playerRepo}
}

// ListFreeAgents returns unowned players ordered by rank (unranked last),
// then name. rawPos optionally narrows the list to one position; it accepts
// the same loose labels the catalog uses ("WR", "wr1").
func (s *PlayerService) ListFreeAgents(ctx context.Context, rawPos string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListFreeAgents")
	defer span.End()

	var pos player.Position
	if strings.TrimSpace(rawPos) != "" {
		parsed, err := player.ParsePosition(rawPos)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		pos = parsed
	}

	items, err := s.playerRepo.ListFree(ctx, pos)
	if err != nil {
		return nil, fmt.Errorf("list free agents: %w", err)
	}

	return items, nil
}

func (s *PlayerService) GetPlayer(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.GetPlayer")
	defer span.End()

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	return item, nil
}
