package player

import "context"

// Repository is the single source of truth for player ownership.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)

	// ListFree returns free agents ordered by rank ascending (unranked last),
	// then name ascending. An empty position means no filter.
	ListFree(ctx context.Context, pos Position) ([]Player, error)

	ListByTeam(ctx context.Context, teamID string) ([]Player, error)

	// Assign sets the player's owning team. The ownership check and the write
	// are one atomic step; a player whose ownership reference is already set
	// yields ErrAlreadyOwned, and concurrent assigns of the same free player
	// let exactly one caller through.
	Assign(ctx context.Context, playerID, teamID string) error

	// Release clears the ownership reference. Releasing an already-free
	// player is a no-op, not an error.
	Release(ctx context.Context, playerID string) error

	// UpsertCatalog inserts a new free player or, when a row keyed by
	// (name, position, nfl_team) already exists, updates only its rank.
	// Ownership and fantasy points are never touched. candidateID is used
	// only when a new row is created; the returned flag reports whether one
	// was.
	UpsertCatalog(ctx context.Context, candidateID, name string, pos Position, nflTeam string, rank *int) (bool, error)
}
