package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/roster-api/internal/domain/player"
)

type PlayerRepository struct {
	db *sqlx.DB
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	const query = `SELECT * FROM players WHERE public_id = $1`

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player by id: %w", err)
	}

	return playerFromRow(row), true, nil
}

func (r *PlayerRepository) ListFree(ctx context.Context, pos player.Position) ([]player.Player, error) {
	const query = `
SELECT * FROM players
WHERE team_public_id IS NULL
  AND ($1 = '' OR position = $1)
ORDER BY rank ASC NULLS LAST, name ASC`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, string(pos)); err != nil {
		return nil, fmt.Errorf("list free players: %w", err)
	}

	return playersFromRows(rows), nil
}

func (r *PlayerRepository) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	const query = `
SELECT * FROM players
WHERE team_public_id = $1
ORDER BY rank ASC NULLS LAST, name ASC`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}

	return playersFromRows(rows), nil
}

// Assign claims a free agent for a team. The WHERE clause is the ownership
// check: when another team already holds the player the update matches zero
// rows, so concurrent drafts of the same player produce exactly one winner.
func (r *PlayerRepository) Assign(ctx context.Context, playerID, teamID string) error {
	const query = `
UPDATE players
SET team_public_id = $1, updated_at = NOW()
WHERE public_id = $2 AND team_public_id IS NULL`

	result, err := r.db.ExecContext(ctx, query, teamID, playerID)
	if err != nil {
		return fmt.Errorf("assign player: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("assign player rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: player=%s", player.ErrAlreadyOwned, playerID)
	}

	return nil
}

func (r *PlayerRepository) Release(ctx context.Context, playerID string) error {
	const query = `
UPDATE players
SET team_public_id = NULL, updated_at = NOW()
WHERE public_id = $1 AND team_public_id IS NOT NULL`

	if _, err := r.db.ExecContext(ctx, query, playerID); err != nil {
		return fmt.Errorf("release player: %w", err)
	}

	return nil
}

// UpsertCatalog inserts a catalog row or, on a (name, position, nfl_team)
// conflict, refreshes only the rank. xmax = 0 distinguishes a fresh insert
// from a conflict update on the returned row.
func (r *PlayerRepository) UpsertCatalog(ctx context.Context, candidateID, name string, pos player.Position, nflTeam string, rank *int) (bool, error) {
	const query = `
INSERT INTO players (public_id, name, position, nfl_team, rank, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
ON CONFLICT (name, position, nfl_team)
DO UPDATE SET rank = EXCLUDED.rank, updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

	var inserted bool
	err := r.db.GetContext(ctx, &inserted, query,
		candidateID, name, string(pos), nflTeam, intPtrToNullInt64(rank))
	if err != nil {
		return false, fmt.Errorf("upsert catalog player: %w", err)
	}

	return inserted, nil
}

func playersFromRows(rows []playerTableModel) []player.Player {
	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out
}
