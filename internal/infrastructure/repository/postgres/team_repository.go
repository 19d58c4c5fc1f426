package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/roster-api/internal/domain/team"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) Create(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	const query = `
INSERT INTO teams (public_id, owner_public_id, name, created_at, updated_at)
VALUES (:public_id, :owner_public_id, :name, :created_at, :updated_at)`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, teamTableModel{
		PublicID:  t.ID,
		OwnerID:   t.OwnerID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	return nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	const query = `SELECT * FROM teams WHERE public_id = $1`

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by id: %w", err)
	}

	return teamFromRow(row), true, nil
}

func (r *TeamRepository) ListByOwner(ctx context.Context, ownerID string) ([]team.Team, error) {
	const query = `SELECT * FROM teams WHERE owner_public_id = $1 ORDER BY created_at DESC`

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, teamFromRow(row))
	}

	return out, nil
}

func (r *TeamRepository) Update(ctx context.Context, t team.Team) error {
	if err := t.Validate(); err != nil {
		return err
	}

	const query = `
UPDATE teams
SET name = :name, updated_at = :updated_at
WHERE public_id = :public_id`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, teamTableModel{
		PublicID:  t.ID,
		Name:      t.Name,
		UpdatedAt: t.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("update team: %w", err)
	}

	return nil
}

// Delete releases the team's roster and removes the team in one transaction.
// Either both writes land or neither does.
func (r *TeamRepository) Delete(ctx context.Context, teamID string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for team delete: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const releaseQuery = `
UPDATE players
SET team_public_id = NULL, updated_at = NOW()
WHERE team_public_id = $1`

	if _, err := tx.ExecContext(ctx, releaseQuery, teamID); err != nil {
		return fmt.Errorf("release roster for team delete: %w", err)
	}

	const deleteQuery = `DELETE FROM teams WHERE public_id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, teamID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit team delete: %w", err)
	}

	return nil
}
