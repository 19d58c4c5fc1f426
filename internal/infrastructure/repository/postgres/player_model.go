package postgres

import (
	"database/sql"
	"time"

	"github.com/gridironhq/roster-api/internal/domain/player"
)

type playerTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	Name          string         `db:"name"`
	Position      string         `db:"position"`
	NFLTeam       string         `db:"nfl_team"`
	Rank          sql.NullInt64  `db:"rank"`
	FantasyPoints sql.NullInt64  `db:"fantasy_points"`
	TeamID        sql.NullString `db:"team_public_id"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

func playerFromRow(row playerTableModel) player.Player {
	return player.Player{
		ID:            row.PublicID,
		Name:          row.Name,
		Position:      player.Position(row.Position),
		NFLTeam:       row.NFLTeam,
		Rank:          nullInt64ToIntPtr(row.Rank),
		FantasyPoints: nullInt64ToIntPtr(row.FantasyPoints),
		TeamID:        nullStringToPtr(row.TeamID),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	out := int(v.Int64)
	return &out
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	out := v.String
	return &out
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}
