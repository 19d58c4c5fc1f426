package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/roster-api/internal/domain/user"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s user.Session) error {
	const query = `
INSERT INTO sessions (token, user_public_id, created_at, expires_at)
VALUES (:token, :user_public_id, :created_at, :expires_at)`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, sessionTableModel{
		Token:     s.Token,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (user.Session, bool, error) {
	const query = `SELECT * FROM sessions WHERE token = $1`

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, token); err != nil {
		if isNotFound(err) {
			return user.Session{}, false, nil
		}
		return user.Session{}, false, fmt.Errorf("get session: %w", err)
	}

	return sessionFromRow(row), true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE token = $1`

	if _, err := r.db.ExecContext(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}
