package postgres

import (
	"database/sql"
	"time"

	"github.com/gridironhq/roster-api/internal/domain/user"
)

type userTableModel struct {
	ID          int64          `db:"id"`
	PublicID    string         `db:"public_id"`
	Username    string         `db:"username"`
	Email       string         `db:"email"`
	Password    string         `db:"password_hash"`
	PhoneNumber sql.NullString `db:"phone_number"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func userFromRow(row userTableModel) user.User {
	return user.User{
		ID:           row.PublicID,
		Username:     row.Username,
		Email:        row.Email,
		PasswordHash: row.Password,
		PhoneNumber:  row.PhoneNumber.String,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

type sessionTableModel struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_public_id"`
	CreatedAt time.Time `db:"created_at"`
	ExpiresAt time.Time `db:"expires_at"`
}

func sessionFromRow(row sessionTableModel) user.Session {
	return user.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
		ExpiresAt: row.ExpiresAt,
	}
}
