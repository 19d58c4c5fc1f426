package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/gridironhq/roster-api/internal/domain/user"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}

	const query = `
INSERT INTO users (public_id, username, email, password_hash, phone_number, created_at, updated_at)
VALUES (:public_id, :username, :email, :password_hash, :phone_number, :created_at, :updated_at)`

	_, err := sqlx.NamedExecContext(ctx, r.db, query, userTableModel{
		PublicID:    u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.PasswordHash,
		PhoneNumber: sql.NullString{String: u.PhoneNumber, Valid: u.PhoneNumber != ""},
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	const query = `SELECT * FROM users WHERE public_id = $1`
	return r.getOne(ctx, query, userID)
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (user.User, bool, error) {
	const query = `SELECT * FROM users WHERE lower(username) = lower($1)`
	return r.getOne(ctx, query, username)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	const query = `SELECT * FROM users WHERE lower(email) = lower($1)`
	return r.getOne(ctx, query, email)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (user.User, bool, error) {
	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, arg); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}

	return userFromRow(row), true, nil
}
