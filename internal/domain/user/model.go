package user

import (
	"fmt"
	"time"
)

// User is an account identity. Identity fields are immutable after signup and
// users are never deleted.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Validate() error {
	if u.ID == "" {
		return fmt.Errorf("user id is required")
	}
	if u.Username == "" {
		return fmt.Errorf("username is required")
	}
	if u.Email == "" {
		return fmt.Errorf("email is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}

	return nil
}

// Principal is the verified acting identity threaded through every mutating
// call. The core trusts it; authentication happens at the edge.
type Principal struct {
	UserID   string
	Username string
}

// Session is an opaque bearer token issued at login.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
}
