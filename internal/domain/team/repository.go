package team

import "context"

type Repository interface {
	Create(ctx context.Context, t Team) error
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Team, error)
	Update(ctx context.Context, t Team) error

	// Delete removes the team and releases every player it owns back to the
	// free pool in one transaction, so a crash mid-delete cannot leave
	// players owned by a team that no longer exists.
	Delete(ctx context.Context, teamID string) error
}
