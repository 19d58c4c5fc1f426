package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridironhq/roster-api/internal/domain/player"
	"github.com/gridironhq/roster-api/internal/domain/roster"
	"github.com/gridironhq/roster-api/internal/domain/season"
	"github.com/gridironhq/roster-api/internal/domain/team"
	"github.com/gridironhq/roster-api/internal/domain/user"
	"github.com/gridironhq/roster-api/internal/platform/id"
	"github.com/gridironhq/roster-api/internal/platform/logging"
)

const (
	teamNameMinLength = 3
	teamNameMaxLength = 100
)

// TeamDetails is a team together with its derived season status and roster.
type TeamDetails struct {
	Team     team.Team
	Archived bool
	Roster   []player.Player
}

// TeamService owns the team lifecycle: creation, rename, delete, and roster
// mutations. Every mutating call takes the verified acting principal and
// checks ownership before anything else.
type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	rules      roster.Rules
	window     season.Window
	idGen      id.Generator
	logger     *logging.Logger
	now        func() time.Time
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	rules roster.Rules,
	window season.Window,
	idGen id.Generator,
	logger *logging.Logger,
) *TeamService {
	if logger == nil {
		logger = logging.NewNop()
	}

	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		rules:      rules,
		window:     window,
		idGen:      idGen,
		logger:     logger,
		now:        time.Now,
	}
}

// CreateTeam creates the acting user's team for the current season. A user
// may hold at most one active team; archived teams from past seasons do not
// count against the limit.
func (s *TeamService) CreateTeam(ctx context.Context, principal user.Principal, name string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.CreateTeam")
	defer span.End()

	name, err := normalizeTeamName(name)
	if err != nil {
		return team.Team{}, err
	}

	existing, err := s.teamRepo.ListByOwner(ctx, principal.UserID)
	if err != nil {
		return team.Team{}, fmt.Errorf("list teams by owner: %w", err)
	}
	for _, item := range existing {
		if s.window.Active(item.CreatedAt) {
			return team.Team{}, fmt.Errorf("%w: team=%s", ErrDuplicateActiveTeam, item.ID)
		}
	}

	teamID, err := s.idGen.NewID("team")
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := team.Team{
		ID:        teamID,
		OwnerID:   principal.UserID,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "owner_id", principal.UserID)
	return item, nil
}

// GetTeam returns the acting user's team with its roster and season status.
func (s *TeamService) GetTeam(ctx context.Context, principal user.Principal, teamID string) (TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetTeam")
	defer span.End()

	item, err := s.getOwnedTeam(ctx, principal, teamID)
	if err != nil {
		return TeamDetails{}, err
	}

	players, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return TeamDetails{}, fmt.Errorf("list team roster: %w", err)
	}

	return TeamDetails{
		Team:     item,
		Archived: !s.window.Active(item.CreatedAt),
		Roster:   players,
	}, nil
}

// ListTeams returns all of the acting user's teams, active and archived.
func (s *TeamService) ListTeams(ctx context.Context, principal user.Principal) ([]TeamDetails, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListTeams")
	defer span.End()

	items, err := s.teamRepo.ListByOwner(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("list teams by owner: %w", err)
	}

	out := make([]TeamDetails, 0, len(items))
	for _, item := range items {
		out = append(out, TeamDetails{
			Team:     item,
			Archived: !s.window.Active(item.CreatedAt),
		})
	}

	return out, nil
}

// RenameTeam changes the team name. Archived teams are read-only.
func (s *TeamService) RenameTeam(ctx context.Context, principal user.Principal, teamID, newName string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RenameTeam")
	defer span.End()

	item, err := s.getOwnedActiveTeam(ctx, principal, teamID)
	if err != nil {
		return team.Team{}, err
	}

	newName, err = normalizeTeamName(newName)
	if err != nil {
		return team.Team{}, err
	}

	item.Name = newName
	item.UpdatedAt = s.now().UTC()
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}

	return item, nil
}

// DeleteTeam removes the team and releases its entire roster back to the free
// pool in one transaction. Unlike renames and roster moves, deletion is
// allowed on archived teams so users can clear out past seasons.
func (s *TeamService) DeleteTeam(ctx context.Context, principal user.Principal, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeleteTeam")
	defer span.End()

	item, err := s.getOwnedTeam(ctx, principal, teamID)
	if err != nil {
		return err
	}

	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}

	s.logger.InfoContext(ctx, "team deleted", "team_id", item.ID, "owner_id", principal.UserID)
	return nil
}

// AddPlayer drafts a free agent onto the team. Checks run in a fixed order:
// ownership, season status, player availability, then roster capacity. The
// final assignment is atomic, so two concurrent drafts of the same player
// resolve to exactly one owner.
func (s *TeamService) AddPlayer(ctx context.Context, principal user.Principal, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayer")
	defer span.End()

	item, err := s.getOwnedActiveTeam(ctx, principal, teamID)
	if err != nil {
		return err
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	candidate, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	if !candidate.FreeAgent() {
		return fmt.Errorf("%w: player=%s", player.ErrAlreadyOwned, playerID)
	}

	current, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list team roster: %w", err)
	}
	if err := s.rules.CanAdd(current, candidate.Position); err != nil {
		return err
	}

	// The free-agent check above is advisory only; Assign re-checks
	// ownership atomically and loses cleanly when another draft races in.
	if err := s.playerRepo.Assign(ctx, playerID, item.ID); err != nil {
		return fmt.Errorf("assign player: %w", err)
	}

	s.logger.InfoContext(ctx, "player drafted",
		"team_id", item.ID, "player_id", playerID, "position", string(candidate.Position))
	return nil
}

// RemovePlayer drops a player from the team back into the free pool.
func (s *TeamService) RemovePlayer(ctx context.Context, principal user.Principal, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RemovePlayer")
	defer span.End()

	item, err := s.getOwnedActiveTeam(ctx, principal, teamID)
	if err != nil {
		return err
	}

	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	current, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list team roster: %w", err)
	}
	if err := s.rules.CanRemove(current, playerID); err != nil {
		return err
	}

	if err := s.playerRepo.Release(ctx, playerID); err != nil {
		return fmt.Errorf("release player: %w", err)
	}

	s.logger.InfoContext(ctx, "player released", "team_id", item.ID, "player_id", playerID)
	return nil
}

func (s *TeamService) getOwnedTeam(ctx context.Context, principal user.Principal, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	if item.OwnerID != principal.UserID {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotOwner, teamID)
	}

	return item, nil
}

func (s *TeamService) getOwnedActiveTeam(ctx context.Context, principal user.Principal, teamID string) (team.Team, error) {
	item, err := s.getOwnedTeam(ctx, principal, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if !s.window.Active(item.CreatedAt) {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrTeamArchived, item.ID)
	}

	return item, nil
}

func normalizeTeamName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if len(name) < teamNameMinLength || len(name) > teamNameMaxLength {
		return "", fmt.Errorf("%w: team name must be between %d and %d characters",
			ErrInvalidInput, teamNameMinLength, teamNameMaxLength)
	}
	return name, nil
}
