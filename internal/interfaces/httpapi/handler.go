package httpapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/gridironhq/roster-api/internal/domain/player"
	"github.com/gridironhq/roster-api/internal/domain/team"
	"github.com/gridironhq/roster-api/internal/domain/user"
	"github.com/gridironhq/roster-api/internal/platform/logging"
	"github.com/gridironhq/roster-api/internal/usecase"
)

type Handler struct {
	authService      *usecase.AuthService
	teamService      *usecase.TeamService
	playerService    *usecase.PlayerService
	ingestionService *usecase.IngestionService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	authService *usecase.AuthService,
	teamService *usecase.TeamService,
	playerService *usecase.PlayerService,
	ingestionService *usecase.IngestionService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		authService:      authService,
		teamService:      teamService,
		playerService:    playerService,
		ingestionService: ingestionService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func requirePrincipal(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: missing principal", usecase.ErrUnauthorized)
	}
	return principal, nil
}

type userDTO struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

type sessionDTO struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
}

type playerDTO struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Position      string `json:"position"`
	NFLTeam       string `json:"nflTeam"`
	Rank          *int   `json:"rank"`
	FantasyPoints *int   `json:"fantasyPoints,omitempty"`
	TeamID        string `json:"teamId,omitempty"`
}

func playerToDTO(p player.Player) playerDTO {
	dto := playerDTO{
		ID:            p.ID,
		Name:          p.Name,
		Position:      string(p.Position),
		NFLTeam:       p.NFLTeam,
		Rank:          p.Rank,
		FantasyPoints: p.FantasyPoints,
	}
	if p.TeamID != nil {
		dto.TeamID = *p.TeamID
	}
	return dto
}

func playersToDTOs(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

type teamDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Archived  bool   `json:"archived"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func teamToDTO(t team.Team, archived bool) teamDTO {
	return teamDTO{
		ID:        t.ID,
		Name:      t.Name,
		Archived:  archived,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

type teamDetailsDTO struct {
	teamDTO
	Roster []playerDTO `json:"roster"`
}

func teamDetailsToDTO(details usecase.TeamDetails) teamDetailsDTO {
	return teamDetailsDTO{
		teamDTO: teamToDTO(details.Team, details.Archived),
		Roster:  playersToDTOs(details.Roster),
	}
}
