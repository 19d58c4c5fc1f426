package player

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Position represents the roster slot categories used by the league.
type Position string

const (
	PositionQuarterback  Position = "QB"
	PositionRunningBack  Position = "RB"
	PositionWideReceiver Position = "WR"
	PositionTightEnd     Position = "TE"
)

var AllPositions = map[Position]struct{}{
	PositionQuarterback:  {},
	PositionRunningBack:  {},
	PositionWideReceiver: {},
	PositionTightEnd:     {},
}

var (
	ErrUnknownPosition = errors.New("unknown player position")
	// ErrAlreadyOwned is returned when an assignment races or repeats:
	// the player's ownership reference is already set, league-wide.
	ErrAlreadyOwned = errors.New("player is already owned by a team")
)

// ParsePosition derives a roster position from a raw catalog label such as
// "WR1" or "rb12" by keeping only the alphabetic characters, upper-cased.
func ParsePosition(raw string) (Position, error) {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsLetter(r) {
			b.WriteRune(unicode.ToUpper(r))
		}
	}

	pos := Position(b.String())
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPosition, raw)
	}

	return pos, nil
}

// Player is a league-wide catalog entry. A nil TeamID means free agent.
type Player struct {
	ID            string
	Name          string
	Position      Position
	NFLTeam       string
	Rank          *int
	FantasyPoints *int
	TeamID        *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p Player) FreeAgent() bool {
	return p.TeamID == nil
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPosition, p.Position)
	}
	if p.NFLTeam == "" {
		return fmt.Errorf("player nfl team is required")
	}

	return nil
}

// CatalogRecord is one raw row from the rankings catalog source. Position and
// rank are kept raw here; normalization happens during ingestion.
type CatalogRecord struct {
	Name        string
	RawPosition string
	NFLTeam     string
	RawRank     string
}
