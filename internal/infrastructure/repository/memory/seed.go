package memory

import (
	"time"

	"github.com/gridironhq/roster-api/internal/domain/player"
)

// SeedPlayers is a small free-agent pool for local development without a
// database or a catalog source. Every seeded player starts unowned.
func SeedPlayers() []player.Player {
	seededAt := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

	rank := func(v int) *int { return &v }

	players := []player.Player{
		{ID: "nfl-qb-01", Name: "Josh Allen", Position: player.PositionQuarterback, NFLTeam: "BUF", Rank: rank(1)},
		{ID: "nfl-qb-02", Name: "Lamar Jackson", Position: player.PositionQuarterback, NFLTeam: "BAL", Rank: rank(2)},
		{ID: "nfl-qb-03", Name: "Patrick Mahomes", Position: player.PositionQuarterback, NFLTeam: "KC", Rank: rank(3)},
		{ID: "nfl-qb-04", Name: "Jalen Hurts", Position: player.PositionQuarterback, NFLTeam: "PHI", Rank: rank(4)},
		{ID: "nfl-rb-01", Name: "Christian McCaffrey", Position: player.PositionRunningBack, NFLTeam: "SF", Rank: rank(1)},
		{ID: "nfl-rb-02", Name: "Bijan Robinson", Position: player.PositionRunningBack, NFLTeam: "ATL", Rank: rank(2)},
		{ID: "nfl-rb-03", Name: "Saquon Barkley", Position: player.PositionRunningBack, NFLTeam: "PHI", Rank: rank(3)},
		{ID: "nfl-rb-04", Name: "Jahmyr Gibbs", Position: player.PositionRunningBack, NFLTeam: "DET", Rank: rank(4)},
		{ID: "nfl-rb-05", Name: "Derrick Henry", Position: player.PositionRunningBack, NFLTeam: "BAL", Rank: rank(5)},
		{ID: "nfl-wr-01", Name: "Ja'Marr Chase", Position: player.PositionWideReceiver, NFLTeam: "CIN", Rank: rank(1)},
		{ID: "nfl-wr-02", Name: "Justin Jefferson", Position: player.PositionWideReceiver, NFLTeam: "MIN", Rank: rank(2)},
		{ID: "nfl-wr-03", Name: "CeeDee Lamb", Position: player.PositionWideReceiver, NFLTeam: "DAL", Rank: rank(3)},
		{ID: "nfl-wr-04", Name: "Amon-Ra St. Brown", Position: player.PositionWideReceiver, NFLTeam: "DET", Rank: rank(4)},
		{ID: "nfl-wr-05", Name: "Puka Nacua", Position: player.PositionWideReceiver, NFLTeam: "LAR", Rank: rank(5)},
		{ID: "nfl-te-01", Name: "Brock Bowers", Position: player.PositionTightEnd, NFLTeam: "LV", Rank: rank(1)},
		{ID: "nfl-te-02", Name: "Trey McBride", Position: player.PositionTightEnd, NFLTeam: "ARI", Rank: rank(2)},
		{ID: "nfl-te-03", Name: "George Kittle", Position: player.PositionTightEnd, NFLTeam: "SF", Rank: rank(3)},
		{ID: "nfl-te-04", Name: "Sam LaPorta", Position: player.PositionTightEnd, NFLTeam: "DET"},
	}

	for i := range players {
		players[i].CreatedAt = seededAt
		players[i].UpdatedAt = seededAt
	}

	return players
}
