package player

import (
	"errors"
	"testing"
)

func TestParsePosition(t *testing.T) {
	tests := []struct {
		raw  string
		want Position
		ok   bool
	}{
		{raw: "QB", want: PositionQuarterback, ok: true},
		{raw: "WR1", want: PositionWideReceiver, ok: true},
		{raw: "rb12", want: PositionRunningBack, ok: true},
		{raw: " TE3 ", want: PositionTightEnd, ok: true},
		{raw: "K", ok: false},
		{raw: "DST5", ok: false},
		{raw: "", ok: false},
		{raw: "123", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePosition(tt.raw)
			if !tt.ok {
				if !errors.Is(err, ErrUnknownPosition) {
					t.Fatalf("expected ErrUnknownPosition for %q, got %v", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePosition(%q) failed: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Fatalf("ParsePosition(%q) = %s, want %s", tt.raw, got, tt.want)
			}
		})
	}
}

func TestPlayerFreeAgent(t *testing.T) {
	p := Player{ID: "p1", Name: "Test Player", Position: PositionQuarterback, NFLTeam: "KC"}
	if !p.FreeAgent() {
		t.Fatal("player without a team reference should be a free agent")
	}

	teamID := "team-1"
	p.TeamID = &teamID
	if p.FreeAgent() {
		t.Fatal("player with a team reference should not be a free agent")
	}
}
