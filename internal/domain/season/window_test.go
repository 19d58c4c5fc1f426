package season

import (
	"testing"
	"time"
)

func TestWindowActiveBoundary(t *testing.T) {
	start := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	window := NewWindow(start)

	tests := []struct {
		name      string
		createdAt time.Time
		active    bool
	}{
		{
			name:      "created exactly at season start is active",
			createdAt: start,
			active:    true,
		},
		{
			name:      "created one second before season start is archived",
			createdAt: start.Add(-time.Second),
			active:    false,
		},
		{
			name:      "created well after season start is active",
			createdAt: start.AddDate(0, 2, 10),
			active:    true,
		},
		{
			name:      "created in the prior season is archived",
			createdAt: start.AddDate(-1, 0, 0),
			active:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := window.Active(tt.createdAt); got != tt.active {
				t.Fatalf("Active(%v) = %t, want %t", tt.createdAt, got, tt.active)
			}
		})
	}
}

func TestWindowRolloverArchivesOldTeams(t *testing.T) {
	createdAt := time.Date(2025, 10, 5, 18, 30, 0, 0, time.UTC)

	current := NewWindow(time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	if !current.Active(createdAt) {
		t.Fatal("team created during the season should be active")
	}

	// A new season start is configured; the same team becomes archived with
	// no stored state change.
	next := NewWindow(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	if next.Active(createdAt) {
		t.Fatal("team from a prior season should be archived after rollover")
	}
}
