package season

import "time"

// Window classifies teams as active or archived relative to one configured
// season start instant. It is process-wide configuration, never per-team
// state, and is re-evaluated on every request rather than stored.
type Window struct {
	Start time.Time
}

func NewWindow(start time.Time) Window {
	return Window{Start: start}
}

// Active reports whether a team created at createdAt belongs to the current
// season. The lower bound is inclusive: a team created exactly at the season
// start is active. There are no grace periods or per-user overrides.
func (w Window) Active(createdAt time.Time) bool {
	return !createdAt.Before(w.Start)
}
