package domain

import "time"

// Schedule is a stored schedule document. Source holds the text in the
// line-oriented schedule grammar; planning re-parses it unless a graph built
// from the same Version is cached.
type Schedule struct {
	Name      string
	Source    string
	UpdatedAt time.Time
}

// Version identifies this revision of the schedule.
func (s Schedule) Version() string {
	return s.Name + "@" + s.UpdatedAt.UTC().Format(time.RFC3339Nano)
}
