package models

import "time"

// TournamentStatus mirrors the ENUM in the database.
type TournamentStatus string

const (
	StatusUpcoming  TournamentStatus = "upcoming"
	StatusActive    TournamentStatus = "active"
	StatusCompleted TournamentStatus = "completed"
)

func (s TournamentStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusCompleted:
		return true
	}
	return false
}

// Scorable reports whether picks against this tournament count towards
// user scores. Upcoming tournaments are excluded even if their bracket
// already carries results.
func (s TournamentStatus) Scorable() bool {
	return s == StatusActive || s == StatusCompleted
}

// Tournament is the aggregate root: a roster of teams, the group-stage
// fixtures and the elimination bracket.
type Tournament struct {
	ID        string           `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Status    TournamentStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt time.Time        `json:"updated_at" db:"updated_at"`

	// Related entities, populated by services as needed.
	Teams        []Team         `json:"teams,omitempty" db:"-"`
	GroupMatches []GroupMatch   `json:"group_matches,omitempty" db:"-"`
	Bracket      []BracketMatch `json:"bracket,omitempty" db:"-"`
}
