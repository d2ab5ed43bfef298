package models

// Team is a roster entry. A team belongs to exactly one tournament and
// is optionally assigned to a group for the round-robin stage.
type Team struct {
	ID           string  `json:"id" db:"id"`
	TournamentID string  `json:"tournament_id" db:"tournament_id"`
	Name         string  `json:"name" db:"name"`
	Region       *string `json:"region,omitempty" db:"region"`
	Logo         *string `json:"logo,omitempty" db:"logo"`
	Tag          *string `json:"tag,omitempty" db:"tag"`
	Group        *string `json:"group,omitempty" db:"group_name"`
}

// GroupName returns the team's group label or "" when the team is not
// assigned to any group.
func (t Team) GroupName() string {
	if t.Group == nil {
		return ""
	}
	return *t.Group
}
