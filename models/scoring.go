package models

// ScoringRules maps a bracket round to the points a correct pick on a
// match of that round is worth. Persisted as a single admin-editable
// configuration record.
type ScoringRules map[Round]int

// UserPicks holds one user's predictions across all tournaments:
// tournament ID -> match ID -> predicted winning team ID. Picks are not
// referentially tied to the teams currently occupying a match slot; a
// pick simply stops matching if the admin reassigns the slot.
type UserPicks struct {
	UserID string                       `json:"user_id"`
	Picks  map[string]map[string]string `json:"picks"`
}

// PickFor returns the user's predicted team for a match, or "" when the
// user made no pick. Absence of a pick is not an error.
func (u UserPicks) PickFor(tournamentID, matchID string) string {
	return u.Picks[tournamentID][matchID]
}

// UserScore is the sole persisted output of the scoring sweep. The
// score is always fully overwritten, never incremented.
type UserScore struct {
	UserID   string `json:"user_id" db:"user_id"`
	Username string `json:"username,omitempty" db:"username"`
	Score    int    `json:"score" db:"score"`
}
