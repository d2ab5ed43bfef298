package models

type MatchStatus string

const (
	MatchStatusUpcoming  MatchStatus = "upcoming"
	MatchStatusLive      MatchStatus = "live"
	MatchStatusCompleted MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusUpcoming, MatchStatusLive, MatchStatusCompleted:
		return true
	}
	return false
}

// GroupMatch is a single round-robin fixture within a group. Only
// completed matches count towards standings.
type GroupMatch struct {
	ID           string      `json:"id" db:"id"`
	TournamentID string      `json:"tournament_id" db:"tournament_id"`
	Group        string      `json:"group" db:"group_name"`
	Team1ID      string      `json:"team1_id" db:"team1_id"`
	Team2ID      string      `json:"team2_id" db:"team2_id"`
	Team1Score   int         `json:"team1_score" db:"team1_score"`
	Team2Score   int         `json:"team2_score" db:"team2_score"`
	Status       MatchStatus `json:"status" db:"status"`
}

// Round is a named tier within the elimination bracket.
type Round string

const (
	RoundOf16     Round = "round_of_16"
	Quarterfinals Round = "quarterfinals"
	Semifinals    Round = "semifinals"
	ThirdPlace    Round = "third_place"
	Finals        Round = "finals"
)

func (r Round) Valid() bool {
	switch r {
	case RoundOf16, Quarterfinals, Semifinals, ThirdPlace, Finals:
		return true
	}
	return false
}

// BracketMatch is one elimination match. Team slots are assigned by the
// admin and may be nil ("TBD"). WinnerID is derived from the scores by
// the outcome resolver and is never set directly.
type BracketMatch struct {
	ID          string  `json:"id" db:"id"`
	Round       Round   `json:"round" db:"round"`
	MatchNumber int     `json:"match_number" db:"match_number"`
	Team1ID     *string `json:"team1_id,omitempty" db:"team1_id"`
	Team2ID     *string `json:"team2_id,omitempty" db:"team2_id"`
	Team1Score  int     `json:"team1_score" db:"team1_score"`
	Team2Score  int     `json:"team2_score" db:"team2_score"`
	WinnerID    *string `json:"winner_id,omitempty" db:"winner_id"`
}
