package models

// Standing is a team's derived group-stage record. Standings are
// recomputed on demand from completed group matches and never persisted.
type Standing struct {
	Team         Team   `json:"team"`
	Group        string `json:"group"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	Draws        int    `json:"draws"`
	Points       int    `json:"points"`
	ScoreFor     int    `json:"score_for"`
	ScoreAgainst int    `json:"score_against"`
	ScoreDiff    int    `json:"score_diff"`
}
