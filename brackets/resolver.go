package brackets

import "github.com/wardlight/pickems-engine/models"

// WinThreshold is the number of game wins that decides a series
// (best-of-three semantics).
const WinThreshold = 2

// ResolveWinner derives the winner of a match from its current scores:
// a side wins iff its score reached the threshold and strictly exceeds
// the opponent's. Anything else is undecided. The function has no
// memory of prior winners, so lowering a score correctly un-declares a
// previously resolved winner.
func ResolveWinner(team1ID, team2ID *string, team1Score, team2Score int) *string {
	switch {
	case team1ID != nil && team1Score >= WinThreshold && team1Score > team2Score:
		return team1ID
	case team2ID != nil && team2Score >= WinThreshold && team2Score > team1Score:
		return team2ID
	default:
		return nil
	}
}

// ApplyOutcome recomputes and stores the match winner. This is the only
// path that may set WinnerID.
func ApplyOutcome(m *models.BracketMatch) {
	m.WinnerID = ResolveWinner(m.Team1ID, m.Team2ID, m.Team1Score, m.Team2Score)
}
