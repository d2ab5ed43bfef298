package brackets

import (
	"errors"
	"fmt"

	"github.com/wardlight/pickems-engine/models"
)

// MaxBracketSize caps the bracket at a round of 16. Larger pools are
// rejected rather than silently truncated.
const MaxBracketSize = 16

var ErrTooManyTeams = errors.New("too many eligible teams for a bracket (maximum 16)")

// entryRoundBySize maps a bracket size to the name of its first round.
var entryRoundBySize = map[int]models.Round{
	16: models.RoundOf16,
	8:  models.Quarterfinals,
	4:  models.Semifinals,
	2:  models.Finals,
}

// BracketSize returns the smallest power of two in {2,4,8,16} covering
// n teams. n must be between 1 and MaxBracketSize.
func BracketSize(n int) (int, error) {
	if n > MaxBracketSize {
		return 0, fmt.Errorf("%w: got %d", ErrTooManyTeams, n)
	}
	size := 2
	for size < n {
		size *= 2
	}
	return size, nil
}

// RoundPlan returns the ordered list of rounds for n eligible teams:
// exactly one entry round sized by the covering power of two, each
// following round halved down to the finals, plus one third-place match
// when the plan includes semifinals. n = 0 yields an empty plan.
func RoundPlan(n int) ([]models.Round, error) {
	if n == 0 {
		return nil, nil
	}
	size, err := BracketSize(n)
	if err != nil {
		return nil, err
	}
	var plan []models.Round
	for s := size; s >= 2; s /= 2 {
		plan = append(plan, entryRoundBySize[s])
	}
	if size >= 4 {
		plan = append(plan, models.ThirdPlace)
	}
	return plan, nil
}

// MatchesInRound returns how many matches a round holds for a bracket
// of the given size. The third-place tier is always a single match.
func MatchesInRound(round models.Round, bracketSize int) int {
	if round == models.ThirdPlace {
		return 1
	}
	for s := bracketSize; s >= 2; s /= 2 {
		if entryRoundBySize[s] == round {
			return s / 2
		}
	}
	return 0
}

// Build produces a fresh bracket skeleton for the eligible pool. All
// team slots start unset: the admin assigns them explicitly per match,
// the builder does not seed or propagate winners. The single exception
// is a pool of one, which yields a finals match with that team in the
// first slot and the other left TBD.
//
// The result replaces any previously stored bracket wholesale.
func Build(eligible []models.Team) ([]models.BracketMatch, error) {
	n := len(eligible)
	plan, err := RoundPlan(n)
	if err != nil {
		return nil, err
	}
	if len(plan) == 0 {
		return []models.BracketMatch{}, nil
	}

	size, _ := BracketSize(n)

	matches := make([]models.BracketMatch, 0, size)
	for _, round := range plan {
		count := MatchesInRound(round, size)
		for i := 0; i < count; i++ {
			matches = append(matches, models.BracketMatch{
				ID:          fmt.Sprintf("%s_%d", round, i),
				Round:       round,
				MatchNumber: i + 1,
			})
		}
	}

	if n == 1 {
		id := eligible[0].ID
		matches[0].Team1ID = &id
	}

	return matches, nil
}
