package standings

import (
	"github.com/google/uuid"

	"github.com/wardlight/pickems-engine/models"
)

// GenerateGroupMatches creates the round-robin fixtures missing for a
// group: one match per unordered pair of group members, initialized to
// upcoming with zero scores. Pairs that already have a match in the
// group (in either orientation) are skipped, so regeneration never
// duplicates fixtures. Only the newly created matches are returned.
//
// For a group of k teams with no existing fixtures this yields exactly
// k*(k-1)/2 matches.
func GenerateGroupMatches(tournamentID, group string, teams []models.Team, existing []models.GroupMatch) []models.GroupMatch {
	members := make([]models.Team, 0, len(teams))
	for _, team := range teams {
		if team.GroupName() == group {
			members = append(members, team)
		}
	}

	seen := make(map[[2]string]bool, len(existing))
	for _, match := range existing {
		if match.Group != group {
			continue
		}
		seen[pairKey(match.Team1ID, match.Team2ID)] = true
	}

	created := make([]models.GroupMatch, 0)
	for i := 0; i < len(members); i++ {
		for j := i + 1; j < len(members); j++ {
			key := pairKey(members[i].ID, members[j].ID)
			if seen[key] {
				continue
			}
			seen[key] = true
			created = append(created, models.GroupMatch{
				ID:           uuid.NewString(),
				TournamentID: tournamentID,
				Group:        group,
				Team1ID:      members[i].ID,
				Team2ID:      members[j].ID,
				Status:       models.MatchStatusUpcoming,
			})
		}
	}
	return created
}

func pairKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}
