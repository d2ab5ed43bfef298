package standings

import (
	"sort"

	"github.com/wardlight/pickems-engine/models"
)

// DefaultQualifiersPerGroup is how many teams advance from each group
// unless configured otherwise.
const DefaultQualifiersPerGroup = 2

const (
	pointsForWin  = 3
	pointsForDraw = 1
)

// Calculate computes round-robin standings per group from the roster
// and the tournament's group matches. Only completed matches count.
// Within each group the standings are ordered by points desc, wins
// desc, score difference desc; ties beyond that keep roster order (the
// sort is stable, further tie-breaks such as head-to-head are
// deliberately not applied).
//
// The function is pure: rerunning it on unchanged input yields
// identical output, regardless of the order matches arrive in.
func Calculate(teams []models.Team, matches []models.GroupMatch) map[string][]models.Standing {
	byGroup := make(map[string]map[string]*models.Standing)

	for _, team := range teams {
		group := team.GroupName()
		if group == "" {
			continue
		}
		if byGroup[group] == nil {
			byGroup[group] = make(map[string]*models.Standing)
		}
		byGroup[group][team.ID] = &models.Standing{Team: team, Group: group}
	}

	for _, match := range matches {
		if match.Status != models.MatchStatusCompleted {
			continue
		}
		s1 := byGroup[match.Group][match.Team1ID]
		s2 := byGroup[match.Group][match.Team2ID]
		if s1 == nil || s2 == nil {
			// Match references teams outside the group's roster.
			continue
		}

		s1.ScoreFor += match.Team1Score
		s1.ScoreAgainst += match.Team2Score
		s2.ScoreFor += match.Team2Score
		s2.ScoreAgainst += match.Team1Score

		switch {
		case match.Team1Score > match.Team2Score:
			s1.Wins++
			s1.Points += pointsForWin
			s2.Losses++
		case match.Team2Score > match.Team1Score:
			s2.Wins++
			s2.Points += pointsForWin
			s1.Losses++
		default:
			s1.Draws++
			s2.Draws++
			s1.Points += pointsForDraw
			s2.Points += pointsForDraw
		}
	}

	result := make(map[string][]models.Standing, len(byGroup))
	for group, standingsByTeam := range byGroup {
		rows := make([]models.Standing, 0, len(standingsByTeam))
		for _, team := range teams {
			if s, ok := standingsByTeam[team.ID]; ok && team.GroupName() == group {
				s.ScoreDiff = s.ScoreFor - s.ScoreAgainst
				rows = append(rows, *s)
			}
		}
		sortStandings(rows)
		result[group] = rows
	}
	return result
}

func sortStandings(rows []models.Standing) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].Wins != rows[j].Wins {
			return rows[i].Wins > rows[j].Wins
		}
		return rows[i].ScoreDiff > rows[j].ScoreDiff
	})
}

// QualifiedTeams returns the top perGroup teams of every group,
// concatenated in group-then-rank order (groups sorted by name so the
// output is deterministic). This is the eligible pool handed to the
// bracket builder. An empty group simply contributes no qualifiers.
func QualifiedTeams(teams []models.Team, matches []models.GroupMatch, perGroup int) []models.Team {
	if perGroup <= 0 {
		perGroup = DefaultQualifiersPerGroup
	}
	byGroup := Calculate(teams, matches)

	groups := make([]string, 0, len(byGroup))
	for group := range byGroup {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	var qualified []models.Team
	for _, group := range groups {
		rows := byGroup[group]
		limit := perGroup
		if limit > len(rows) {
			limit = len(rows)
		}
		for i := 0; i < limit; i++ {
			qualified = append(qualified, rows[i].Team)
		}
	}
	return qualified
}
