package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlight/pickems-engine/models"
)

func newStandingsFixture(teams []models.Team, matches []models.GroupMatch) (*fakeGroupMatchRepo, StandingsService) {
	tournamentRepo := newFakeTournamentRepo(
		models.Tournament{ID: "t1", Name: "Worlds", Status: models.StatusActive},
	)
	teamRepo := &fakeTeamRepo{byTournament: map[string][]models.Team{"t1": teams}}
	groupMatchRepo := &fakeGroupMatchRepo{}
	if matches != nil {
		groupMatchRepo.byTournament = map[string][]models.GroupMatch{"t1": matches}
	}
	return groupMatchRepo, NewStandingsService(tournamentRepo, teamRepo, groupMatchRepo, 2)
}

func groupTeams(group string, ids ...string) []models.Team {
	teams := make([]models.Team, len(ids))
	for i, id := range ids {
		teams[i] = models.Team{ID: id, TournamentID: "t1", Name: id, Group: &group}
	}
	return teams
}

func TestGenerateGroupMatchesIdempotent(t *testing.T) {
	groupMatchRepo, svc := newStandingsFixture(groupTeams("A", "a", "b", "c"), nil)

	created, err := svc.GenerateGroupMatches(context.Background(), "t1", "A")
	require.NoError(t, err)
	assert.Len(t, created, 3) // 3 teams, every unordered pair once

	// A second generation finds every pair already present.
	created, err = svc.GenerateGroupMatches(context.Background(), "t1", "A")
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.Equal(t, 1, groupMatchRepo.replaceCalls, "nothing to create, nothing to persist")
	assert.Len(t, groupMatchRepo.byTournament["t1"], 3)
}

func TestGenerateGroupMatchesEmptyGroup(t *testing.T) {
	_, svc := newStandingsFixture(groupTeams("A", "a", "b"), nil)

	_, err := svc.GenerateGroupMatches(context.Background(), "t1", "B")
	assert.ErrorIs(t, err, ErrGroupHasNoTeams)
}

func TestUpdateGroupMatch(t *testing.T) {
	match := models.GroupMatch{
		ID: "m1", TournamentID: "t1", Group: "A",
		Team1ID: "a", Team2ID: "b", Status: models.MatchStatusUpcoming,
	}
	groupMatchRepo, svc := newStandingsFixture(groupTeams("A", "a", "b"), []models.GroupMatch{match})

	updated, err := svc.UpdateGroupMatch(context.Background(), "t1", "m1", 2, 1, models.MatchStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.Team1Score)
	assert.Equal(t, 1, updated.Team2Score)
	assert.Equal(t, models.MatchStatusCompleted, updated.Status)
	assert.Equal(t, *updated, groupMatchRepo.byTournament["t1"][0])

	t.Run("negative score", func(t *testing.T) {
		_, err := svc.UpdateGroupMatch(context.Background(), "t1", "m1", -1, 0, models.MatchStatusCompleted)
		assert.ErrorIs(t, err, ErrNegativeScore)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.UpdateGroupMatch(context.Background(), "t1", "m1", 1, 0, "abandoned")
		assert.ErrorIs(t, err, ErrInvalidMatchStatus)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := svc.UpdateGroupMatch(context.Background(), "t1", "m99", 1, 0, models.MatchStatusCompleted)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestGroupStandingsAndQualifiers(t *testing.T) {
	teams := append(groupTeams("A", "a", "b"), groupTeams("B", "c", "d")...)
	matches := []models.GroupMatch{
		{ID: "m1", TournamentID: "t1", Group: "A", Team1ID: "a", Team2ID: "b",
			Team1Score: 2, Team2Score: 0, Status: models.MatchStatusCompleted},
		{ID: "m2", TournamentID: "t1", Group: "B", Team1ID: "c", Team2ID: "d",
			Team1Score: 1, Team2Score: 2, Status: models.MatchStatusCompleted},
	}
	_, svc := newStandingsFixture(teams, matches)

	tables, err := svc.GroupStandings(context.Background(), "t1")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "a", tables["A"][0].Team.ID)
	assert.Equal(t, 3, tables["A"][0].Points)
	assert.Equal(t, "d", tables["B"][0].Team.ID)

	qualified, err := svc.Qualifiers(context.Background(), "t1")
	require.NoError(t, err)
	// Group-then-rank order, groups alphabetical.
	ids := make([]string, len(qualified))
	for i, team := range qualified {
		ids[i] = team.ID
	}
	assert.Equal(t, []string{"a", "b", "d", "c"}, ids)
}
