package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlight/pickems-engine/models"
)

func newTournamentFixture(tournaments ...models.Tournament) (*fakeTournamentRepo, TournamentService) {
	tournamentRepo := newFakeTournamentRepo(tournaments...)
	svc := NewTournamentService(tournamentRepo, &fakeTeamRepo{}, &fakeGroupMatchRepo{}, &fakeBracketRepo{})
	return tournamentRepo, svc
}

func TestCreateTournament(t *testing.T) {
	repo, svc := newTournamentFixture()

	created, err := svc.Create(context.Background(), "  Worlds 2026  ")
	require.NoError(t, err)
	assert.Equal(t, "Worlds 2026", created.Name)
	assert.Equal(t, models.StatusUpcoming, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.Contains(t, repo.tournaments, created.ID)

	t.Run("blank name", func(t *testing.T) {
		_, err := svc.Create(context.Background(), "   ")
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.ErrorIs(t, err, ErrTournamentNameRequired)
	})
}

func TestUpdateStatusTransitions(t *testing.T) {
	testCases := []struct {
		name    string
		from    models.TournamentStatus
		to      models.TournamentStatus
		wantErr error
	}{
		{"upcoming to active", models.StatusUpcoming, models.StatusActive, nil},
		{"active to completed", models.StatusActive, models.StatusCompleted, nil},
		{"same status is a no-op", models.StatusActive, models.StatusActive, nil},
		{"upcoming cannot complete directly", models.StatusUpcoming, models.StatusCompleted, ErrTournamentInvalidStatusTransition},
		{"completed is terminal", models.StatusCompleted, models.StatusActive, ErrTournamentInvalidStatusTransition},
		{"unknown status", models.StatusUpcoming, "archived", ErrTournamentInvalidStatus},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, svc := newTournamentFixture(models.Tournament{ID: "t1", Name: "Worlds", Status: tc.from})

			updated, err := svc.UpdateStatus(context.Background(), "t1", tc.to)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				assert.Equal(t, tc.from, repo.tournaments["t1"].Status, "status untouched on rejection")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.to, updated.Status)
			assert.Equal(t, tc.to, repo.tournaments["t1"].Status)
		})
	}
}

func TestAddTeamsAssignsIDs(t *testing.T) {
	_, svc := newTournamentFixture(models.Tournament{ID: "t1", Name: "Worlds", Status: models.StatusUpcoming})

	added, err := svc.AddTeams(context.Background(), "t1", []models.Team{
		{Name: "Alpha"}, {Name: "Beta"},
	})
	require.NoError(t, err)
	require.Len(t, added, 2)
	for _, team := range added {
		assert.NotEmpty(t, team.ID)
		assert.Equal(t, "t1", team.TournamentID)
	}

	t.Run("nameless team", func(t *testing.T) {
		_, err := svc.AddTeams(context.Background(), "t1", []models.Team{{Name: " "}})
		assert.ErrorIs(t, err, ErrValidationFailed)
	})
}

func TestGetAttachesChildren(t *testing.T) {
	tournamentRepo := newFakeTournamentRepo(models.Tournament{ID: "t1", Name: "Worlds", Status: models.StatusActive})
	teamRepo := &fakeTeamRepo{byTournament: map[string][]models.Team{
		"t1": {{ID: "a", TournamentID: "t1", Name: "Alpha"}},
	}}
	groupMatchRepo := &fakeGroupMatchRepo{byTournament: map[string][]models.GroupMatch{
		"t1": {{ID: "m1", TournamentID: "t1", Group: "A", Team1ID: "a", Team2ID: "b"}},
	}}
	bracketRepo := &fakeBracketRepo{byTournament: map[string][]models.BracketMatch{
		"t1": {{ID: "finals_0", Round: models.Finals, MatchNumber: 1}},
	}}
	svc := NewTournamentService(tournamentRepo, teamRepo, groupMatchRepo, bracketRepo)

	tournament, err := svc.Get(context.Background(), "t1")
	require.NoError(t, err)
	assert.Len(t, tournament.Teams, 1)
	assert.Len(t, tournament.GroupMatches, 1)
	assert.Len(t, tournament.Bracket, 1)
}
