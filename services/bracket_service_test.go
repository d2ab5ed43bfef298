package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/repositories"
)

func newBracketFixture(teams ...models.Team) (*fakeBracketRepo, BracketService) {
	tournamentRepo := newFakeTournamentRepo(
		models.Tournament{ID: "t1", Name: "Worlds", Status: models.StatusActive},
	)
	teamRepo := &fakeTeamRepo{byTournament: map[string][]models.Team{"t1": teams}}
	groupMatchRepo := &fakeGroupMatchRepo{}
	bracketRepo := &fakeBracketRepo{}

	standingsService := NewStandingsService(tournamentRepo, teamRepo, groupMatchRepo, 2)
	svc := NewBracketService(tournamentRepo, teamRepo, groupMatchRepo, bracketRepo, standingsService)
	return bracketRepo, svc
}

func rosterOf(ids ...string) []models.Team {
	teams := make([]models.Team, len(ids))
	for i, id := range ids {
		teams[i] = models.Team{ID: id, TournamentID: "t1", Name: id}
	}
	return teams
}

func TestInitializeFromRoster(t *testing.T) {
	bracketRepo, svc := newBracketFixture(rosterOf("a", "b", "c", "d")...)

	matches, err := svc.Initialize(context.Background(), "t1", PoolRoster)
	require.NoError(t, err)
	require.Len(t, matches, 4) // 2 semifinals + finals + third place
	assert.Equal(t, models.Semifinals, matches[0].Round)

	t.Run("reinitializing replaces the stored bracket", func(t *testing.T) {
		again, err := svc.Initialize(context.Background(), "t1", PoolRoster)
		require.NoError(t, err)
		assert.Equal(t, matches, again)
		assert.Equal(t, 2, bracketRepo.replaceCalls)
		assert.Len(t, bracketRepo.byTournament["t1"], 4)
	})

	t.Run("unknown pool is rejected", func(t *testing.T) {
		_, err := svc.Initialize(context.Background(), "t1", "losers")
		assert.ErrorIs(t, err, ErrUnknownBracketPool)
	})

	t.Run("unknown tournament propagates not found", func(t *testing.T) {
		_, err := svc.Initialize(context.Background(), "missing", PoolRoster)
		assert.ErrorIs(t, err, repositories.ErrTournamentNotFound)
	})
}

func TestInitializeFromQualifiers(t *testing.T) {
	group := "A"
	teams := rosterOf("a", "b", "c", "d")
	for i := range teams {
		teams[i].Group = &group
	}
	tournamentRepo := newFakeTournamentRepo(
		models.Tournament{ID: "t1", Name: "Worlds", Status: models.StatusActive},
	)
	teamRepo := &fakeTeamRepo{byTournament: map[string][]models.Team{"t1": teams}}
	groupMatchRepo := &fakeGroupMatchRepo{byTournament: map[string][]models.GroupMatch{
		"t1": {
			{ID: "m1", TournamentID: "t1", Group: "A", Team1ID: "a", Team2ID: "b",
				Team1Score: 2, Team2Score: 0, Status: models.MatchStatusCompleted},
			{ID: "m2", TournamentID: "t1", Group: "A", Team1ID: "c", Team2ID: "d",
				Team1Score: 0, Team2Score: 1, Status: models.MatchStatusCompleted},
		},
	}}
	bracketRepo := &fakeBracketRepo{}
	standingsService := NewStandingsService(tournamentRepo, teamRepo, groupMatchRepo, 2)
	svc := NewBracketService(tournamentRepo, teamRepo, groupMatchRepo, bracketRepo, standingsService)

	// Two qualifiers from the single group: a straight final.
	matches, err := svc.Initialize(context.Background(), "t1", PoolQualifiers)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, models.Finals, matches[0].Round)
}

func TestSaveValidation(t *testing.T) {
	base := models.BracketMatch{
		ID: "finals_0", Round: models.Finals, MatchNumber: 1,
		Team1ID: strPtr("a"), Team2ID: strPtr("b"),
	}

	testCases := []struct {
		name     string
		mutate   func(m *models.BracketMatch)
		expected error
	}{
		{
			name: "winner without any team slot",
			mutate: func(m *models.BracketMatch) {
				m.Team1ID, m.Team2ID = nil, nil
				m.WinnerID = strPtr("a")
			},
			expected: ErrWinnerWithoutTeams,
		},
		{
			name: "winner not occupying a slot",
			mutate: func(m *models.BracketMatch) {
				m.WinnerID = strPtr("ghost")
			},
			expected: ErrWinnerNotInMatch,
		},
		{
			name: "negative score",
			mutate: func(m *models.BracketMatch) {
				m.Team1Score = -1
			},
			expected: ErrNegativeScore,
		},
		{
			name: "unknown round",
			mutate: func(m *models.BracketMatch) {
				m.Round = "losers_finals"
			},
			expected: ErrUnknownRound,
		},
		{
			name: "team outside the roster",
			mutate: func(m *models.BracketMatch) {
				m.Team1ID = strPtr("outsider")
			},
			expected: ErrTeamNotInRoster,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, svc := newBracketFixture(rosterOf("a", "b")...)
			match := base
			tc.mutate(&match)

			_, err := svc.Save(context.Background(), "t1", []models.BracketMatch{match})
			assert.ErrorIs(t, err, ErrValidationFailed)
			assert.ErrorIs(t, err, tc.expected)
		})
	}
}

func TestSaveRederivesWinners(t *testing.T) {
	bracketRepo, svc := newBracketFixture(rosterOf("a", "b")...)

	submitted := []models.BracketMatch{
		{
			// Decided on scores but submitted without a winner.
			ID: "semifinals_0", Round: models.Semifinals, MatchNumber: 1,
			Team1ID: strPtr("a"), Team2ID: strPtr("b"),
			Team1Score: 2, Team2Score: 0,
		},
		{
			// Submitted winner is stale: the 1-1 score decides nothing.
			ID: "finals_0", Round: models.Finals, MatchNumber: 1,
			Team1ID: strPtr("a"), Team2ID: strPtr("b"),
			Team1Score: 1, Team2Score: 1,
			WinnerID: strPtr("a"),
		},
	}

	saved, err := svc.Save(context.Background(), "t1", submitted)
	require.NoError(t, err)

	require.NotNil(t, saved[0].WinnerID)
	assert.Equal(t, "a", *saved[0].WinnerID)
	assert.Nil(t, saved[1].WinnerID)
	assert.Equal(t, saved, bracketRepo.byTournament["t1"])
}

func TestUpdateScoreResolvesAndUndeclares(t *testing.T) {
	_, svc := newBracketFixture(rosterOf("T1", "T2")...)
	_, err := svc.Save(context.Background(), "t1", []models.BracketMatch{{
		ID: "finals_0", Round: models.Finals, MatchNumber: 1,
		Team1ID: strPtr("T1"), Team2ID: strPtr("T2"),
	}})
	require.NoError(t, err)

	updated, err := svc.UpdateScore(context.Background(), "t1", "finals_0", 2, 1)
	require.NoError(t, err)
	require.NotNil(t, updated.WinnerID)
	assert.Equal(t, "T1", *updated.WinnerID)

	// Editing the score back down removes the winner again.
	updated, err = svc.UpdateScore(context.Background(), "t1", "finals_0", 1, 1)
	require.NoError(t, err)
	assert.Nil(t, updated.WinnerID)

	t.Run("negative scores rejected", func(t *testing.T) {
		_, err := svc.UpdateScore(context.Background(), "t1", "finals_0", -1, 0)
		assert.ErrorIs(t, err, ErrNegativeScore)
	})

	t.Run("unknown match", func(t *testing.T) {
		_, err := svc.UpdateScore(context.Background(), "t1", "finals_99", 2, 0)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestAssignSlot(t *testing.T) {
	_, svc := newBracketFixture(rosterOf("T1", "T2", "T3")...)
	_, err := svc.Save(context.Background(), "t1", []models.BracketMatch{{
		ID: "finals_0", Round: models.Finals, MatchNumber: 1,
	}})
	require.NoError(t, err)

	updated, err := svc.AssignSlot(context.Background(), "t1", "finals_0", 1, strPtr("T1"))
	require.NoError(t, err)
	require.NotNil(t, updated.Team1ID)
	assert.Equal(t, "T1", *updated.Team1ID)

	t.Run("slot out of range", func(t *testing.T) {
		_, err := svc.AssignSlot(context.Background(), "t1", "finals_0", 3, strPtr("T2"))
		assert.ErrorIs(t, err, ErrInvalidSlot)
	})

	t.Run("team outside roster", func(t *testing.T) {
		_, err := svc.AssignSlot(context.Background(), "t1", "finals_0", 2, strPtr("ghost"))
		assert.ErrorIs(t, err, ErrTeamNotInRoster)
	})

	t.Run("clearing a slot", func(t *testing.T) {
		updated, err := svc.AssignSlot(context.Background(), "t1", "finals_0", 1, nil)
		require.NoError(t, err)
		assert.Nil(t, updated.Team1ID)
	})

	t.Run("reassignment reruns the resolver", func(t *testing.T) {
		_, err := svc.AssignSlot(context.Background(), "t1", "finals_0", 1, strPtr("T1"))
		require.NoError(t, err)
		_, err = svc.AssignSlot(context.Background(), "t1", "finals_0", 2, strPtr("T2"))
		require.NoError(t, err)
		updated, err := svc.UpdateScore(context.Background(), "t1", "finals_0", 2, 0)
		require.NoError(t, err)
		require.NotNil(t, updated.WinnerID)
		require.Equal(t, "T1", *updated.WinnerID)

		// The admin swaps the leading slot: the winner follows the
		// slot, picks referencing T1 stop matching on the next sweep.
		updated, err = svc.AssignSlot(context.Background(), "t1", "finals_0", 1, strPtr("T3"))
		require.NoError(t, err)
		require.NotNil(t, updated.WinnerID)
		assert.Equal(t, "T3", *updated.WinnerID)
	})
}
