package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/repositories"
	"github.com/wardlight/pickems-engine/standings"
)

type StandingsService interface {
	// GroupStandings recomputes every group's table from completed
	// matches. Nothing is persisted; standings are derived data.
	GroupStandings(ctx context.Context, tournamentID string) (map[string][]models.Standing, error)
	// Qualifiers returns the top teams per group in group-then-rank
	// order: the eligible pool for bracket initialization.
	Qualifiers(ctx context.Context, tournamentID string) ([]models.Team, error)
	ListGroupMatches(ctx context.Context, tournamentID string) ([]models.GroupMatch, error)
	// GenerateGroupMatches creates the missing round-robin fixtures for
	// a group and returns only the newly created ones.
	GenerateGroupMatches(ctx context.Context, tournamentID, group string) ([]models.GroupMatch, error)
	UpdateGroupMatch(ctx context.Context, tournamentID, matchID string, team1Score, team2Score int, status models.MatchStatus) (*models.GroupMatch, error)
}

type standingsService struct {
	tournamentRepo     repositories.TournamentRepository
	teamRepo           repositories.TeamRepository
	groupMatchRepo     repositories.GroupMatchRepository
	qualifiersPerGroup int
}

func NewStandingsService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	groupMatchRepo repositories.GroupMatchRepository,
	qualifiersPerGroup int,
) StandingsService {
	if qualifiersPerGroup <= 0 {
		qualifiersPerGroup = standings.DefaultQualifiersPerGroup
	}
	return &standingsService{
		tournamentRepo:     tournamentRepo,
		teamRepo:           teamRepo,
		groupMatchRepo:     groupMatchRepo,
		qualifiersPerGroup: qualifiersPerGroup,
	}
}

// loadGroupStage fetches the roster and group matches in parallel after
// confirming the tournament exists.
func (s *standingsService) loadGroupStage(ctx context.Context, tournamentID string) ([]models.Team, []models.GroupMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, nil, err
	}

	var (
		teams   []models.Team
		matches []models.GroupMatch
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		teams, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load roster for tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.groupMatchRepo.ListByTournament(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to load group matches for tournament %s: %w", tournamentID, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return teams, matches, nil
}

func (s *standingsService) GroupStandings(ctx context.Context, tournamentID string) (map[string][]models.Standing, error) {
	teams, matches, err := s.loadGroupStage(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return standings.Calculate(teams, matches), nil
}

func (s *standingsService) Qualifiers(ctx context.Context, tournamentID string) ([]models.Team, error) {
	teams, matches, err := s.loadGroupStage(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	return standings.QualifiedTeams(teams, matches, s.qualifiersPerGroup), nil
}

func (s *standingsService) ListGroupMatches(ctx context.Context, tournamentID string) ([]models.GroupMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.groupMatchRepo.ListByTournament(ctx, tournamentID)
}

func (s *standingsService) GenerateGroupMatches(ctx context.Context, tournamentID, group string) ([]models.GroupMatch, error) {
	teams, existing, err := s.loadGroupStage(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	hasMembers := false
	for _, team := range teams {
		if team.GroupName() == group {
			hasMembers = true
			break
		}
	}
	if !hasMembers {
		return nil, fmt.Errorf("%w: %q", ErrGroupHasNoTeams, group)
	}

	created := standings.GenerateGroupMatches(tournamentID, group, teams, existing)
	if len(created) == 0 {
		return []models.GroupMatch{}, nil
	}

	all := append(existing, created...)
	if err := s.groupMatchRepo.ReplaceForTournament(ctx, tournamentID, all); err != nil {
		return nil, fmt.Errorf("failed to save group matches for tournament %s: %w", tournamentID, err)
	}
	return created, nil
}

func (s *standingsService) UpdateGroupMatch(ctx context.Context, tournamentID, matchID string, team1Score, team2Score int, status models.MatchStatus) (*models.GroupMatch, error) {
	if team1Score < 0 || team2Score < 0 {
		return nil, fmt.Errorf("%w: %d-%d", ErrNegativeScore, team1Score, team2Score)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMatchStatus, status)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	matches, err := s.groupMatchRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var updated *models.GroupMatch
	for i := range matches {
		if matches[i].ID == matchID {
			matches[i].Team1Score = team1Score
			matches[i].Team2Score = team2Score
			matches[i].Status = status
			updated = &matches[i]
			break
		}
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: group match %s", ErrMatchNotFound, matchID)
	}

	if err := s.groupMatchRepo.ReplaceForTournament(ctx, tournamentID, matches); err != nil {
		return nil, fmt.Errorf("failed to save group matches for tournament %s: %w", tournamentID, err)
	}
	result := *updated
	return &result, nil
}
