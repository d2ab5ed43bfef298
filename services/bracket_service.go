package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/wardlight/pickems-engine/brackets"
	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/repositories"
)

// BracketPool selects which team pool seeds a fresh bracket. The choice
// is the admin's, not the engine's.
type BracketPool string

const (
	// PoolQualifiers uses the group-stage qualifiers.
	PoolQualifiers BracketPool = "qualifiers"
	// PoolRoster uses the tournament's entire roster.
	PoolRoster BracketPool = "roster"
)

var ErrUnknownBracketPool = errors.New("unknown bracket pool")

type BracketService interface {
	// Initialize builds a fresh bracket skeleton from the chosen pool
	// and stores it, replacing any previous bracket wholesale.
	Initialize(ctx context.Context, tournamentID string, pool BracketPool) ([]models.BracketMatch, error)
	Get(ctx context.Context, tournamentID string) ([]models.BracketMatch, error)
	// Save validates and stores a whole bracket. Winners are always
	// rederived from the scores; a submitted winner that the scores no
	// longer support is cleared, not kept.
	Save(ctx context.Context, tournamentID string, matches []models.BracketMatch) ([]models.BracketMatch, error)
	// AssignSlot puts a team into one of a match's two slots (nil
	// clears it). Teams are drawn freely from the roster; the engine
	// does not propagate winners between rounds.
	AssignSlot(ctx context.Context, tournamentID, matchID string, slot int, teamID *string) (*models.BracketMatch, error)
	// UpdateScore edits a match's series score and reapplies the
	// outcome resolver, the only path that may touch the winner field.
	UpdateScore(ctx context.Context, tournamentID, matchID string, team1Score, team2Score int) (*models.BracketMatch, error)
}

type bracketService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	groupMatchRepo repositories.GroupMatchRepository
	bracketRepo    repositories.BracketRepository
	standings      StandingsService
}

func NewBracketService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	groupMatchRepo repositories.GroupMatchRepository,
	bracketRepo repositories.BracketRepository,
	standingsService StandingsService,
) BracketService {
	return &bracketService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		groupMatchRepo: groupMatchRepo,
		bracketRepo:    bracketRepo,
		standings:      standingsService,
	}
}

func (s *bracketService) Initialize(ctx context.Context, tournamentID string, pool BracketPool) ([]models.BracketMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	var eligible []models.Team
	var err error
	switch pool {
	case PoolQualifiers:
		eligible, err = s.standings.Qualifiers(ctx, tournamentID)
	case PoolRoster, "":
		eligible, err = s.teamRepo.ListByTournament(ctx, tournamentID)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBracketPool, pool)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load eligible pool for tournament %s: %w", tournamentID, err)
	}

	matches, err := brackets.Build(eligible)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := s.bracketRepo.ReplaceForTournament(ctx, tournamentID, matches); err != nil {
		return nil, fmt.Errorf("failed to save bracket for tournament %s: %w", tournamentID, err)
	}
	return matches, nil
}

func (s *bracketService) Get(ctx context.Context, tournamentID string) ([]models.BracketMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.bracketRepo.ListByTournament(ctx, tournamentID)
}

// validateBracketMatch rejects states the resolver could never produce.
func validateBracketMatch(m *models.BracketMatch) error {
	if !m.Round.Valid() {
		return fmt.Errorf("%w: %q in match %s", ErrUnknownRound, m.Round, m.ID)
	}
	if m.Team1Score < 0 || m.Team2Score < 0 {
		return fmt.Errorf("%w: match %s", ErrNegativeScore, m.ID)
	}
	if m.WinnerID != nil {
		if m.Team1ID == nil && m.Team2ID == nil {
			return fmt.Errorf("%w: match %s", ErrWinnerWithoutTeams, m.ID)
		}
		winner := *m.WinnerID
		team1 := m.Team1ID != nil && *m.Team1ID == winner
		team2 := m.Team2ID != nil && *m.Team2ID == winner
		if !team1 && !team2 {
			return fmt.Errorf("%w: match %s winner %s", ErrWinnerNotInMatch, m.ID, winner)
		}
	}
	return nil
}

func (s *bracketService) Save(ctx context.Context, tournamentID string, matches []models.BracketMatch) ([]models.BracketMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	roster, err := s.teamRepo.ListByTournament(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load roster for tournament %s: %w", tournamentID, err)
	}
	rosterIDs := make(map[string]bool, len(roster))
	for _, team := range roster {
		rosterIDs[team.ID] = true
	}

	for i := range matches {
		m := &matches[i]
		if err := validateBracketMatch(m); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		for _, slot := range []*string{m.Team1ID, m.Team2ID} {
			if slot != nil && !rosterIDs[*slot] {
				return nil, fmt.Errorf("%w: %w: team %s in match %s", ErrValidationFailed, ErrTeamNotInRoster, *slot, m.ID)
			}
		}
		brackets.ApplyOutcome(m)
	}

	if err := s.bracketRepo.ReplaceForTournament(ctx, tournamentID, matches); err != nil {
		return nil, fmt.Errorf("failed to save bracket for tournament %s: %w", tournamentID, err)
	}
	return matches, nil
}

// mutateMatch loads the bracket and the roster in parallel, applies fn
// to the addressed match and stores the whole bracket back.
func (s *bracketService) mutateMatch(ctx context.Context, tournamentID, matchID string, fn func(m *models.BracketMatch, rosterIDs map[string]bool) error) (*models.BracketMatch, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	var (
		matches []models.BracketMatch
		roster  []models.Team
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		matches, err = s.bracketRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	g.Go(func() error {
		var err error
		roster, err = s.teamRepo.ListByTournament(gCtx, tournamentID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rosterIDs := make(map[string]bool, len(roster))
	for _, team := range roster {
		rosterIDs[team.ID] = true
	}

	var target *models.BracketMatch
	for i := range matches {
		if matches[i].ID == matchID {
			target = &matches[i]
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("%w: bracket match %s", ErrMatchNotFound, matchID)
	}

	if err := fn(target, rosterIDs); err != nil {
		return nil, err
	}
	brackets.ApplyOutcome(target)

	if err := s.bracketRepo.ReplaceForTournament(ctx, tournamentID, matches); err != nil {
		return nil, fmt.Errorf("failed to save bracket for tournament %s: %w", tournamentID, err)
	}
	result := *target
	return &result, nil
}

func (s *bracketService) AssignSlot(ctx context.Context, tournamentID, matchID string, slot int, teamID *string) (*models.BracketMatch, error) {
	if slot != 1 && slot != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSlot, slot)
	}
	return s.mutateMatch(ctx, tournamentID, matchID, func(m *models.BracketMatch, rosterIDs map[string]bool) error {
		if teamID != nil && !rosterIDs[*teamID] {
			return fmt.Errorf("%w: team %s", ErrTeamNotInRoster, *teamID)
		}
		if slot == 1 {
			m.Team1ID = teamID
		} else {
			m.Team2ID = teamID
		}
		return nil
	})
}

func (s *bracketService) UpdateScore(ctx context.Context, tournamentID, matchID string, team1Score, team2Score int) (*models.BracketMatch, error) {
	if team1Score < 0 || team2Score < 0 {
		return nil, fmt.Errorf("%w: %d-%d", ErrNegativeScore, team1Score, team2Score)
	}
	return s.mutateMatch(ctx, tournamentID, matchID, func(m *models.BracketMatch, _ map[string]bool) error {
		m.Team1Score = team1Score
		m.Team2Score = team2Score
		return nil
	})
}
