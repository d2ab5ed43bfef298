package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/repositories"
)

type TournamentService interface {
	// Create registers an empty tournament; roster and fixtures are
	// populated afterwards.
	Create(ctx context.Context, name string) (*models.Tournament, error)
	// Get returns the tournament with roster, group matches and bracket
	// attached.
	Get(ctx context.Context, id string) (*models.Tournament, error)
	List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error)
	UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error)
	// AddTeams appends teams to the roster, assigning IDs.
	AddTeams(ctx context.Context, tournamentID string, teams []models.Team) ([]models.Team, error)
}

type tournamentService struct {
	tournamentRepo repositories.TournamentRepository
	teamRepo       repositories.TeamRepository
	groupMatchRepo repositories.GroupMatchRepository
	bracketRepo    repositories.BracketRepository
}

func NewTournamentService(
	tournamentRepo repositories.TournamentRepository,
	teamRepo repositories.TeamRepository,
	groupMatchRepo repositories.GroupMatchRepository,
	bracketRepo repositories.BracketRepository,
) TournamentService {
	return &tournamentService{
		tournamentRepo: tournamentRepo,
		teamRepo:       teamRepo,
		groupMatchRepo: groupMatchRepo,
		bracketRepo:    bracketRepo,
	}
}

func isValidStatusTransition(current, next models.TournamentStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.TournamentStatus][]models.TournamentStatus{
		models.StatusUpcoming:  {models.StatusActive},
		models.StatusActive:    {models.StatusCompleted},
		models.StatusCompleted: {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func (s *tournamentService) Create(ctx context.Context, name string) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: %w", ErrValidationFailed, ErrTournamentNameRequired)
	}

	tournament := &models.Tournament{
		ID:     uuid.NewString(),
		Name:   name,
		Status: models.StatusUpcoming,
	}
	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) Get(ctx context.Context, id string) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		teams, err := s.teamRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load roster for tournament %s: %w", id, err)
		}
		tournament.Teams = teams
		return nil
	})
	g.Go(func() error {
		matches, err := s.groupMatchRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load group matches for tournament %s: %w", id, err)
		}
		tournament.GroupMatches = matches
		return nil
	})
	g.Go(func() error {
		bracket, err := s.bracketRepo.ListByTournament(gCtx, id)
		if err != nil {
			return fmt.Errorf("failed to load bracket for tournament %s: %w", id, err)
		}
		tournament.Bracket = bracket
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *tournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error) {
	var statuses []models.TournamentStatus
	if status != nil {
		if !status.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, *status)
		}
		statuses = []models.TournamentStatus{*status}
	}
	return s.tournamentRepo.ListByStatuses(ctx, statuses)
}

func (s *tournamentService) UpdateStatus(ctx context.Context, id string, status models.TournamentStatus) (*models.Tournament, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrTournamentInvalidStatus, status)
	}

	tournament, err := s.tournamentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isValidStatusTransition(tournament.Status, status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrTournamentInvalidStatusTransition, tournament.Status, status)
	}

	if tournament.Status != status {
		if err := s.tournamentRepo.UpdateStatus(ctx, id, status); err != nil {
			return nil, err
		}
		tournament.Status = status
	}
	return tournament, nil
}

func (s *tournamentService) AddTeams(ctx context.Context, tournamentID string, teams []models.Team) ([]models.Team, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}

	for i := range teams {
		if strings.TrimSpace(teams[i].Name) == "" {
			return nil, fmt.Errorf("%w: team name is required", ErrValidationFailed)
		}
		if teams[i].ID == "" {
			teams[i].ID = uuid.NewString()
		}
		teams[i].TournamentID = tournamentID
	}

	if err := s.teamRepo.CreateBatch(ctx, nil, teams); err != nil {
		return nil, err
	}
	return teams, nil
}
