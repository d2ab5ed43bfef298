package services

import (
	"context"
	"fmt"

	"github.com/wardlight/pickems-engine/repositories"
)

type PickService interface {
	// SavePicks overwrites a user's predictions for one tournament.
	// Picks are keyed by match ID; they are not validated against the
	// teams currently occupying the slot, so a pick simply stops
	// matching if the admin reassigns it.
	SavePicks(ctx context.Context, userID, tournamentID string, picks map[string]string) error
}

type pickService struct {
	tournamentRepo repositories.TournamentRepository
	pickRepo       repositories.PickRepository
}

func NewPickService(
	tournamentRepo repositories.TournamentRepository,
	pickRepo repositories.PickRepository,
) PickService {
	return &pickService{tournamentRepo: tournamentRepo, pickRepo: pickRepo}
}

func (s *pickService) SavePicks(ctx context.Context, userID, tournamentID string, picks map[string]string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidationFailed)
	}
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return err
	}
	for matchID, teamID := range picks {
		if matchID == "" || teamID == "" {
			return fmt.Errorf("%w: picks must map a match id to a team id", ErrValidationFailed)
		}
	}
	return s.pickRepo.SaveUserPicks(ctx, userID, tournamentID, picks)
}
