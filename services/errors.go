package services

import "errors"

// Shared sentinel errors used across services and the HTTP mapping.
var (
	// Generic "not found" plus entity-specific variants for context.
	ErrNotFound           = errors.New("requested resource not found")
	ErrTournamentNotFound = errors.New("tournament not found")
	ErrMatchNotFound      = errors.New("match not found")

	// Validation and business-rule failures.
	ErrValidationFailed       = errors.New("validation failed")
	ErrTournamentNameRequired = errors.New("tournament name is required")
	ErrNegativeScore          = errors.New("scores must be non-negative")
	ErrInvalidMatchStatus     = errors.New("invalid match status")
	ErrUnknownRound           = errors.New("unknown bracket round")
	ErrInvalidSlot            = errors.New("match slot must be 1 or 2")
	ErrGroupHasNoTeams        = errors.New("group has no teams in the roster")
	ErrTeamNotInRoster        = errors.New("team does not belong to the tournament roster")
	ErrWinnerWithoutTeams     = errors.New("bracket match declares a winner but has no team assigned")
	ErrWinnerNotInMatch       = errors.New("bracket match winner is not one of the assigned teams")

	// Tournament lifecycle.
	ErrTournamentInvalidStatus           = errors.New("invalid tournament status provided")
	ErrTournamentInvalidStatusTransition = errors.New("invalid tournament status transition")
)
