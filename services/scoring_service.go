package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/repositories"
)

// persistConcurrency bounds the per-user score writes fired in parallel
// at the end of a sweep.
const persistConcurrency = 8

// DefaultScoringRules apply when no rules record has been configured.
// Rounds absent from the configured rules score zero.
func DefaultScoringRules() models.ScoringRules {
	return models.ScoringRules{
		models.RoundOf16:     2,
		models.Quarterfinals: 4,
		models.Semifinals:    6,
		models.ThirdPlace:    4,
		models.Finals:        8,
	}
}

// UserSweepOutcome reports one user's result of a scoring sweep.
type UserSweepOutcome struct {
	UserID string `json:"user_id"`
	Score  int    `json:"score"`
	Error  string `json:"error,omitempty"`
}

// SweepResult aggregates a full recalculation run. A sweep never fails
// wholesale because one user's write failed.
type SweepResult struct {
	Users    int                `json:"users"`
	Failed   int                `json:"failed"`
	Outcomes []UserSweepOutcome `json:"outcomes"`
}

type ScoringService interface {
	// Rules returns the configured rules, falling back to the engine
	// defaults when none are stored.
	Rules(ctx context.Context) (models.ScoringRules, error)
	SaveRules(ctx context.Context, rules models.ScoringRules) error
	// RecalculateAllScores recomputes every user's total from scratch
	// against a snapshot of rules, tournaments and picks, then persists
	// each total. Per-user persistence failures are logged and isolated.
	RecalculateAllScores(ctx context.Context) (*SweepResult, error)
	Leaderboard(ctx context.Context) ([]models.UserScore, error)
}

type scoringService struct {
	rulesRepo      repositories.ScoringRulesRepository
	tournamentRepo repositories.TournamentRepository
	bracketRepo    repositories.BracketRepository
	pickRepo       repositories.PickRepository
	scoreRepo      repositories.ScoreRepository
	logger         *slog.Logger
}

func NewScoringService(
	rulesRepo repositories.ScoringRulesRepository,
	tournamentRepo repositories.TournamentRepository,
	bracketRepo repositories.BracketRepository,
	pickRepo repositories.PickRepository,
	scoreRepo repositories.ScoreRepository,
	logger *slog.Logger,
) ScoringService {
	return &scoringService{
		rulesRepo:      rulesRepo,
		tournamentRepo: tournamentRepo,
		bracketRepo:    bracketRepo,
		pickRepo:       pickRepo,
		scoreRepo:      scoreRepo,
		logger:         logger,
	}
}

func (s *scoringService) Rules(ctx context.Context) (models.ScoringRules, error) {
	rules, err := s.rulesRepo.Load(ctx)
	if err != nil {
		if errors.Is(err, repositories.ErrScoringRulesNotFound) {
			return DefaultScoringRules(), nil
		}
		return nil, err
	}
	return rules, nil
}

func (s *scoringService) SaveRules(ctx context.Context, rules models.ScoringRules) error {
	if len(rules) == 0 {
		return fmt.Errorf("%w: scoring rules must not be empty", ErrValidationFailed)
	}
	for round, points := range rules {
		if !round.Valid() {
			return fmt.Errorf("%w: %w: %q", ErrValidationFailed, ErrUnknownRound, round)
		}
		if points < 0 {
			return fmt.Errorf("%w: points for %s must be non-negative, got %d", ErrValidationFailed, round, points)
		}
	}
	return s.rulesRepo.Save(ctx, rules)
}

// ComputeScores is the pure heart of the sweep: given a snapshot of
// rules, scorable tournaments (brackets loaded) and all user picks, it
// returns every user's total. A pick earns rules[round] points iff the
// match has a resolved winner and the pick names that winner; undecided
// matches and absent picks contribute nothing. Rerunning on the same
// snapshot yields the same totals.
func ComputeScores(rules models.ScoringRules, tournaments []models.Tournament, allPicks []models.UserPicks) map[string]int {
	totals := make(map[string]int, len(allPicks))
	for _, user := range allPicks {
		total := 0
		for _, tournament := range tournaments {
			if !tournament.Status.Scorable() {
				continue
			}
			for _, match := range tournament.Bracket {
				if match.WinnerID == nil {
					continue
				}
				if user.PickFor(tournament.ID, match.ID) == *match.WinnerID {
					total += rules[match.Round]
				}
			}
		}
		totals[user.UserID] = total
	}
	return totals
}

func (s *scoringService) RecalculateAllScores(ctx context.Context) (*SweepResult, error) {
	rules, err := s.Rules(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scoring rules: %w", err)
	}

	tournaments, err := s.tournamentRepo.ListByStatuses(ctx,
		[]models.TournamentStatus{models.StatusActive, models.StatusCompleted})
	if err != nil {
		return nil, fmt.Errorf("failed to load tournaments for sweep: %w", err)
	}

	// Attach brackets in parallel; the computation itself never blocks.
	g, gCtx := errgroup.WithContext(ctx)
	for i := range tournaments {
		i := i
		g.Go(func() error {
			bracket, err := s.bracketRepo.ListByTournament(gCtx, tournaments[i].ID)
			if err != nil {
				return fmt.Errorf("failed to load bracket for tournament %s: %w", tournaments[i].ID, err)
			}
			tournaments[i].Bracket = bracket
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allPicks, err := s.pickRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user picks: %w", err)
	}

	totals := ComputeScores(rules, tournaments, allPicks)

	s.logger.Info("scoring sweep started",
		slog.Int("users", len(totals)),
		slog.Int("tournaments", len(tournaments)))

	// Persist per user: fire in parallel, wait for all to settle. One
	// user's failure never aborts the rest of the sweep.
	var mu sync.Mutex
	result := &SweepResult{Users: len(totals), Outcomes: make([]UserSweepOutcome, 0, len(totals))}

	pg := new(errgroup.Group)
	pg.SetLimit(persistConcurrency)
	for _, user := range allPicks {
		userID := user.UserID
		score := totals[userID]
		pg.Go(func() error {
			outcome := UserSweepOutcome{UserID: userID, Score: score}
			if err := s.scoreRepo.UpsertScore(ctx, userID, score); err != nil {
				outcome.Error = err.Error()
				s.logger.Error("failed to persist user score",
					slog.String("user_id", userID),
					slog.Int("score", score),
					slog.Any("error", err))
			}
			mu.Lock()
			if outcome.Error != "" {
				result.Failed++
			}
			result.Outcomes = append(result.Outcomes, outcome)
			mu.Unlock()
			return nil
		})
	}
	_ = pg.Wait()

	s.logger.Info("scoring sweep finished",
		slog.Int("users", result.Users),
		slog.Int("failed", result.Failed))
	return result, nil
}

func (s *scoringService) Leaderboard(ctx context.Context) ([]models.UserScore, error) {
	return s.scoreRepo.Leaderboard(ctx)
}
