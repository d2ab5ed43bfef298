package services

import (
	"context"
	"sync"

	"github.com/wardlight/pickems-engine/models"
	"github.com/wardlight/pickems-engine/repositories"
)

// In-memory fakes for the persistence collaborators.

type fakeTournamentRepo struct {
	tournaments map[string]models.Tournament
}

func newFakeTournamentRepo(tournaments ...models.Tournament) *fakeTournamentRepo {
	repo := &fakeTournamentRepo{tournaments: make(map[string]models.Tournament)}
	for _, t := range tournaments {
		repo.tournaments[t.ID] = t
	}
	return repo
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id string) (*models.Tournament, error) {
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	copied := t
	return &copied, nil
}

func (r *fakeTournamentRepo) ListByStatuses(_ context.Context, statuses []models.TournamentStatus) ([]models.Tournament, error) {
	var result []models.Tournament
	for _, t := range r.tournaments {
		if len(statuses) == 0 {
			result = append(result, t)
			continue
		}
		for _, status := range statuses {
			if t.Status == status {
				result = append(result, t)
				break
			}
		}
	}
	return result, nil
}

func (r *fakeTournamentRepo) UpdateStatus(_ context.Context, id string, status models.TournamentStatus) error {
	t, ok := r.tournaments[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	r.tournaments[id] = t
	return nil
}

type fakeTeamRepo struct {
	byTournament map[string][]models.Team
}

func (r *fakeTeamRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.Team, error) {
	return append([]models.Team{}, r.byTournament[tournamentID]...), nil
}

func (r *fakeTeamRepo) CreateBatch(_ context.Context, _ repositories.SQLExecutor, teams []models.Team) error {
	if r.byTournament == nil {
		r.byTournament = make(map[string][]models.Team)
	}
	for _, t := range teams {
		r.byTournament[t.TournamentID] = append(r.byTournament[t.TournamentID], t)
	}
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id string) (*models.Team, error) {
	for _, teams := range r.byTournament {
		for _, t := range teams {
			if t.ID == id {
				copied := t
				return &copied, nil
			}
		}
	}
	return nil, repositories.ErrTeamNotFound
}

type fakeGroupMatchRepo struct {
	byTournament map[string][]models.GroupMatch
	replaceCalls int
}

func (r *fakeGroupMatchRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.GroupMatch, error) {
	return append([]models.GroupMatch{}, r.byTournament[tournamentID]...), nil
}

func (r *fakeGroupMatchRepo) ReplaceForTournament(_ context.Context, tournamentID string, matches []models.GroupMatch) error {
	if r.byTournament == nil {
		r.byTournament = make(map[string][]models.GroupMatch)
	}
	r.byTournament[tournamentID] = append([]models.GroupMatch{}, matches...)
	r.replaceCalls++
	return nil
}

type fakeBracketRepo struct {
	byTournament map[string][]models.BracketMatch
	replaceCalls int
}

func (r *fakeBracketRepo) ListByTournament(_ context.Context, tournamentID string) ([]models.BracketMatch, error) {
	return append([]models.BracketMatch{}, r.byTournament[tournamentID]...), nil
}

func (r *fakeBracketRepo) ReplaceForTournament(_ context.Context, tournamentID string, matches []models.BracketMatch) error {
	if r.byTournament == nil {
		r.byTournament = make(map[string][]models.BracketMatch)
	}
	r.byTournament[tournamentID] = append([]models.BracketMatch{}, matches...)
	r.replaceCalls++
	return nil
}

type fakeRulesRepo struct {
	rules models.ScoringRules
}

func (r *fakeRulesRepo) Load(_ context.Context) (models.ScoringRules, error) {
	if r.rules == nil {
		return nil, repositories.ErrScoringRulesNotFound
	}
	return r.rules, nil
}

func (r *fakeRulesRepo) Save(_ context.Context, rules models.ScoringRules) error {
	r.rules = rules
	return nil
}

type fakePickRepo struct {
	picks []models.UserPicks
}

func (r *fakePickRepo) ListAll(_ context.Context) ([]models.UserPicks, error) {
	return append([]models.UserPicks{}, r.picks...), nil
}

func (r *fakePickRepo) SaveUserPicks(_ context.Context, userID, tournamentID string, picks map[string]string) error {
	for i := range r.picks {
		if r.picks[i].UserID == userID {
			r.picks[i].Picks[tournamentID] = picks
			return nil
		}
	}
	r.picks = append(r.picks, models.UserPicks{
		UserID: userID,
		Picks:  map[string]map[string]string{tournamentID: picks},
	})
	return nil
}

type fakeScoreRepo struct {
	mu      sync.Mutex
	scores  map[string]int
	failFor map[string]error
}

func (r *fakeScoreRepo) UpsertScore(_ context.Context, userID string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failFor[userID]; ok {
		return err
	}
	if r.scores == nil {
		r.scores = make(map[string]int)
	}
	r.scores[userID] = score
	return nil
}

func (r *fakeScoreRepo) Leaderboard(_ context.Context) ([]models.UserScore, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]models.UserScore, 0, len(r.scores))
	for userID, score := range r.scores {
		result = append(result, models.UserScore{UserID: userID, Score: score})
	}
	return result, nil
}
