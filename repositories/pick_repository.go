package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/wardlight/pickems-engine/models"
)

var (
	ErrPickUserInvalid       = errors.New("pick user conflict or invalid")
	ErrPickTournamentInvalid = errors.New("pick tournament conflict or invalid")
)

type PickRepository interface {
	// ListAll returns every user's picks grouped per user:
	// tournament ID -> match ID -> predicted team ID.
	ListAll(ctx context.Context) ([]models.UserPicks, error)
	// SaveUserPicks overwrites one user's picks for one tournament.
	SaveUserPicks(ctx context.Context, userID, tournamentID string, picks map[string]string) error
}

type postgresPickRepository struct {
	db *sql.DB
}

func NewPostgresPickRepository(db *sql.DB) PickRepository {
	return &postgresPickRepository{db: db}
}

func (r *postgresPickRepository) ListAll(ctx context.Context) ([]models.UserPicks, error) {
	query := `
		SELECT user_id, tournament_id, picks
		FROM user_picks
		ORDER BY user_id, tournament_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byUser := make(map[string]*models.UserPicks)
	order := make([]string, 0)

	for rows.Next() {
		var userID, tournamentID string
		var raw []byte
		if err := rows.Scan(&userID, &tournamentID, &raw); err != nil {
			return nil, err
		}

		picks := make(map[string]string)
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &picks); err != nil {
				return nil, fmt.Errorf("malformed picks for user %s tournament %s: %w", userID, tournamentID, err)
			}
		}

		entry, ok := byUser[userID]
		if !ok {
			entry = &models.UserPicks{UserID: userID, Picks: make(map[string]map[string]string)}
			byUser[userID] = entry
			order = append(order, userID)
		}
		entry.Picks[tournamentID] = picks
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	result := make([]models.UserPicks, 0, len(order))
	for _, userID := range order {
		result = append(result, *byUser[userID])
	}
	return result, nil
}

func (r *postgresPickRepository) SaveUserPicks(ctx context.Context, userID, tournamentID string, picks map[string]string) error {
	raw, err := json.Marshal(picks)
	if err != nil {
		return fmt.Errorf("failed to encode picks: %w", err)
	}

	query := `
		INSERT INTO user_picks (user_id, tournament_id, picks)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, tournament_id) DO UPDATE SET picks = EXCLUDED.picks`

	_, err = r.db.ExecContext(ctx, query, userID, tournamentID, raw)
	return r.handlePickError(err)
}

func (r *postgresPickRepository) handlePickError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "user_picks_user_id_fkey":
			return ErrPickUserInvalid
		default:
			return ErrPickTournamentInvalid
		}
	}
	return err
}
