package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/wardlight/pickems-engine/models"
)

var (
	ErrBracketNotFound    = errors.New("bracket not found")
	ErrBracketTeamInvalid = errors.New("bracket match team conflict or invalid")
)

type BracketRepository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketMatch, error)
	// ReplaceForTournament deletes the stored bracket and inserts the
	// given matches in one transaction: a full overwrite, never a merge.
	ReplaceForTournament(ctx context.Context, tournamentID string, matches []models.BracketMatch) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.BracketMatch, error) {
	query := `
		SELECT id, round, match_number, team1_id, team2_id, team1_score, team2_score, winner_id
		FROM bracket_matches
		WHERE tournament_id = $1
		ORDER BY ordinal`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.BracketMatch, 0)
	for rows.Next() {
		var m models.BracketMatch
		if err := rows.Scan(&m.ID, &m.Round, &m.MatchNumber, &m.Team1ID, &m.Team2ID,
			&m.Team1Score, &m.Team2Score, &m.WinnerID); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresBracketRepository) ReplaceForTournament(ctx context.Context, tournamentID string, matches []models.BracketMatch) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bracket_matches WHERE tournament_id = $1`, tournamentID); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO bracket_matches
				(tournament_id, id, ordinal, round, match_number, team1_id, team2_id, team1_score, team2_score, winner_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range matches {
			m := &matches[i]
			if _, err := stmt.ExecContext(ctx,
				tournamentID, m.ID, i, m.Round, m.MatchNumber,
				m.Team1ID, m.Team2ID, m.Team1Score, m.Team2Score, m.WinnerID,
			); err != nil {
				return r.handleBracketError(err)
			}
		}
		return nil
	})
}

func (r *postgresBracketRepository) handleBracketError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrBracketTeamInvalid
	}
	return err
}
