package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/wardlight/pickems-engine/models"
)

var (
	ErrGroupMatchNotFound    = errors.New("group match not found")
	ErrGroupMatchTeamInvalid = errors.New("group match team conflict or invalid")
)

type GroupMatchRepository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]models.GroupMatch, error)
	// ReplaceForTournament overwrites the tournament's whole group-match
	// set in one transaction. Saves are whole-array, last write wins.
	ReplaceForTournament(ctx context.Context, tournamentID string, matches []models.GroupMatch) error
}

type postgresGroupMatchRepository struct {
	db *sql.DB
}

func NewPostgresGroupMatchRepository(db *sql.DB) GroupMatchRepository {
	return &postgresGroupMatchRepository{db: db}
}

func (r *postgresGroupMatchRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.GroupMatch, error) {
	query := `
		SELECT id, tournament_id, group_name, team1_id, team2_id, team1_score, team2_score, status
		FROM group_matches
		WHERE tournament_id = $1
		ORDER BY group_name, id`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.GroupMatch, 0)
	for rows.Next() {
		var m models.GroupMatch
		if err := rows.Scan(&m.ID, &m.TournamentID, &m.Group, &m.Team1ID, &m.Team2ID,
			&m.Team1Score, &m.Team2Score, &m.Status); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (r *postgresGroupMatchRepository) ReplaceForTournament(ctx context.Context, tournamentID string, matches []models.GroupMatch) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM group_matches WHERE tournament_id = $1`, tournamentID); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO group_matches
				(id, tournament_id, group_name, team1_id, team2_id, team1_score, team2_score, status)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for i := range matches {
			m := &matches[i]
			if _, err := stmt.ExecContext(ctx,
				m.ID, tournamentID, m.Group, m.Team1ID, m.Team2ID,
				m.Team1Score, m.Team2Score, m.Status,
			); err != nil {
				return r.handleGroupMatchError(err)
			}
		}
		return nil
	})
}

func (r *postgresGroupMatchRepository) handleGroupMatchError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrGroupMatchTeamInvalid
	}
	return err
}
