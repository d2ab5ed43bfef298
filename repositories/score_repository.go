package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/wardlight/pickems-engine/models"
)

var ErrScoreUserInvalid = errors.New("score user conflict or invalid")

type ScoreRepository interface {
	// UpsertScore overwrites the user's total. Scores are never
	// incremented in place; the sweep always writes the full value.
	UpsertScore(ctx context.Context, userID string, score int) error
	// Leaderboard returns all user scores ordered best first.
	Leaderboard(ctx context.Context) ([]models.UserScore, error)
}

type postgresScoreRepository struct {
	db *sql.DB
}

func NewPostgresScoreRepository(db *sql.DB) ScoreRepository {
	return &postgresScoreRepository{db: db}
}

func (r *postgresScoreRepository) UpsertScore(ctx context.Context, userID string, score int) error {
	query := `
		INSERT INTO user_scores (user_id, score)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET score = EXCLUDED.score`

	_, err := r.db.ExecContext(ctx, query, userID, score)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrScoreUserInvalid
	}
	return err
}

func (r *postgresScoreRepository) Leaderboard(ctx context.Context) ([]models.UserScore, error) {
	query := `
		SELECT s.user_id, u.username, s.score
		FROM user_scores s
		JOIN users u ON u.id = s.user_id
		ORDER BY s.score DESC, u.username`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scores := make([]models.UserScore, 0)
	for rows.Next() {
		var s models.UserScore
		if err := rows.Scan(&s.UserID, &s.Username, &s.Score); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
