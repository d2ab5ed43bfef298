package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/wardlight/pickems-engine/models"
)

var ErrScoringRulesNotFound = errors.New("scoring rules not configured")

type ScoringRulesRepository interface {
	// Load returns the configured round point values, or
	// ErrScoringRulesNotFound when no rules record exists yet.
	Load(ctx context.Context) (models.ScoringRules, error)
	// Save replaces the whole rule set.
	Save(ctx context.Context, rules models.ScoringRules) error
}

type postgresScoringRulesRepository struct {
	db *sql.DB
}

func NewPostgresScoringRulesRepository(db *sql.DB) ScoringRulesRepository {
	return &postgresScoringRulesRepository{db: db}
}

func (r *postgresScoringRulesRepository) Load(ctx context.Context) (models.ScoringRules, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT round, points FROM scoring_rules`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rules := make(models.ScoringRules)
	for rows.Next() {
		var round models.Round
		var points int
		if err := rows.Scan(&round, &points); err != nil {
			return nil, err
		}
		rules[round] = points
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(rules) == 0 {
		return nil, ErrScoringRulesNotFound
	}
	return rules, nil
}

func (r *postgresScoringRulesRepository) Save(ctx context.Context, rules models.ScoringRules) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM scoring_rules`); err != nil {
			return err
		}
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO scoring_rules (round, points) VALUES ($1, $2)`)
		if err != nil {
			return err
		}
		defer stmt.Close()

		for round, points := range rules {
			if _, err := stmt.ExecContext(ctx, round, points); err != nil {
				return err
			}
		}
		return nil
	})
}
