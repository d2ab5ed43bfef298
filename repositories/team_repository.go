package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/wardlight/pickems-engine/models"
)

var (
	ErrTeamNotFound          = errors.New("team not found")
	ErrTeamTournamentInvalid = errors.New("team tournament conflict or invalid")
)

type TeamRepository interface {
	ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error)
	CreateBatch(ctx context.Context, exec SQLExecutor, teams []models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresTeamRepository) ListByTournament(ctx context.Context, tournamentID string) ([]models.Team, error) {
	query := `
		SELECT id, tournament_id, name, region, logo, tag, group_name
		FROM teams
		WHERE tournament_id = $1
		ORDER BY group_name NULLS LAST, name`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]models.Team, 0)
	for rows.Next() {
		var t models.Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.Region, &t.Logo, &t.Tag, &t.Group); err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	query := `
		SELECT id, tournament_id, name, region, logo, tag, group_name
		FROM teams
		WHERE id = $1`

	t := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&t.ID, &t.TournamentID, &t.Name, &t.Region, &t.Logo, &t.Tag, &t.Group,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *postgresTeamRepository) CreateBatch(ctx context.Context, exec SQLExecutor, teams []models.Team) error {
	if len(teams) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO teams (id, tournament_id, name, region, logo, tag, group_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i := range teams {
		t := &teams[i]
		_, err := executor.ExecContext(ctx, query,
			t.ID, t.TournamentID, t.Name, t.Region, t.Logo, t.Tag, t.Group,
		)
		if err != nil {
			return r.handleTeamError(err)
		}
	}
	return nil
}

func (r *postgresTeamRepository) handleTeamError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23503" {
		return ErrTeamTournamentInvalid
	}
	return err
}
