package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/models"
)

type ProjectRepository struct {
	pool *pgxpool.Pool
}

func NewProjectRepository(pool *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{pool: pool}
}

func (r *ProjectRepository) Create(project *models.Project) error {
	ctx := context.Background()

	project.Prepare()

	query := `
		INSERT INTO projects (id, project_name, client_name, linked_opportunity_id, contract_value,
			currency, target_kickoff_date, status, project_type, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		project.ID,
		project.ProjectName,
		project.ClientName,
		project.LinkedOpportunityID,
		project.ContractValue,
		project.Currency,
		project.TargetKickoffDate,
		project.Status,
		project.ProjectType,
		project.Priority,
		project.CreatedAt,
		project.UpdatedAt,
	)

	return err
}

// CountByOpportunityID backs the signed-SOW trigger's idempotence
// check: a project is only created when none is linked yet.
func (r *ProjectRepository) CountByOpportunityID(opportunityID string) (int64, error) {
	ctx := context.Background()

	var count int64
	query := `SELECT COUNT(*) FROM projects WHERE linked_opportunity_id = $1`
	if err := r.pool.QueryRow(ctx, query, opportunityID).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

func (r *ProjectRepository) ListByOpportunityID(opportunityID string) ([]models.Project, error) {
	ctx := context.Background()

	query := `SELECT id, project_name, client_name, linked_opportunity_id, contract_value,
		currency, target_kickoff_date, status, project_type, priority, created_at, updated_at
		FROM projects WHERE linked_opportunity_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, opportunityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var project models.Project
		err := rows.Scan(
			&project.ID,
			&project.ProjectName,
			&project.ClientName,
			&project.LinkedOpportunityID,
			&project.ContractValue,
			&project.Currency,
			&project.TargetKickoffDate,
			&project.Status,
			&project.ProjectType,
			&project.Priority,
			&project.CreatedAt,
			&project.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}
