package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/models"
)

const opportunityColumns = `id, opportunity_id, opportunity_name, client_id, client_name,
	lead_source, close_date, type, amount, currency, value, internal_recommendation,
	pipeline_status, win_probability, next_steps, status, created_by, created_at, updated_at`

type OpportunityRepository struct {
	pool *pgxpool.Pool
}

func NewOpportunityRepository(pool *pgxpool.Pool) *OpportunityRepository {
	return &OpportunityRepository{pool: pool}
}

func (r *OpportunityRepository) Create(opp *models.Opportunity) error {
	ctx := context.Background()

	opp.Prepare()

	query := `
		INSERT INTO opportunities (id, opportunity_id, opportunity_name, client_id, client_name,
			lead_source, close_date, type, amount, currency, value, internal_recommendation,
			pipeline_status, win_probability, next_steps, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	`

	now := time.Now()
	opp.CreatedAt = now
	opp.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		opp.ID,
		opp.OpportunityID,
		opp.OpportunityName,
		opp.ClientID,
		opp.ClientName,
		opp.LeadSource,
		opp.CloseDate,
		opp.Type,
		opp.Amount,
		opp.Currency,
		opp.Value,
		opp.InternalRecommendation,
		opp.PipelineStatus,
		opp.WinProbability,
		opp.NextSteps,
		opp.Status,
		opp.CreatedBy,
		opp.CreatedAt,
		opp.UpdatedAt,
	)

	return err
}

func (r *OpportunityRepository) GetByOpportunityID(opportunityID string) (*models.Opportunity, error) {
	ctx := context.Background()

	query := `SELECT ` + opportunityColumns + ` FROM opportunities WHERE opportunity_id = $1`

	row := r.pool.QueryRow(ctx, query, opportunityID)
	opp, err := scanOpportunity(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return opp, nil
}

// List returns opportunities with optional status / pipeline_status
// filters, newest first. skip/limit page through the result.
func (r *OpportunityRepository) List(status, pipelineStatus string, skip, limit int) ([]models.Opportunity, error) {
	ctx := context.Background()

	query := `SELECT ` + opportunityColumns + ` FROM opportunities`
	var conditions []string
	var args []interface{}

	if status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if pipelineStatus != "" {
		args = append(args, pipelineStatus)
		conditions = append(conditions, fmt.Sprintf("pipeline_status = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	query += " ORDER BY created_at DESC"
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, skip)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var opportunities []models.Opportunity
	for rows.Next() {
		opp, err := scanOpportunity(rows)
		if err != nil {
			return nil, err
		}
		opportunities = append(opportunities, *opp)
	}

	return opportunities, rows.Err()
}

// LastOpportunityID returns the highest readable id ("OPP-042") or ""
// when the table is empty. Used for generating the next id.
func (r *OpportunityRepository) LastOpportunityID() (string, error) {
	ctx := context.Background()

	query := `SELECT opportunity_id FROM opportunities ORDER BY opportunity_id DESC LIMIT 1`

	var last string
	err := r.pool.QueryRow(ctx, query).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}

	return last, nil
}

// Update applies only the given column/value pairs and bumps updated_at.
// Returns the number of rows matched.
func (r *OpportunityRepository) Update(opportunityID string, fields map[string]interface{}) (int64, error) {
	ctx := context.Background()

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{opportunityID}

	for column, value := range fields {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf("UPDATE opportunities SET %s WHERE opportunity_id = $1", strings.Join(setClauses, ", "))

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func (r *OpportunityRepository) Delete(opportunityID string) (int64, error) {
	ctx := context.Background()

	query := `DELETE FROM opportunities WHERE opportunity_id = $1`
	result, err := r.pool.Exec(ctx, query, opportunityID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func scanOpportunity(row pgx.Row) (*models.Opportunity, error) {
	var opp models.Opportunity
	err := row.Scan(
		&opp.ID,
		&opp.OpportunityID,
		&opp.OpportunityName,
		&opp.ClientID,
		&opp.ClientName,
		&opp.LeadSource,
		&opp.CloseDate,
		&opp.Type,
		&opp.Amount,
		&opp.Currency,
		&opp.Value,
		&opp.InternalRecommendation,
		&opp.PipelineStatus,
		&opp.WinProbability,
		&opp.NextSteps,
		&opp.Status,
		&opp.CreatedBy,
		&opp.CreatedAt,
		&opp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &opp, nil
}
