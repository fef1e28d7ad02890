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

const sowDetailsColumns = `id, opportunity_id, sow_title, sow_status, contract_value, currency,
	value, target_kickoff_date, linked_proposal_ref, scope_overview, created_at, updated_at`

type SOWDetailsRepository struct {
	pool *pgxpool.Pool
}

func NewSOWDetailsRepository(pool *pgxpool.Pool) *SOWDetailsRepository {
	return &SOWDetailsRepository{pool: pool}
}

func (r *SOWDetailsRepository) Create(sow *models.SOWDetails) error {
	ctx := context.Background()

	sow.Prepare()

	query := `
		INSERT INTO sow_details (id, opportunity_id, sow_title, sow_status, contract_value, currency,
			value, target_kickoff_date, linked_proposal_ref, scope_overview, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	now := time.Now()
	sow.CreatedAt = now
	sow.UpdatedAt = now

	_, err := r.pool.Exec(ctx, query,
		sow.ID,
		sow.OpportunityID,
		sow.SOWTitle,
		sow.SOWStatus,
		sow.ContractValue,
		sow.Currency,
		sow.Value,
		sow.TargetKickoffDate,
		sow.LinkedProposalRef,
		sow.ScopeOverview,
		sow.CreatedAt,
		sow.UpdatedAt,
	)

	return err
}

func (r *SOWDetailsRepository) GetByOpportunityID(opportunityID string) (*models.SOWDetails, error) {
	ctx := context.Background()

	query := `SELECT ` + sowDetailsColumns + ` FROM sow_details WHERE opportunity_id = $1`

	sow, err := scanSOWDetails(r.pool.QueryRow(ctx, query, opportunityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return sow, nil
}

// List returns all SOW details, or just the one for opportunityID when
// it is non-empty.
func (r *SOWDetailsRepository) List(opportunityID string) ([]models.SOWDetails, error) {
	ctx := context.Background()

	query := `SELECT ` + sowDetailsColumns + ` FROM sow_details`
	var args []interface{}
	if opportunityID != "" {
		query += " WHERE opportunity_id = $1"
		args = append(args, opportunityID)
	}
	query += " ORDER BY created_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []models.SOWDetails
	for rows.Next() {
		sow, err := scanSOWDetails(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *sow)
	}

	return details, rows.Err()
}

// Update applies only the given column/value pairs and bumps updated_at.
func (r *SOWDetailsRepository) Update(opportunityID string, fields map[string]interface{}) (int64, error) {
	ctx := context.Background()

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{opportunityID}

	for column, value := range fields {
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf("UPDATE sow_details SET %s WHERE opportunity_id = $1", strings.Join(setClauses, ", "))

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func scanSOWDetails(row pgx.Row) (*models.SOWDetails, error) {
	var sow models.SOWDetails
	err := row.Scan(
		&sow.ID,
		&sow.OpportunityID,
		&sow.SOWTitle,
		&sow.SOWStatus,
		&sow.ContractValue,
		&sow.Currency,
		&sow.Value,
		&sow.TargetKickoffDate,
		&sow.LinkedProposalRef,
		&sow.ScopeOverview,
		&sow.CreatedAt,
		&sow.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &sow, nil
}
