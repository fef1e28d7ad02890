package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/models"
)

const rfpDetailsColumns = `id, opportunity_id, rfp_title, rfp_status, submission_deadline,
	bid_manager, submission_mode, portal_url, qa_logs, created_at, updated_at`

type RFPDetailsRepository struct {
	pool *pgxpool.Pool
}

func NewRFPDetailsRepository(pool *pgxpool.Pool) *RFPDetailsRepository {
	return &RFPDetailsRepository{pool: pool}
}

func (r *RFPDetailsRepository) Create(rfp *models.RFPDetails) error {
	ctx := context.Background()

	rfp.Prepare()

	qaLogs, err := json.Marshal(rfp.QALogs)
	if err != nil {
		return fmt.Errorf("failed to encode qa_logs: %w", err)
	}

	query := `
		INSERT INTO rfp_details (id, opportunity_id, rfp_title, rfp_status, submission_deadline,
			bid_manager, submission_mode, portal_url, qa_logs, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	now := time.Now()
	rfp.CreatedAt = now
	rfp.UpdatedAt = now

	_, err = r.pool.Exec(ctx, query,
		rfp.ID,
		rfp.OpportunityID,
		rfp.RFPTitle,
		rfp.RFPStatus,
		rfp.SubmissionDeadline,
		rfp.BidManager,
		rfp.SubmissionMode,
		rfp.PortalURL,
		qaLogs,
		rfp.CreatedAt,
		rfp.UpdatedAt,
	)

	return err
}

func (r *RFPDetailsRepository) GetByOpportunityID(opportunityID string) (*models.RFPDetails, error) {
	ctx := context.Background()

	query := `SELECT ` + rfpDetailsColumns + ` FROM rfp_details WHERE opportunity_id = $1`

	rfp, err := scanRFPDetails(r.pool.QueryRow(ctx, query, opportunityID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return rfp, nil
}

// List returns all RFP details, or just the one for opportunityID when
// it is non-empty. Backs the flat collections router.
func (r *RFPDetailsRepository) List(opportunityID string) ([]models.RFPDetails, error) {
	ctx := context.Background()

	query := `SELECT ` + rfpDetailsColumns + ` FROM rfp_details`
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

	var details []models.RFPDetails
	for rows.Next() {
		rfp, err := scanRFPDetails(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *rfp)
	}

	return details, rows.Err()
}

// Update applies only the given column/value pairs and bumps updated_at.
func (r *RFPDetailsRepository) Update(opportunityID string, fields map[string]interface{}) (int64, error) {
	ctx := context.Background()

	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{opportunityID}

	for column, value := range fields {
		if column == "qa_logs" {
			encoded, err := json.Marshal(value)
			if err != nil {
				return 0, fmt.Errorf("failed to encode qa_logs: %w", err)
			}
			value = encoded
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	query := fmt.Sprintf("UPDATE rfp_details SET %s WHERE opportunity_id = $1", strings.Join(setClauses, ", "))

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}

func scanRFPDetails(row pgx.Row) (*models.RFPDetails, error) {
	var rfp models.RFPDetails
	var qaLogs []byte
	err := row.Scan(
		&rfp.ID,
		&rfp.OpportunityID,
		&rfp.RFPTitle,
		&rfp.RFPStatus,
		&rfp.SubmissionDeadline,
		&rfp.BidManager,
		&rfp.SubmissionMode,
		&rfp.PortalURL,
		&qaLogs,
		&rfp.CreatedAt,
		&rfp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(qaLogs, &rfp.QALogs); err != nil {
		return nil, fmt.Errorf("failed to decode qa_logs: %w", err)
	}
	return &rfp, nil
}
