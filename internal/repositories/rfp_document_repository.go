package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/models"
)

type RFPDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewRFPDocumentRepository(pool *pgxpool.Pool) *RFPDocumentRepository {
	return &RFPDocumentRepository{pool: pool}
}

func (r *RFPDocumentRepository) Create(doc *models.RFPDocument) error {
	ctx := context.Background()

	doc.Prepare()

	query := `
		INSERT INTO rfp_documents (id, opportunity_id, document_type, file_name, file_url, uploaded_by, uploaded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	doc.UploadedAt = time.Now()

	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.OpportunityID,
		doc.DocumentType,
		doc.FileName,
		doc.FileURL,
		doc.UploadedBy,
		doc.UploadedAt,
	)

	return err
}

// List returns documents filtered by optional opportunity_id and
// document_type.
func (r *RFPDocumentRepository) List(opportunityID, documentType string) ([]models.RFPDocument, error) {
	ctx := context.Background()

	query := `SELECT id, opportunity_id, document_type, file_name, file_url, uploaded_by, uploaded_at
		FROM rfp_documents`
	var conditions []string
	var args []interface{}

	if opportunityID != "" {
		args = append(args, opportunityID)
		conditions = append(conditions, fmt.Sprintf("opportunity_id = $%d", len(args)))
	}
	if documentType != "" {
		args = append(args, documentType)
		conditions = append(conditions, fmt.Sprintf("document_type = $%d", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY uploaded_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.RFPDocument
	for rows.Next() {
		var doc models.RFPDocument
		err := rows.Scan(
			&doc.ID,
			&doc.OpportunityID,
			&doc.DocumentType,
			&doc.FileName,
			&doc.FileURL,
			&doc.UploadedBy,
			&doc.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// Delete removes one document scoped to its opportunity. Returns rows
// affected so callers can surface not-found.
func (r *RFPDocumentRepository) Delete(opportunityID string, documentID uuid.UUID) (int64, error) {
	ctx := context.Background()

	query := `DELETE FROM rfp_documents WHERE opportunity_id = $1 AND id = $2`
	result, err := r.pool.Exec(ctx, query, opportunityID, documentID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
