package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/models"
)

type SOWDocumentRepository struct {
	pool *pgxpool.Pool
}

func NewSOWDocumentRepository(pool *pgxpool.Pool) *SOWDocumentRepository {
	return &SOWDocumentRepository{pool: pool}
}

func (r *SOWDocumentRepository) Create(doc *models.SOWDocument) error {
	ctx := context.Background()

	doc.Prepare()

	query := `
		INSERT INTO sow_documents (id, sow_id, file_name, file_url, uploaded_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	doc.UploadedAt = time.Now()

	_, err := r.pool.Exec(ctx, query,
		doc.ID,
		doc.SOWID,
		doc.FileName,
		doc.FileURL,
		doc.UploadedAt,
	)

	return err
}

// ListBySOWID returns documents for one SOW record; sowID uuid.Nil
// means no filter (flat collections router).
func (r *SOWDocumentRepository) ListBySOWID(sowID uuid.UUID) ([]models.SOWDocument, error) {
	ctx := context.Background()

	query := `SELECT id, sow_id, file_name, file_url, uploaded_at FROM sow_documents`
	var args []interface{}
	if sowID != uuid.Nil {
		query += " WHERE sow_id = $1"
		args = append(args, sowID)
	}
	query += " ORDER BY uploaded_at DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var documents []models.SOWDocument
	for rows.Next() {
		var doc models.SOWDocument
		err := rows.Scan(
			&doc.ID,
			&doc.SOWID,
			&doc.FileName,
			&doc.FileURL,
			&doc.UploadedAt,
		)
		if err != nil {
			return nil, err
		}
		documents = append(documents, doc)
	}

	return documents, rows.Err()
}

// Delete removes one document scoped to its SOW record.
func (r *SOWDocumentRepository) Delete(sowID, documentID uuid.UUID) (int64, error) {
	ctx := context.Background()

	query := `DELETE FROM sow_documents WHERE sow_id = $1 AND id = $2`
	result, err := r.pool.Exec(ctx, query, sowID, documentID)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected(), nil
}
