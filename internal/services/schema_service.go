package services

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/database"
	"salescrm/internal/logger"
)

// SchemaService backs the /opportunity-collections init and validate
// endpoints.
type SchemaService struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewSchemaService(pool *pgxpool.Pool, log *logger.Logger) *SchemaService {
	return &SchemaService{pool: pool, log: log}
}

// Init (re-)applies the schema migrations. Safe to call on a live
// database.
func (s *SchemaService) Init() error {
	if err := database.RunMigrations(s.pool, s.log); err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}
	return nil
}

// Validate reports whether all CRM tables exist.
func (s *SchemaService) Validate() (bool, error) {
	valid, err := database.ValidateTables(s.pool)
	if err != nil {
		return false, fmt.Errorf("failed to validate collections: %w", err)
	}
	return valid, nil
}
