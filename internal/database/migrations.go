package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"salescrm/internal/logger"
)

// RunMigrations applies the schema in order. Every statement is written
// to be safe to re-run, so POST /opportunity-collections/init can call
// this on a live database.
func RunMigrations(pool *pgxpool.Pool, log *logger.Logger) error {
	ctx := context.Background()

	migrations := []string{
		createUsersTable,
		createOpportunitiesTable,
		createRFPDetailsTable,
		createRFPDocumentsTable,
		createSOWDetailsTable,
		createSOWDocumentsTable,
		createProjectsTable,
	}

	for i, migration := range migrations {
		log.Debug("running migration", "step", i+1, "total", len(migrations))
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info("all migrations completed")
	return nil
}

// crmTables are the tables GET /opportunity-collections/validate checks.
var crmTables = []string{
	"opportunities",
	"rfp_details",
	"rfp_documents",
	"sow_details",
	"sow_documents",
	"projects",
}

// ValidateTables reports whether every CRM table exists in the public
// schema.
func ValidateTables(pool *pgxpool.Pool) (bool, error) {
	ctx := context.Background()

	query := `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = 'public' AND table_name = $1
	)`

	for _, table := range crmTables {
		var exists bool
		if err := pool.QueryRow(ctx, query, table).Scan(&exists); err != nil {
			return false, fmt.Errorf("failed to check table %s: %w", table, err)
		}
		if !exists {
			return false, nil
		}
	}

	return true, nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'user',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  last_login_at TIMESTAMP WITH TIME ZONE
);

CREATE INDEX IF NOT EXISTS idx_users_email ON users(email);
`

const createOpportunitiesTable = `
CREATE TABLE IF NOT EXISTS opportunities (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  opportunity_id TEXT NOT NULL UNIQUE,
  opportunity_name TEXT NOT NULL,
  client_id TEXT,
  client_name TEXT NOT NULL,
  lead_source TEXT,
  close_date DATE,
  type TEXT NOT NULL DEFAULT 'New Business',
  amount DOUBLE PRECISION NOT NULL DEFAULT 0,
  currency TEXT NOT NULL DEFAULT 'USD',
  value DOUBLE PRECISION NOT NULL DEFAULT 0,
  internal_recommendation TEXT,
  pipeline_status TEXT NOT NULL DEFAULT 'Prospecting',
  win_probability INT NOT NULL DEFAULT 10,
  next_steps TEXT,
  status TEXT NOT NULL DEFAULT 'Active',
  created_by TEXT NOT NULL,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_opportunities_opportunity_id ON opportunities(opportunity_id);
CREATE INDEX IF NOT EXISTS idx_opportunities_status ON opportunities(status);
CREATE INDEX IF NOT EXISTS idx_opportunities_pipeline_status ON opportunities(pipeline_status);
`

const createRFPDetailsTable = `
CREATE TABLE IF NOT EXISTS rfp_details (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  opportunity_id TEXT NOT NULL UNIQUE REFERENCES opportunities(opportunity_id) ON DELETE CASCADE,
  rfp_title TEXT,
  rfp_status TEXT,
  submission_deadline TIMESTAMP WITH TIME ZONE,
  bid_manager TEXT,
  submission_mode TEXT,
  portal_url TEXT,
  qa_logs JSONB NOT NULL DEFAULT '[]'::jsonb,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_rfp_details_opportunity_id ON rfp_details(opportunity_id);
`

const createRFPDocumentsTable = `
CREATE TABLE IF NOT EXISTS rfp_documents (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  opportunity_id TEXT NOT NULL REFERENCES opportunities(opportunity_id) ON DELETE CASCADE,
  document_type TEXT NOT NULL,
  file_name TEXT NOT NULL,
  file_url TEXT NOT NULL,
  uploaded_by TEXT NOT NULL,
  uploaded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_rfp_documents_opportunity_id ON rfp_documents(opportunity_id);
CREATE INDEX IF NOT EXISTS idx_rfp_documents_document_type ON rfp_documents(document_type);
`

const createSOWDetailsTable = `
CREATE TABLE IF NOT EXISTS sow_details (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  opportunity_id TEXT NOT NULL UNIQUE REFERENCES opportunities(opportunity_id) ON DELETE CASCADE,
  sow_title TEXT,
  sow_status TEXT,
  contract_value DOUBLE PRECISION NOT NULL DEFAULT 0,
  currency TEXT NOT NULL DEFAULT 'USD',
  value DOUBLE PRECISION NOT NULL DEFAULT 0,
  target_kickoff_date DATE,
  linked_proposal_ref TEXT,
  scope_overview TEXT,
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sow_details_opportunity_id ON sow_details(opportunity_id);
`

const createSOWDocumentsTable = `
CREATE TABLE IF NOT EXISTS sow_documents (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  sow_id UUID NOT NULL REFERENCES sow_details(id) ON DELETE CASCADE,
  file_name TEXT NOT NULL,
  file_url TEXT NOT NULL,
  uploaded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_sow_documents_sow_id ON sow_documents(sow_id);
`

const createProjectsTable = `
CREATE TABLE IF NOT EXISTS projects (
  id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
  project_name TEXT NOT NULL,
  client_name TEXT NOT NULL,
  linked_opportunity_id TEXT NOT NULL,
  contract_value DOUBLE PRECISION NOT NULL DEFAULT 0,
  currency TEXT NOT NULL DEFAULT 'USD',
  target_kickoff_date DATE,
  status TEXT NOT NULL DEFAULT 'Planned',
  project_type TEXT NOT NULL DEFAULT 'New',
  priority TEXT NOT NULL DEFAULT 'Medium',
  created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_projects_linked_opportunity_id ON projects(linked_opportunity_id);
CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
`
