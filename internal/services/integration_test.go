package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"salescrm/internal/database"
	"salescrm/internal/logger"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
	"salescrm/internal/services"
)

func setupTestDatabase(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("salescrm_test"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(ctx)
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	log, err := logger.New("")
	require.NoError(t, err)

	pool, err := database.ConnectDSN(dsn, log)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, database.RunMigrations(pool, log))
	return pool
}

type testEnv struct {
	pool        *pgxpool.Pool
	oppService  *services.OpportunityService
	rfpService  *services.RFPService
	sowService  *services.SOWService
	projectRepo *repositories.ProjectRepository
	sowRepo     *repositories.SOWDetailsRepository
	rfpRepo     *repositories.RFPDetailsRepository
}

func setupServices(t *testing.T) testEnv {
	t.Helper()
	pool := setupTestDatabase(t)

	log, err := logger.New("")
	require.NoError(t, err)

	oppRepo := repositories.NewOpportunityRepository(pool)
	rfpRepo := repositories.NewRFPDetailsRepository(pool)
	rfpDocRepo := repositories.NewRFPDocumentRepository(pool)
	sowRepo := repositories.NewSOWDetailsRepository(pool)
	sowDocRepo := repositories.NewSOWDocumentRepository(pool)
	projectRepo := repositories.NewProjectRepository(pool)

	return testEnv{
		pool:        pool,
		oppService:  services.NewOpportunityService(oppRepo, rfpRepo, rfpDocRepo, sowRepo, sowDocRepo, log),
		rfpService:  services.NewRFPService(oppRepo, rfpRepo, rfpDocRepo),
		sowService:  services.NewSOWService(oppRepo, sowRepo, sowDocRepo, projectRepo, log),
		projectRepo: projectRepo,
		sowRepo:     sowRepo,
		rfpRepo:     rfpRepo,
	}
}

func strPtr(s string) *string        { return &s }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

func TestOpportunityLifecycle(t *testing.T) {
	env := setupServices(t)

	first, err := env.oppService.Create(services.CreateOpportunityRequest{
		OpportunityName: "Acme Platform Migration",
		ClientName:      "Acme Corp",
		Amount:          120000,
		Value:           110000,
	}, "sales@example.com")
	require.NoError(t, err)
	require.Equal(t, "OPP-001", first.OpportunityID)
	require.Equal(t, "sales@example.com", first.CreatedBy)
	require.Equal(t, "Prospecting", first.PipelineStatus)
	require.Equal(t, "USD", first.Currency)

	second, err := env.oppService.Create(services.CreateOpportunityRequest{
		OpportunityName: "Globex Support Renewal",
		ClientName:      "Globex",
	}, "sales@example.com")
	require.NoError(t, err)
	require.Equal(t, "OPP-002", second.OpportunityID)

	t.Run("rfp details and documents", func(t *testing.T) {
		rfp, err := env.rfpService.CreateDetails("OPP-001", services.CreateRFPDetailsRequest{
			RFPTitle:  strPtr("Acme RFP"),
			RFPStatus: strPtr("Open"),
			QALogs: []models.QALogEntry{
				{Question: "SLA terms?", Answer: strPtr("99.9% uptime"), AskedBy: strPtr("Acme")},
			},
		})
		require.NoError(t, err)
		require.Equal(t, "OPP-001", rfp.OpportunityID)
		require.Len(t, rfp.QALogs, 1)

		_, err = env.rfpService.CreateDetails("OPP-001", services.CreateRFPDetailsRequest{})
		require.ErrorIs(t, err, services.ErrAlreadyExists)

		_, err = env.rfpService.CreateDetails("OPP-999", services.CreateRFPDetailsRequest{})
		require.ErrorIs(t, err, services.ErrNotFound)

		doc, err := env.rfpService.CreateDocument("OPP-001", services.CreateRFPDocumentRequest{
			DocumentType: "RFP",
			FileName:     "acme-rfp.pdf",
			FileURL:      "https://files.example.com/acme-rfp.pdf",
		}, "sales@example.com")
		require.NoError(t, err)
		require.Equal(t, "sales@example.com", doc.UploadedBy)
	})

	t.Run("convert creates draft SOW", func(t *testing.T) {
		updated, err := env.oppService.Update("OPP-001", services.UpdateOpportunityRequest{
			PipelineStatus: strPtr(services.PipelineStatusConverted),
		})
		require.NoError(t, err)
		require.Equal(t, services.PipelineStatusConverted, updated.PipelineStatus)

		sow, err := env.sowService.GetDetails("OPP-001")
		require.NoError(t, err)
		require.NotNil(t, sow.SOWTitle)
		require.Equal(t, "Acme Platform Migration - SOW", *sow.SOWTitle)
		require.NotNil(t, sow.SOWStatus)
		require.Equal(t, "Draft", *sow.SOWStatus)
		require.Equal(t, 120000.0, sow.ContractValue)
		require.Equal(t, 110000.0, sow.Value)

		// Converting again must not create a second record.
		_, err = env.oppService.Update("OPP-001", services.UpdateOpportunityRequest{
			PipelineStatus: strPtr(services.PipelineStatusConverted),
		})
		require.NoError(t, err)
		records, err := env.sowRepo.List("OPP-001")
		require.NoError(t, err)
		require.Len(t, records, 1)
	})

	t.Run("signing creates delivery project", func(t *testing.T) {
		kickoff := time.Now().Add(30 * 24 * time.Hour).UTC().Truncate(time.Second)
		_, err := env.sowService.UpdateDetails("OPP-001", services.UpdateSOWDetailsRequest{
			SOWStatus:         strPtr(services.SOWStatusSigned),
			ContractValue:     floatPtr(118000),
			TargetKickoffDate: timePtr(kickoff),
		})
		require.NoError(t, err)

		projects, err := env.projectRepo.ListByOpportunityID("OPP-001")
		require.NoError(t, err)
		require.Len(t, projects, 1)
		project := projects[0]
		require.Equal(t, "Acme Platform Migration", project.ProjectName)
		require.Equal(t, "Acme Corp", project.ClientName)
		require.Equal(t, 118000.0, project.ContractValue)
		require.Equal(t, "USD", project.Currency)
		require.Equal(t, "Planned", project.Status)
		require.Equal(t, "New", project.ProjectType)
		require.Equal(t, "Medium", project.Priority)

		// Signing again must not create a second project.
		_, err = env.sowService.UpdateDetails("OPP-001", services.UpdateSOWDetailsRequest{
			SOWStatus: strPtr(services.SOWStatusSigned),
		})
		require.NoError(t, err)
		projects, err = env.projectRepo.ListByOpportunityID("OPP-001")
		require.NoError(t, err)
		require.Len(t, projects, 1)
	})

	t.Run("sow documents resolve through sow details", func(t *testing.T) {
		doc, err := env.sowService.CreateDocument("OPP-001", services.CreateSOWDocumentRequest{
			FileName: "acme-sow-signed.pdf",
			FileURL:  "https://files.example.com/acme-sow-signed.pdf",
		})
		require.NoError(t, err)

		docs, err := env.sowService.ListDocuments("OPP-001")
		require.NoError(t, err)
		require.Len(t, docs, 1)
		require.Equal(t, doc.ID, docs[0].ID)

		// No SOW record for OPP-002 yet.
		_, err = env.sowService.ListDocuments("OPP-002")
		require.ErrorIs(t, err, services.ErrNotFound)
	})

	t.Run("complete view", func(t *testing.T) {
		view, err := env.oppService.GetView("OPP-001")
		require.NoError(t, err)
		require.Equal(t, "OPP-001", view.Opportunity.OpportunityID)
		require.NotNil(t, view.RFPDetails)
		require.Len(t, view.RFPDocuments, 1)
		require.NotNil(t, view.SOWDetails)
		require.Len(t, view.SOWDocuments, 1)

		_, err = env.oppService.GetView("OPP-999")
		require.ErrorIs(t, err, services.ErrNotFound)

		// Bare opportunity: related sections empty, not missing.
		bare, err := env.oppService.GetView("OPP-002")
		require.NoError(t, err)
		require.Nil(t, bare.RFPDetails)
		require.Empty(t, bare.RFPDocuments)
		require.Nil(t, bare.SOWDetails)
		require.Empty(t, bare.SOWDocuments)
	})

	t.Run("delete cascades but keeps the project", func(t *testing.T) {
		require.NoError(t, env.oppService.Delete("OPP-001"))

		_, err := env.oppService.GetView("OPP-001")
		require.ErrorIs(t, err, services.ErrNotFound)

		rfp, err := env.rfpRepo.GetByOpportunityID("OPP-001")
		require.NoError(t, err)
		require.Nil(t, rfp)

		sow, err := env.sowRepo.GetByOpportunityID("OPP-001")
		require.NoError(t, err)
		require.Nil(t, sow)

		projects, err := env.projectRepo.ListByOpportunityID("OPP-001")
		require.NoError(t, err)
		require.Len(t, projects, 1)

		require.ErrorIs(t, env.oppService.Delete("OPP-001"), services.ErrNotFound)
	})

	t.Run("id sequence continues after delete", func(t *testing.T) {
		third, err := env.oppService.Create(services.CreateOpportunityRequest{
			OpportunityName: "Initech Modernization",
			ClientName:      "Initech",
		}, "sales@example.com")
		require.NoError(t, err)
		require.Equal(t, "OPP-003", third.OpportunityID)
	})

	t.Run("schema validate", func(t *testing.T) {
		valid, err := database.ValidateTables(env.pool)
		require.NoError(t, err)
		require.True(t, valid)
	})
}

func TestOpportunityUpdate_NoFields(t *testing.T) {
	env := setupServices(t)

	_, err := env.oppService.Create(services.CreateOpportunityRequest{
		OpportunityName: "Empty Update Target",
		ClientName:      "Nobody Inc",
	}, "sales@example.com")
	require.NoError(t, err)

	_, err = env.oppService.Update("OPP-001", services.UpdateOpportunityRequest{})
	require.ErrorIs(t, err, services.ErrNoFields)

	_, err = env.oppService.Update("OPP-999", services.UpdateOpportunityRequest{
		NextSteps: strPtr("call back"),
	})
	require.ErrorIs(t, err, services.ErrNotFound)
}
