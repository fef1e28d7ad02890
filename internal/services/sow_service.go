package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"salescrm/internal/logger"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// SOWStatusSigned is the SOW status that triggers delivery project
// creation on update.
const SOWStatusSigned = "Signed"

type SOWService struct {
	oppRepo     *repositories.OpportunityRepository
	sowRepo     *repositories.SOWDetailsRepository
	docRepo     *repositories.SOWDocumentRepository
	projectRepo *repositories.ProjectRepository
	log         *logger.Logger
}

func NewSOWService(
	oppRepo *repositories.OpportunityRepository,
	sowRepo *repositories.SOWDetailsRepository,
	docRepo *repositories.SOWDocumentRepository,
	projectRepo *repositories.ProjectRepository,
	log *logger.Logger,
) *SOWService {
	return &SOWService{
		oppRepo:     oppRepo,
		sowRepo:     sowRepo,
		docRepo:     docRepo,
		projectRepo: projectRepo,
		log:         log,
	}
}

type CreateSOWDetailsRequest struct {
	SOWTitle          *string    `json:"sow_title,omitempty"`
	SOWStatus         *string    `json:"sow_status,omitempty"`
	ContractValue     float64    `json:"contract_value,omitempty"`
	Currency          string     `json:"currency,omitempty"`
	Value             float64    `json:"value,omitempty"`
	TargetKickoffDate *time.Time `json:"target_kickoff_date,omitempty"`
	LinkedProposalRef *string    `json:"linked_proposal_ref,omitempty"`
	ScopeOverview     *string    `json:"scope_overview,omitempty"`
}

type UpdateSOWDetailsRequest struct {
	SOWTitle          *string    `json:"sow_title,omitempty"`
	SOWStatus         *string    `json:"sow_status,omitempty"`
	ContractValue     *float64   `json:"contract_value,omitempty"`
	Currency          *string    `json:"currency,omitempty"`
	Value             *float64   `json:"value,omitempty"`
	TargetKickoffDate *time.Time `json:"target_kickoff_date,omitempty"`
	LinkedProposalRef *string    `json:"linked_proposal_ref,omitempty"`
	ScopeOverview     *string    `json:"scope_overview,omitempty"`
}

func (r *UpdateSOWDetailsRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.SOWTitle != nil {
		fields["sow_title"] = *r.SOWTitle
	}
	if r.SOWStatus != nil {
		fields["sow_status"] = *r.SOWStatus
	}
	if r.ContractValue != nil {
		fields["contract_value"] = *r.ContractValue
	}
	if r.Currency != nil {
		fields["currency"] = *r.Currency
	}
	if r.Value != nil {
		fields["value"] = *r.Value
	}
	if r.TargetKickoffDate != nil {
		fields["target_kickoff_date"] = *r.TargetKickoffDate
	}
	if r.LinkedProposalRef != nil {
		fields["linked_proposal_ref"] = *r.LinkedProposalRef
	}
	if r.ScopeOverview != nil {
		fields["scope_overview"] = *r.ScopeOverview
	}
	return fields
}

func (s *SOWService) GetDetails(opportunityID string) (*models.SOWDetails, error) {
	sow, err := s.sowRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get SOW details: %w", err)
	}
	if sow == nil {
		return nil, ErrNotFound
	}
	return sow, nil
}

func (s *SOWService) ListDetails(opportunityID string) ([]models.SOWDetails, error) {
	return s.sowRepo.List(opportunityID)
}

// CreateDetails inserts the 1:1 SOW record for an opportunity.
func (s *SOWService) CreateDetails(opportunityID string, req CreateSOWDetailsRequest) (*models.SOWDetails, error) {
	opp, err := s.oppRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	if opp == nil {
		return nil, ErrNotFound
	}

	existing, err := s.sowRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing SOW details: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	sow := &models.SOWDetails{
		OpportunityID:     opportunityID,
		SOWTitle:          req.SOWTitle,
		SOWStatus:         req.SOWStatus,
		ContractValue:     req.ContractValue,
		Currency:          req.Currency,
		Value:             req.Value,
		TargetKickoffDate: req.TargetKickoffDate,
		LinkedProposalRef: req.LinkedProposalRef,
		ScopeOverview:     req.ScopeOverview,
	}

	if err := s.sowRepo.Create(sow); err != nil {
		return nil, fmt.Errorf("failed to save SOW details: %w", err)
	}

	return sow, nil
}

// UpdateDetails applies a partial update. When the status moves to
// "Signed" and no delivery project is linked to the opportunity yet, a
// "Planned" project is inserted, copying the opportunity's name and
// client plus the commercial fields from this update. The existence
// check makes the trigger idempotent per opportunity; the
// check-then-insert is not guarded, so concurrent signings can race.
func (s *SOWService) UpdateDetails(opportunityID string, req UpdateSOWDetailsRequest) (*models.SOWDetails, error) {
	fields := req.fields()
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	if req.SOWStatus != nil && *req.SOWStatus == SOWStatusSigned {
		opp, err := s.oppRepo.GetByOpportunityID(opportunityID)
		if err != nil {
			return nil, fmt.Errorf("failed to get opportunity: %w", err)
		}
		if opp != nil {
			linked, err := s.projectRepo.CountByOpportunityID(opportunityID)
			if err != nil {
				return nil, fmt.Errorf("failed to check linked projects: %w", err)
			}
			if linked == 0 {
				project := &models.Project{
					ProjectName:         opp.OpportunityName,
					ClientName:          opp.ClientName,
					LinkedOpportunityID: opportunityID,
					Currency:            opp.Currency,
					TargetKickoffDate:   req.TargetKickoffDate,
				}
				if req.ContractValue != nil {
					project.ContractValue = *req.ContractValue
				}
				if err := s.projectRepo.Create(project); err != nil {
					return nil, fmt.Errorf("failed to auto-create project: %w", err)
				}
				s.log.Info("delivery project auto-created", "opportunity_id", opportunityID, "project_id", project.ID)
			}
		}
	}

	matched, err := s.sowRepo.Update(opportunityID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update SOW details: %w", err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	return s.sowRepo.GetByOpportunityID(opportunityID)
}

type CreateSOWDocumentRequest struct {
	FileName string `json:"file_name" binding:"required"`
	FileURL  string `json:"file_url" binding:"required"`
}

// ListDocuments returns documents for the opportunity's SOW record.
// ErrNotFound when no SOW details exist yet.
func (s *SOWService) ListDocuments(opportunityID string) ([]models.SOWDocument, error) {
	sow, err := s.sowRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get SOW details: %w", err)
	}
	if sow == nil {
		return nil, ErrNotFound
	}

	docs, err := s.docRepo.ListBySOWID(sow.ID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.SOWDocument{}
	}
	return docs, nil
}

// ListDocumentsBySOWID backs the flat collections router, filtering on
// the SOW record id directly.
func (s *SOWService) ListDocumentsBySOWID(sowID uuid.UUID) ([]models.SOWDocument, error) {
	docs, err := s.docRepo.ListBySOWID(sowID)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.SOWDocument{}
	}
	return docs, nil
}

// CreateDocument attaches an uploaded file to the opportunity's SOW
// record, resolving sow_id through sow_details first.
func (s *SOWService) CreateDocument(opportunityID string, req CreateSOWDocumentRequest) (*models.SOWDocument, error) {
	sow, err := s.sowRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get SOW details: %w", err)
	}
	if sow == nil {
		return nil, ErrNotFound
	}

	doc := &models.SOWDocument{
		SOWID:    sow.ID,
		FileName: req.FileName,
		FileURL:  req.FileURL,
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to save SOW document: %w", err)
	}

	return doc, nil
}

func (s *SOWService) DeleteDocument(opportunityID string, documentID uuid.UUID) error {
	sow, err := s.sowRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return fmt.Errorf("failed to get SOW details: %w", err)
	}
	if sow == nil {
		return ErrNotFound
	}

	deleted, err := s.docRepo.Delete(sow.ID, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete SOW document: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
