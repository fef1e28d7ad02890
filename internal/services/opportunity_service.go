package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"salescrm/internal/logger"
	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

// PipelineStatusConverted is the pipeline value that triggers draft SOW
// creation on opportunity update.
const PipelineStatusConverted = "Converted to SOW"

type OpportunityService struct {
	oppRepo    *repositories.OpportunityRepository
	rfpRepo    *repositories.RFPDetailsRepository
	rfpDocRepo *repositories.RFPDocumentRepository
	sowRepo    *repositories.SOWDetailsRepository
	sowDocRepo *repositories.SOWDocumentRepository
	log        *logger.Logger
}

func NewOpportunityService(
	oppRepo *repositories.OpportunityRepository,
	rfpRepo *repositories.RFPDetailsRepository,
	rfpDocRepo *repositories.RFPDocumentRepository,
	sowRepo *repositories.SOWDetailsRepository,
	sowDocRepo *repositories.SOWDocumentRepository,
	log *logger.Logger,
) *OpportunityService {
	return &OpportunityService{
		oppRepo:    oppRepo,
		rfpRepo:    rfpRepo,
		rfpDocRepo: rfpDocRepo,
		sowRepo:    sowRepo,
		sowDocRepo: sowDocRepo,
		log:        log,
	}
}

type CreateOpportunityRequest struct {
	OpportunityName        string     `json:"opportunity_name" binding:"required"`
	ClientID               *string    `json:"client_id,omitempty"`
	ClientName             string     `json:"client_name" binding:"required"`
	LeadSource             *string    `json:"lead_source,omitempty"`
	CloseDate              *time.Time `json:"close_date,omitempty"`
	Type                   string     `json:"type,omitempty"`
	Amount                 float64    `json:"amount,omitempty"`
	Currency               string     `json:"currency,omitempty"`
	Value                  float64    `json:"value,omitempty"`
	InternalRecommendation *string    `json:"internal_recommendation,omitempty"`
	PipelineStatus         string     `json:"pipeline_status,omitempty"`
	WinProbability         int        `json:"win_probability,omitempty"`
	NextSteps              *string    `json:"next_steps,omitempty"`
	Status                 string     `json:"status,omitempty"`
	CreatedBy              string     `json:"created_by,omitempty"`
}

type UpdateOpportunityRequest struct {
	OpportunityName        *string    `json:"opportunity_name,omitempty"`
	ClientID               *string    `json:"client_id,omitempty"`
	ClientName             *string    `json:"client_name,omitempty"`
	LeadSource             *string    `json:"lead_source,omitempty"`
	CloseDate              *time.Time `json:"close_date,omitempty"`
	Type                   *string    `json:"type,omitempty"`
	Amount                 *float64   `json:"amount,omitempty"`
	Currency               *string    `json:"currency,omitempty"`
	Value                  *float64   `json:"value,omitempty"`
	InternalRecommendation *string    `json:"internal_recommendation,omitempty"`
	PipelineStatus         *string    `json:"pipeline_status,omitempty"`
	WinProbability         *int       `json:"win_probability,omitempty"`
	NextSteps              *string    `json:"next_steps,omitempty"`
	Status                 *string    `json:"status,omitempty"`
}

// fields maps the provided values onto their columns.
func (r *UpdateOpportunityRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.OpportunityName != nil {
		fields["opportunity_name"] = *r.OpportunityName
	}
	if r.ClientID != nil {
		fields["client_id"] = *r.ClientID
	}
	if r.ClientName != nil {
		fields["client_name"] = *r.ClientName
	}
	if r.LeadSource != nil {
		fields["lead_source"] = *r.LeadSource
	}
	if r.CloseDate != nil {
		fields["close_date"] = *r.CloseDate
	}
	if r.Type != nil {
		fields["type"] = *r.Type
	}
	if r.Amount != nil {
		fields["amount"] = *r.Amount
	}
	if r.Currency != nil {
		fields["currency"] = *r.Currency
	}
	if r.Value != nil {
		fields["value"] = *r.Value
	}
	if r.InternalRecommendation != nil {
		fields["internal_recommendation"] = *r.InternalRecommendation
	}
	if r.PipelineStatus != nil {
		fields["pipeline_status"] = *r.PipelineStatus
	}
	if r.WinProbability != nil {
		fields["win_probability"] = *r.WinProbability
	}
	if r.NextSteps != nil {
		fields["next_steps"] = *r.NextSteps
	}
	if r.Status != nil {
		fields["status"] = *r.Status
	}
	return fields
}

func (s *OpportunityService) List(status, pipelineStatus string, skip, limit int) ([]models.Opportunity, error) {
	if limit <= 0 {
		limit = 100
	}
	if limit > 1000 {
		limit = 1000
	}
	if skip < 0 {
		skip = 0
	}
	return s.oppRepo.List(status, pipelineStatus, skip, limit)
}

// Create inserts a new opportunity, generating the next readable id
// from the highest existing one. createdBy is the authenticated user's
// email, used when the payload does not name a creator.
func (s *OpportunityService) Create(req CreateOpportunityRequest, createdBy string) (*models.Opportunity, error) {
	last, err := s.oppRepo.LastOpportunityID()
	if err != nil {
		return nil, fmt.Errorf("failed to look up last opportunity id: %w", err)
	}

	opp := &models.Opportunity{
		OpportunityID:          nextOpportunityID(last),
		OpportunityName:        req.OpportunityName,
		ClientID:               req.ClientID,
		ClientName:             req.ClientName,
		LeadSource:             req.LeadSource,
		CloseDate:              req.CloseDate,
		Type:                   req.Type,
		Amount:                 req.Amount,
		Currency:               req.Currency,
		Value:                  req.Value,
		InternalRecommendation: req.InternalRecommendation,
		PipelineStatus:         req.PipelineStatus,
		WinProbability:         req.WinProbability,
		NextSteps:              req.NextSteps,
		Status:                 req.Status,
		CreatedBy:              req.CreatedBy,
	}
	if opp.CreatedBy == "" {
		opp.CreatedBy = createdBy
	}

	if err := s.oppRepo.Create(opp); err != nil {
		return nil, fmt.Errorf("failed to save opportunity: %w", err)
	}

	s.log.Info("opportunity created", "opportunity_id", opp.OpportunityID, "created_by", opp.CreatedBy)
	return opp, nil
}

// GetView assembles the complete opportunity view across all related
// tables. SOW documents are resolved through the SOW record's id.
func (s *OpportunityService) GetView(opportunityID string) (*models.OpportunityView, error) {
	opp, err := s.oppRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	if opp == nil {
		return nil, ErrNotFound
	}

	rfpDetails, err := s.rfpRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get RFP details: %w", err)
	}

	rfpDocuments, err := s.rfpDocRepo.List(opportunityID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get RFP documents: %w", err)
	}

	sowDetails, err := s.sowRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get SOW details: %w", err)
	}

	var sowDocuments []models.SOWDocument
	if sowDetails != nil {
		sowDocuments, err = s.sowDocRepo.ListBySOWID(sowDetails.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get SOW documents: %w", err)
		}
	}

	if rfpDocuments == nil {
		rfpDocuments = []models.RFPDocument{}
	}
	if sowDocuments == nil {
		sowDocuments = []models.SOWDocument{}
	}

	return &models.OpportunityView{
		Opportunity:  opp,
		RFPDetails:   rfpDetails,
		RFPDocuments: rfpDocuments,
		SOWDetails:   sowDetails,
		SOWDocuments: sowDocuments,
	}, nil
}

// Update applies a partial update. When the pipeline status moves to
// "Converted to SOW" and the opportunity has no SOW record yet, a draft
// SOW is inserted first, copying the opportunity's commercial fields.
// The existence check makes the trigger idempotent per opportunity;
// there is no lock around check-then-insert, so concurrent converts can
// race.
func (s *OpportunityService) Update(opportunityID string, req UpdateOpportunityRequest) (*models.Opportunity, error) {
	fields := req.fields()
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	opp, err := s.oppRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	if opp == nil {
		return nil, ErrNotFound
	}

	if req.PipelineStatus != nil && *req.PipelineStatus == PipelineStatusConverted {
		existing, err := s.sowRepo.GetByOpportunityID(opportunityID)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing SOW: %w", err)
		}
		if existing == nil {
			title := opp.OpportunityName + " - SOW"
			draft := "Draft"
			sow := &models.SOWDetails{
				OpportunityID: opportunityID,
				SOWTitle:      &title,
				SOWStatus:     &draft,
				ContractValue: opp.Amount,
				Currency:      opp.Currency,
				Value:         opp.Value,
			}
			if err := s.sowRepo.Create(sow); err != nil {
				return nil, fmt.Errorf("failed to auto-create SOW details: %w", err)
			}
			s.log.Info("draft SOW auto-created", "opportunity_id", opportunityID)
		}
	}

	matched, err := s.oppRepo.Update(opportunityID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update opportunity: %w", err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	return s.oppRepo.GetByOpportunityID(opportunityID)
}

// Delete removes the opportunity; RFP/SOW details and documents go with
// it (CASCADE handles the related records). Linked projects are kept:
// delivery records outlive the deal that produced them.
func (s *OpportunityService) Delete(opportunityID string) error {
	deleted, err := s.oppRepo.Delete(opportunityID)
	if err != nil {
		return fmt.Errorf("failed to delete opportunity: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}

	s.log.Info("opportunity deleted", "opportunity_id", opportunityID)
	return nil
}

// nextOpportunityID generates the next readable id from the highest
// existing one ("OPP-007" -> "OPP-008", "" -> "OPP-001").
func nextOpportunityID(last string) string {
	next := 1
	if parts := strings.SplitN(last, "-", 2); len(parts) == 2 {
		if n, err := strconv.Atoi(parts[1]); err == nil {
			next = n + 1
		}
	}
	return fmt.Sprintf("OPP-%03d", next)
}
