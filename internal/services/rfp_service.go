package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"salescrm/internal/models"
	"salescrm/internal/repositories"
)

type RFPService struct {
	oppRepo *repositories.OpportunityRepository
	rfpRepo *repositories.RFPDetailsRepository
	docRepo *repositories.RFPDocumentRepository
}

func NewRFPService(
	oppRepo *repositories.OpportunityRepository,
	rfpRepo *repositories.RFPDetailsRepository,
	docRepo *repositories.RFPDocumentRepository,
) *RFPService {
	return &RFPService{
		oppRepo: oppRepo,
		rfpRepo: rfpRepo,
		docRepo: docRepo,
	}
}

type CreateRFPDetailsRequest struct {
	RFPTitle           *string             `json:"rfp_title,omitempty"`
	RFPStatus          *string             `json:"rfp_status,omitempty"`
	SubmissionDeadline *time.Time          `json:"submission_deadline,omitempty"`
	BidManager         *string             `json:"bid_manager,omitempty"`
	SubmissionMode     *string             `json:"submission_mode,omitempty"`
	PortalURL          *string             `json:"portal_url,omitempty"`
	QALogs             []models.QALogEntry `json:"qa_logs,omitempty"`
}

type UpdateRFPDetailsRequest struct {
	RFPTitle           *string              `json:"rfp_title,omitempty"`
	RFPStatus          *string              `json:"rfp_status,omitempty"`
	SubmissionDeadline *time.Time           `json:"submission_deadline,omitempty"`
	BidManager         *string              `json:"bid_manager,omitempty"`
	SubmissionMode     *string              `json:"submission_mode,omitempty"`
	PortalURL          *string              `json:"portal_url,omitempty"`
	QALogs             *[]models.QALogEntry `json:"qa_logs,omitempty"`
}

func (r *UpdateRFPDetailsRequest) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if r.RFPTitle != nil {
		fields["rfp_title"] = *r.RFPTitle
	}
	if r.RFPStatus != nil {
		fields["rfp_status"] = *r.RFPStatus
	}
	if r.SubmissionDeadline != nil {
		fields["submission_deadline"] = *r.SubmissionDeadline
	}
	if r.BidManager != nil {
		fields["bid_manager"] = *r.BidManager
	}
	if r.SubmissionMode != nil {
		fields["submission_mode"] = *r.SubmissionMode
	}
	if r.PortalURL != nil {
		fields["portal_url"] = *r.PortalURL
	}
	if r.QALogs != nil {
		fields["qa_logs"] = *r.QALogs
	}
	return fields
}

func (s *RFPService) GetDetails(opportunityID string) (*models.RFPDetails, error) {
	rfp, err := s.rfpRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get RFP details: %w", err)
	}
	if rfp == nil {
		return nil, ErrNotFound
	}
	return rfp, nil
}

func (s *RFPService) ListDetails(opportunityID string) ([]models.RFPDetails, error) {
	return s.rfpRepo.List(opportunityID)
}

// CreateDetails inserts the 1:1 RFP record for an opportunity.
// ErrNotFound when the opportunity is missing, ErrAlreadyExists when a
// record is already attached.
func (s *RFPService) CreateDetails(opportunityID string, req CreateRFPDetailsRequest) (*models.RFPDetails, error) {
	opp, err := s.oppRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to get opportunity: %w", err)
	}
	if opp == nil {
		return nil, ErrNotFound
	}

	existing, err := s.rfpRepo.GetByOpportunityID(opportunityID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing RFP details: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyExists
	}

	rfp := &models.RFPDetails{
		OpportunityID:      opportunityID,
		RFPTitle:           req.RFPTitle,
		RFPStatus:          req.RFPStatus,
		SubmissionDeadline: req.SubmissionDeadline,
		BidManager:         req.BidManager,
		SubmissionMode:     req.SubmissionMode,
		PortalURL:          req.PortalURL,
		QALogs:             req.QALogs,
	}

	if err := s.rfpRepo.Create(rfp); err != nil {
		return nil, fmt.Errorf("failed to save RFP details: %w", err)
	}

	return rfp, nil
}

func (s *RFPService) UpdateDetails(opportunityID string, req UpdateRFPDetailsRequest) (*models.RFPDetails, error) {
	fields := req.fields()
	if len(fields) == 0 {
		return nil, ErrNoFields
	}

	matched, err := s.rfpRepo.Update(opportunityID, fields)
	if err != nil {
		return nil, fmt.Errorf("failed to update RFP details: %w", err)
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	return s.rfpRepo.GetByOpportunityID(opportunityID)
}

type CreateRFPDocumentRequest struct {
	DocumentType string `json:"document_type" binding:"required"`
	FileName     string `json:"file_name" binding:"required"`
	FileURL      string `json:"file_url" binding:"required"`
	UploadedBy   string `json:"uploaded_by,omitempty"`
}

func (s *RFPService) ListDocuments(opportunityID, documentType string) ([]models.RFPDocument, error) {
	docs, err := s.docRepo.List(opportunityID, documentType)
	if err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.RFPDocument{}
	}
	return docs, nil
}

// CreateDocument records uploaded-file metadata. uploadedBy is the
// authenticated user's email, used when the payload does not name an
// uploader.
func (s *RFPService) CreateDocument(opportunityID string, req CreateRFPDocumentRequest, uploadedBy string) (*models.RFPDocument, error) {
	doc := &models.RFPDocument{
		OpportunityID: opportunityID,
		DocumentType:  req.DocumentType,
		FileName:      req.FileName,
		FileURL:       req.FileURL,
		UploadedBy:    req.UploadedBy,
	}
	if doc.UploadedBy == "" {
		doc.UploadedBy = uploadedBy
	}

	if err := s.docRepo.Create(doc); err != nil {
		return nil, fmt.Errorf("failed to save RFP document: %w", err)
	}

	return doc, nil
}

func (s *RFPService) DeleteDocument(opportunityID string, documentID uuid.UUID) error {
	deleted, err := s.docRepo.Delete(opportunityID, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete RFP document: %w", err)
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}
