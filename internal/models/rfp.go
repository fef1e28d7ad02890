package models

import (
	"time"

	"github.com/google/uuid"
)

// QALogEntry is one question/answer exchange on an RFP. The list is
// stored as a JSONB column on rfp_details.
type QALogEntry struct {
	Question   string     `json:"question"`
	Answer     *string    `json:"answer,omitempty"`
	AskedBy    *string    `json:"asked_by,omitempty"`
	AskedAt    *time.Time `json:"asked_at,omitempty"`
	AnsweredBy *string    `json:"answered_by,omitempty"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
}

// RFPDetails holds the RFP data for an opportunity. At most one record
// per opportunity (UNIQUE on opportunity_id).
type RFPDetails struct {
	ID                 uuid.UUID    `json:"id"`
	OpportunityID      string       `json:"opportunity_id"`
	RFPTitle           *string      `json:"rfp_title,omitempty"`
	RFPStatus          *string      `json:"rfp_status,omitempty"` // Won / Lost / In Progress
	SubmissionDeadline *time.Time   `json:"submission_deadline,omitempty"`
	BidManager         *string      `json:"bid_manager,omitempty"`
	SubmissionMode     *string      `json:"submission_mode,omitempty"` // Portal / Email / Manual
	PortalURL          *string      `json:"portal_url,omitempty"`
	QALogs             []QALogEntry `json:"qa_logs"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

func (r *RFPDetails) Prepare() {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.QALogs == nil {
		r.QALogs = []QALogEntry{}
	}
}

// RFPDocument is uploaded-file metadata; the binary lives in external
// storage, only file_url is kept here.
type RFPDocument struct {
	ID            uuid.UUID `json:"id"`
	OpportunityID string    `json:"opportunity_id"`
	DocumentType  string    `json:"document_type"` // RFP / Proposal / Presentation / Commercial / Other
	FileName      string    `json:"file_name"`
	FileURL       string    `json:"file_url"`
	UploadedBy    string    `json:"uploaded_by"`
	UploadedAt    time.Time `json:"uploaded_at"`
}

func (d *RFPDocument) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
}
