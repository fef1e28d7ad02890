package models

import (
	"time"

	"github.com/google/uuid"
)

// SOWDetails is created either explicitly or automatically when an
// opportunity converts. At most one record per opportunity.
type SOWDetails struct {
	ID                uuid.UUID  `json:"id"`
	OpportunityID     string     `json:"opportunity_id"`
	SOWTitle          *string    `json:"sow_title,omitempty"`
	SOWStatus         *string    `json:"sow_status,omitempty"` // Draft / Signed
	ContractValue     float64    `json:"contract_value"`
	Currency          string     `json:"currency"`
	Value             float64    `json:"value"`
	TargetKickoffDate *time.Time `json:"target_kickoff_date,omitempty"`
	LinkedProposalRef *string    `json:"linked_proposal_ref,omitempty"`
	ScopeOverview     *string    `json:"scope_overview,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func (s *SOWDetails) Prepare() {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Currency == "" {
		s.Currency = "USD"
	}
}

// SOWDocument references its parent SOW record, not the opportunity.
type SOWDocument struct {
	ID         uuid.UUID `json:"id"`
	SOWID      uuid.UUID `json:"sow_id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (d *SOWDocument) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
}
