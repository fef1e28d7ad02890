package models

import (
	"time"

	"github.com/google/uuid"
)

// Opportunity is the core pipeline record. OpportunityID is the readable
// business key ("OPP-001") that all related records reference.
type Opportunity struct {
	ID                     uuid.UUID  `json:"id"`
	OpportunityID          string     `json:"opportunity_id"`
	OpportunityName        string     `json:"opportunity_name"`
	ClientID               *string    `json:"client_id,omitempty"`
	ClientName             string     `json:"client_name"`
	LeadSource             *string    `json:"lead_source,omitempty"`
	CloseDate              *time.Time `json:"close_date,omitempty"`
	Type                   string     `json:"type"` // 'New Business' or 'Existing Business'
	Amount                 float64    `json:"amount"`
	Currency               string     `json:"currency"`
	Value                  float64    `json:"value"`
	InternalRecommendation *string    `json:"internal_recommendation,omitempty"`
	PipelineStatus         string     `json:"pipeline_status"`
	WinProbability         int        `json:"win_probability"`
	NextSteps              *string    `json:"next_steps,omitempty"`
	Status                 string     `json:"status"` // 'Active' or 'Closed'
	CreatedBy              string     `json:"created_by"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

func (o *Opportunity) Prepare() {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Type == "" {
		o.Type = "New Business"
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
	if o.PipelineStatus == "" {
		o.PipelineStatus = "Prospecting"
	}
	if o.WinProbability == 0 {
		o.WinProbability = 10
	}
	if o.Status == "" {
		o.Status = "Active"
	}
}

// OpportunityView aggregates an opportunity with all related records.
type OpportunityView struct {
	Opportunity  *Opportunity  `json:"opportunity"`
	RFPDetails   *RFPDetails   `json:"rfp_details"`
	RFPDocuments []RFPDocument `json:"rfp_documents"`
	SOWDetails   *SOWDetails   `json:"sow_details"`
	SOWDocuments []SOWDocument `json:"sow_documents"`
}
