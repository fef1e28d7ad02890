package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the delivery record auto-created when a SOW is signed.
type Project struct {
	ID                  uuid.UUID  `json:"id"`
	ProjectName         string     `json:"project_name"`
	ClientName          string     `json:"client_name"`
	LinkedOpportunityID string     `json:"linked_opportunity_id"`
	ContractValue       float64    `json:"contract_value"`
	Currency            string     `json:"currency"`
	TargetKickoffDate   *time.Time `json:"target_kickoff_date,omitempty"`
	Status              string     `json:"status"`       // 'Planned' on creation
	ProjectType         string     `json:"project_type"` // 'New'
	Priority            string     `json:"priority"`     // 'Medium'
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func (p *Project) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	if p.Status == "" {
		p.Status = "Planned"
	}
	if p.ProjectType == "" {
		p.ProjectType = "New"
	}
	if p.Priority == "" {
		p.Priority = "Medium"
	}
}
