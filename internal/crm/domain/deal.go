package domain

import "time"

// Deal pipeline statuses.
const (
	DealStatusProspecting   = "prospecting"
	DealStatusQualification = "qualification"
	DealStatusProposal      = "proposal"
	DealStatusNegotiation   = "negotiation"
	DealStatusClosedWon     = "closed-won"
	DealStatusClosedLost    = "closed-lost"
)

// Deal priorities.
const (
	DealPriorityLow    = "low"
	DealPriorityMedium = "medium"
	DealPriorityHigh   = "high"
)

// Deal is a sales opportunity record. AssignedTo is always the owner and
// UpdatedAt is refreshed on every update, whatever the patch touched.
type Deal struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Value             float64   `json:"value"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	CustomerID        string    `json:"customerId"`
	CustomerName      string    `json:"customerName"`
	CustomerCompany   string    `json:"customerCompany"`
	ExpectedCloseDate string    `json:"expectedCloseDate"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
	AssignedTo        string    `json:"assignedTo"`
	Source            string    `json:"source"`
	Tags              []string  `json:"tags"`
}

// DealPatch is a partial update for a deal: nil fields are left unchanged.
// Ownership fields (AssignedTo) and CreatedAt are deliberately not patchable.
type DealPatch struct {
	Title             *string   `json:"title"`
	Description       *string   `json:"description"`
	Value             *float64  `json:"value"`
	Status            *string   `json:"status"`
	Priority          *string   `json:"priority"`
	CustomerID        *string   `json:"customerId"`
	CustomerName      *string   `json:"customerName"`
	CustomerCompany   *string   `json:"customerCompany"`
	ExpectedCloseDate *string   `json:"expectedCloseDate"`
	Source            *string   `json:"source"`
	Tags              *[]string `json:"tags"`
}

// Apply merges the patch into the deal and refreshes UpdatedAt.
func (d *Deal) Apply(p DealPatch, now time.Time) {
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Description != nil {
		d.Description = *p.Description
	}
	if p.Value != nil {
		d.Value = *p.Value
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.Priority != nil {
		d.Priority = *p.Priority
	}
	if p.CustomerID != nil {
		d.CustomerID = *p.CustomerID
	}
	if p.CustomerName != nil {
		d.CustomerName = *p.CustomerName
	}
	if p.CustomerCompany != nil {
		d.CustomerCompany = *p.CustomerCompany
	}
	if p.ExpectedCloseDate != nil {
		d.ExpectedCloseDate = *p.ExpectedCloseDate
	}
	if p.Source != nil {
		d.Source = *p.Source
	}
	if p.Tags != nil {
		d.Tags = *p.Tags
	}
	d.UpdatedAt = now
}
