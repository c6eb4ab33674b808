package domain

import (
	"time"
)

type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "Active"
	CampaignStatusFunded CampaignStatus = "Funded"
	CampaignStatusClosed CampaignStatus = "Closed"
)

// ValidStatus reports whether s is one of the three campaign states.
func ValidStatus(s CampaignStatus) bool {
	switch s {
	case CampaignStatusActive, CampaignStatusFunded, CampaignStatusClosed:
		return true
	}
	return false
}

type Campaign struct {
	ID            int64          `json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	BTCAddress    string         `json:"btc_address"`
	TargetAmount  float64        `json:"target_amount"`
	CurrentAmount float64        `json:"current_amount"`
	OwnerName     string         `json:"owner_name"`
	Status        CampaignStatus `json:"status"`
}

// ApplyDonation adds amount to the running total and marks the campaign
// Funded the moment the target is met. The repository runs this inside the
// donation transaction.
func (c *Campaign) ApplyDonation(amount float64) {
	c.CurrentAmount += amount
	if c.CurrentAmount >= c.TargetAmount {
		c.Status = CampaignStatusFunded
	}
}

// Progress returns the funding progress as a percentage capped at 100.
func (c *Campaign) Progress() float64 {
	if c.TargetAmount <= 0 {
		return 0
	}
	p := c.CurrentAmount / c.TargetAmount * 100
	if p > 100 {
		return 100
	}
	return p
}

// CorpusEntry is a point-in-time view of one campaign's text and outcome,
// read once per similarity or training call.
type CorpusEntry struct {
	ID           int64
	Title        string
	Description  string
	TargetAmount float64
	Status       CampaignStatus
}

// Text builds the embedding input as a plain whitespace join, with no
// normalization.
func (e CorpusEntry) Text() string {
	return e.Title + " " + e.Description
}
