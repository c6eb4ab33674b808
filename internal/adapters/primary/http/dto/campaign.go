package dto

import (
	"time"

	"fundraising-service/internal/core/domain"
)

type CreateCampaignRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	BTCAddress   string  `json:"btc_address"`
	TargetAmount float64 `json:"target_amount"`
	OwnerName    string  `json:"owner_name"`
}

type DonationRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CampaignResponse struct {
	ID            int64   `json:"id"`
	CreatedAt     string  `json:"created_at"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	BTCAddress    string  `json:"btc_address"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	OwnerName     string  `json:"owner_name"`
	Status        string  `json:"status"`
	ProgressPct   float64 `json:"progress_pct"`
}

type CreateCampaignResponse struct {
	Campaign   CampaignResponse    `json:"campaign"`
	Prediction *PredictionResponse `json:"prediction,omitempty"`
}

type ListCampaignsResponse struct {
	Items []CampaignResponse `json:"items"`
	Total int                `json:"total"`
}

func ToCampaignResponse(c *domain.Campaign) CampaignResponse {
	return CampaignResponse{
		ID:            c.ID,
		CreatedAt:     c.CreatedAt.UTC().Format(time.RFC3339),
		Title:         c.Title,
		Description:   c.Description,
		BTCAddress:    c.BTCAddress,
		TargetAmount:  c.TargetAmount,
		CurrentAmount: c.CurrentAmount,
		OwnerName:     c.OwnerName,
		Status:        string(c.Status),
		ProgressPct:   c.Progress(),
	}
}
