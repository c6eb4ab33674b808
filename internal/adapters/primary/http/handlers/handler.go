package handlers

import (
	"fundraising-service/internal/core/services"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	campaignSvc   *services.CampaignService
	similaritySvc *services.SimilarityService
	predictorSvc  *services.PredictorService

	topK      int
	threshold float64
}

func New(
	campaignSvc *services.CampaignService,
	similaritySvc *services.SimilarityService,
	predictorSvc *services.PredictorService,
	topK int,
	threshold float64,
) *Handler {
	return &Handler{
		campaignSvc:   campaignSvc,
		similaritySvc: similaritySvc,
		predictorSvc:  predictorSvc,
		topK:          topK,
		threshold:     threshold,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// Campaigns
	r.GET("/campaigns", h.ListCampaigns)
	r.GET("/campaigns/:id", h.GetCampaign)
	r.POST("/campaigns", h.CreateCampaign)
	r.POST("/campaigns/:id/donations", h.Donate)
	r.PATCH("/campaigns/:id/status", h.SetCampaignStatus)

	// Similarity
	r.POST("/campaigns/similar", h.FindSimilarCampaigns)

	// Predictions
	r.GET("/campaigns/:id/score", h.GetCampaignScore)
	r.POST("/predictions", h.PredictDraft)
	r.POST("/train", h.Train)
}
