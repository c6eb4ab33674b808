package handlers

import (
	"net/http"
	"strconv"

	"fundraising-service/internal/adapters/primary/http/dto"
	"fundraising-service/internal/core/domain"
	ports "fundraising-service/internal/core/ports/output"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func (h *Handler) ListCampaigns(c *gin.Context) {
	filter := ports.ListFilter{
		Status: c.Query("status"),
	}

	campaigns, err := h.campaignSvc.List(c.Request.Context(), filter)
	if err != nil {
		log.WithError(err).Error("list campaigns failed")
		mapDomainError(c, err)
		return
	}

	items := make([]dto.CampaignResponse, 0, len(campaigns))
	for _, campaign := range campaigns {
		items = append(items, dto.ToCampaignResponse(campaign))
	}

	c.JSON(http.StatusOK, dto.ListCampaignsResponse{
		Items: items,
		Total: len(items),
	})
}

func (h *Handler) GetCampaign(c *gin.Context) {
	id, err := getCampaignID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	campaign, err := h.campaignSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

func (h *Handler) CreateCampaign(c *gin.Context) {
	var req dto.CreateCampaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignSvc.Create(
		c.Request.Context(),
		req.Title, req.Description, req.BTCAddress, req.TargetAmount, req.OwnerName,
	)
	if err != nil {
		log.WithError(err).Error("create campaign failed")
		mapDomainError(c, err)
		return
	}

	resp := dto.CreateCampaignResponse{
		Campaign: dto.ToCampaignResponse(campaign),
	}

	// The initial score is advisory; a prediction failure never undoes the
	// committed campaign.
	if prediction, err := h.predictorSvc.Predict(
		c.Request.Context(), campaign.Title, campaign.Description, campaign.TargetAmount,
	); err != nil {
		log.WithError(err).Warn("initial prediction failed")
	} else {
		p := dto.ToPredictionResponse(prediction)
		resp.Prediction = &p
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) Donate(c *gin.Context) {
	id, err := getCampaignID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	var req dto.DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	campaign, err := h.campaignSvc.Donate(c.Request.Context(), id, req.Amount)
	if err != nil {
		log.WithError(err).Error("donation failed")
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

func (h *Handler) SetCampaignStatus(c *gin.Context) {
	id, err := getCampaignID(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid campaign id"})
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.campaignSvc.SetStatus(c.Request.Context(), id, domain.CampaignStatus(req.Status)); err != nil {
		log.WithError(err).Error("status override failed")
		mapDomainError(c, err)
		return
	}

	campaign, err := h.campaignSvc.Get(c.Request.Context(), id)
	if err != nil {
		mapDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCampaignResponse(campaign))
}

func getCampaignID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}
