package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fundraising-service/internal/core/domain"
	ports "fundraising-service/internal/core/ports/output"
	"fundraising-service/internal/core/services"
	"fundraising-service/internal/testutil"
)

const testBTCAddress = "1BvBMSEYstWetqTFn5Au4m4GFg7xJaNVN2"

type routerFixture struct {
	repo      *testutil.MockCampaignRepo
	embedder  *testutil.MockEmbedder
	artifacts *testutil.MockArtifactStore
	exporter  *testutil.MockExporter
	router    *gin.Engine
}

func setupRouter() *routerFixture {
	gin.SetMode(gin.TestMode)

	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	artifacts := new(testutil.MockArtifactStore)
	exporter := new(testutil.MockExporter)

	similaritySvc := services.NewSimilarityService(repo, embedder)
	predictorSvc := services.NewPredictorService(repo, artifacts)
	campaignSvc := services.NewCampaignService(repo, exporter, predictorSvc, similaritySvc)

	h := New(campaignSvc, similaritySvc, predictorSvc, 3, 0.3)
	r := gin.New()
	api := r.Group("/api/v1/fundraising")
	h.RegisterRoutes(api)

	return &routerFixture{
		repo:      repo,
		embedder:  embedder,
		artifacts: artifacts,
		exporter:  exporter,
		router:    r,
	}
}

func (f *routerFixture) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func storedCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:            12,
		CreatedAt:     time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		Title:         "Community garden",
		Description:   "Raised beds for the school yard",
		BTCAddress:    testBTCAddress,
		TargetAmount:  2.0,
		CurrentAmount: 0.5,
		OwnerName:     "Ana",
		Status:        domain.CampaignStatusActive,
	}
}

func TestListCampaigns(t *testing.T) {
	f := setupRouter()

	f.repo.On("List", mock.Anything, ports.ListFilter{}).
		Return([]*domain.Campaign{storedCampaign()}, nil)

	w := f.do("GET", "/api/v1/fundraising/campaigns", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["total"])

	items := resp["items"].([]interface{})
	first := items[0].(map[string]interface{})
	assert.Equal(t, float64(25), first["progress_pct"])
}

func TestListCampaigns_StatusFilter(t *testing.T) {
	f := setupRouter()

	f.repo.On("List", mock.Anything, ports.ListFilter{Status: "Funded"}).
		Return([]*domain.Campaign{}, nil)

	w := f.do("GET", "/api/v1/fundraising/campaigns?status=Funded", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	f.repo.AssertExpectations(t)
}

func TestListCampaigns_InvalidStatusFilter(t *testing.T) {
	f := setupRouter()

	w := f.do("GET", "/api/v1/fundraising/campaigns?status=Paused", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestGetCampaign(t *testing.T) {
	f := setupRouter()

	f.repo.On("GetByID", mock.Anything, int64(12)).Return(storedCampaign(), nil)

	w := f.do("GET", "/api/v1/fundraising/campaigns/12", nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Community garden", resp["title"])
}

func TestGetCampaign_NotFound(t *testing.T) {
	f := setupRouter()

	f.repo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrCampaignNotFound)

	w := f.do("GET", "/api/v1/fundraising/campaigns/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetCampaign_InvalidID(t *testing.T) {
	f := setupRouter()

	w := f.do("GET", "/api/v1/fundraising/campaigns/not-a-number", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCampaign(t *testing.T) {
	f := setupRouter()

	f.repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Campaign")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Campaign).ID = 12
		}).
		Return(nil)
	f.repo.On("List", mock.Anything, ports.ListFilter{}).
		Return([]*domain.Campaign{storedCampaign()}, nil)
	f.exporter.On("Export", mock.Anything, mock.Anything).Return(nil)
	// Post-create training and the initial score both see the pre-training
	// world: tiny corpus, no artifacts yet.
	f.repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{}, nil)
	f.artifacts.On("Load", "logistic").Return(nil, domain.ErrModelNotTrained)

	w := f.do("POST", "/api/v1/fundraising/campaigns", map[string]interface{}{
		"title":         "Community garden",
		"description":   "Raised beds for the school yard",
		"btc_address":   testBTCAddress,
		"target_amount": 2.0,
		"owner_name":    "Ana",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	campaign := resp["campaign"].(map[string]interface{})
	assert.Equal(t, float64(12), campaign["id"])
	assert.Equal(t, "Active", campaign["status"])

	prediction := resp["prediction"].(map[string]interface{})
	assert.Equal(t, false, prediction["trained"])
	assert.Equal(t, "Model not found. Train first.", prediction["feedback"])

	f.artifacts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestCreateCampaign_InvalidAddress(t *testing.T) {
	f := setupRouter()

	w := f.do("POST", "/api/v1/fundraising/campaigns", map[string]interface{}{
		"title":         "Community garden",
		"description":   "Raised beds for the school yard",
		"btc_address":   "0invalidaddress",
		"target_amount": 2.0,
		"owner_name":    "Ana",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestDonate(t *testing.T) {
	f := setupRouter()

	funded := storedCampaign()
	funded.CurrentAmount = 2.1
	funded.Status = domain.CampaignStatusFunded

	f.repo.On("RecordDonation", mock.Anything, int64(12), 1.6).Return(funded, nil)
	f.repo.On("List", mock.Anything, ports.ListFilter{}).
		Return([]*domain.Campaign{funded}, nil)
	f.exporter.On("Export", mock.Anything, mock.Anything).Return(nil)

	w := f.do("POST", "/api/v1/fundraising/campaigns/12/donations", map[string]interface{}{
		"amount": 1.6,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Funded", resp["status"])
	assert.Equal(t, float64(100), resp["progress_pct"])
}

func TestDonate_NonPositiveAmount(t *testing.T) {
	f := setupRouter()

	w := f.do("POST", "/api/v1/fundraising/campaigns/12/donations", map[string]interface{}{
		"amount": -5.0,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.repo.AssertNotCalled(t, "RecordDonation", mock.Anything, mock.Anything, mock.Anything)
}

func TestDonate_CampaignNotFound(t *testing.T) {
	f := setupRouter()

	f.repo.On("RecordDonation", mock.Anything, int64(99), 1.0).
		Return(nil, domain.ErrCampaignNotFound)

	w := f.do("POST", "/api/v1/fundraising/campaigns/99/donations", map[string]interface{}{
		"amount": 1.0,
	})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetCampaignStatus(t *testing.T) {
	f := setupRouter()

	closed := storedCampaign()
	closed.Status = domain.CampaignStatusClosed

	f.repo.On("SetStatus", mock.Anything, int64(12), domain.CampaignStatusClosed).Return(nil)
	f.repo.On("List", mock.Anything, ports.ListFilter{}).
		Return([]*domain.Campaign{closed}, nil)
	f.exporter.On("Export", mock.Anything, mock.Anything).Return(nil)
	f.repo.On("GetByID", mock.Anything, int64(12)).Return(closed, nil)

	w := f.do("PATCH", "/api/v1/fundraising/campaigns/12/status", map[string]interface{}{
		"status": "Closed",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Closed", resp["status"])
}

func TestSetCampaignStatus_InvalidValue(t *testing.T) {
	f := setupRouter()

	w := f.do("PATCH", "/api/v1/fundraising/campaigns/12/status", map[string]interface{}{
		"status": "Archived",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	f.repo.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}
