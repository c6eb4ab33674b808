package services

import (
	"context"
	"regexp"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"fundraising-service/internal/core/domain"
	"fundraising-service/internal/core/ports/output"
)

// Simplified testnet address check, carried over from the original product.
var btcAddressPattern = regexp.MustCompile(`^[123][a-km-zA-HJ-NP-Z1-9]{25,34}$`)

// Trainer retrains the outcome classifiers over the current corpus.
type Trainer interface {
	Train(ctx context.Context) error
}

// EmbeddingRefresher pre-warms corpus embeddings after a store mutation.
type EmbeddingRefresher interface {
	RefreshEmbeddings(ctx context.Context) ([][]float64, error)
}

// CampaignService owns the campaign lifecycle: create, browse, donate and
// status overrides. Every mutation refreshes the CSV mirror, and creation
// additionally retrains the ensemble; both follow-ups are log-and-continue,
// they never fail the request that triggered them.
type CampaignService struct {
	repo      ports.CampaignRepository
	exporter  ports.CampaignExporter
	trainer   Trainer
	refresher EmbeddingRefresher
}

func NewCampaignService(repo ports.CampaignRepository, exporter ports.CampaignExporter, trainer Trainer, refresher EmbeddingRefresher) *CampaignService {
	return &CampaignService{repo: repo, exporter: exporter, trainer: trainer, refresher: refresher}
}

func (s *CampaignService) Create(ctx context.Context, title, description, btcAddress string, targetAmount float64, ownerName string) (*domain.Campaign, error) {
	switch {
	case strings.TrimSpace(title) == "":
		return nil, domain.ErrInvalidTitle
	case strings.TrimSpace(description) == "":
		return nil, domain.ErrInvalidDescription
	case !btcAddressPattern.MatchString(btcAddress):
		return nil, domain.ErrInvalidBTCAddress
	case targetAmount <= 0:
		return nil, domain.ErrInvalidTargetAmount
	case strings.TrimSpace(ownerName) == "":
		return nil, domain.ErrInvalidOwnerName
	}

	campaign := &domain.Campaign{
		CreatedAt:     time.Now().UTC(),
		Title:         title,
		Description:   description,
		BTCAddress:    btcAddress,
		TargetAmount:  targetAmount,
		CurrentAmount: 0,
		OwnerName:     ownerName,
		Status:        domain.CampaignStatusActive,
	}

	if err := s.repo.Create(ctx, campaign); err != nil {
		return nil, err
	}

	s.mirror(ctx)

	// Refit the models over the corpus that now includes this campaign; the
	// campaign is already committed, so model trouble must not surface here.
	if err := s.trainer.Train(ctx); err != nil {
		log.WithError(err).Warn("post-create training failed")
	}
	if _, err := s.refresher.RefreshEmbeddings(ctx); err != nil {
		log.WithError(err).Warn("post-create embedding refresh failed")
	}

	return campaign, nil
}

func (s *CampaignService) Get(ctx context.Context, id int64) (*domain.Campaign, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *CampaignService) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Campaign, error) {
	if filter.Status != "" && !domain.ValidStatus(domain.CampaignStatus(filter.Status)) {
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, filter)
}

// Donate adds amount to the campaign total. The repository flips the status
// to Funded in the same statement when the target is reached.
func (s *CampaignService) Donate(ctx context.Context, id int64, amount float64) (*domain.Campaign, error) {
	if amount <= 0 {
		return nil, domain.ErrInvalidDonation
	}

	campaign, err := s.repo.RecordDonation(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.mirror(ctx)
	return campaign, nil
}

// SetStatus is the explicit override operation; it does not touch amounts.
func (s *CampaignService) SetStatus(ctx context.Context, id int64, status domain.CampaignStatus) error {
	if !domain.ValidStatus(status) {
		return domain.ErrInvalidStatus
	}

	if err := s.repo.SetStatus(ctx, id, status); err != nil {
		return err
	}

	s.mirror(ctx)
	return nil
}

// mirror re-exports the full campaign table. Export failures are logged and
// swallowed; the store stays the source of truth.
func (s *CampaignService) mirror(ctx context.Context) {
	campaigns, err := s.repo.List(ctx, ports.ListFilter{})
	if err != nil {
		log.WithError(err).Warn("csv mirror: listing campaigns failed")
		return
	}
	if err := s.exporter.Export(ctx, campaigns); err != nil {
		log.WithError(err).Warn("csv mirror: export failed")
	}
}
