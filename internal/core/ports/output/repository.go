package ports

import (
	"context"

	"fundraising-service/internal/core/domain"
)

type ListFilter struct {
	Status string
}

// CampaignRepository is the durable campaign store. List and Snapshot return
// whatever is currently committed; no isolation beyond that is promised.
type CampaignRepository interface {
	Create(ctx context.Context, campaign *domain.Campaign) error
	GetByID(ctx context.Context, id int64) (*domain.Campaign, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Campaign, error)

	// RecordDonation adds amount to the campaign's current total and flips
	// the status to Funded atomically when the target is reached. Returns
	// the updated row.
	RecordDonation(ctx context.Context, id int64, amount float64) (*domain.Campaign, error)

	SetStatus(ctx context.Context, id int64, status domain.CampaignStatus) error

	// Snapshot reads the corpus view used by similarity and training,
	// most-recently-created first.
	Snapshot(ctx context.Context) ([]domain.CorpusEntry, error)
}
