package ports

import (
	"context"

	"fundraising-service/internal/core/domain"
)

// CampaignExporter mirrors the full campaign table to an external flat file
// after every store mutation. The core never reads the mirror back.
type CampaignExporter interface {
	Export(ctx context.Context, campaigns []*domain.Campaign) error
}
