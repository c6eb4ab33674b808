package testutil

import (
	"context"

	"github.com/stretchr/testify/mock"

	"fundraising-service/internal/core/domain"
	"fundraising-service/internal/core/ports/output"
)

// MockCampaignRepo is a mock of CampaignRepository.
type MockCampaignRepo struct {
	mock.Mock
}

func (m *MockCampaignRepo) Create(ctx context.Context, campaign *domain.Campaign) error {
	args := m.Called(ctx, campaign)
	return args.Error(0)
}

func (m *MockCampaignRepo) GetByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepo) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Campaign, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepo) RecordDonation(ctx context.Context, id int64, amount float64) (*domain.Campaign, error) {
	args := m.Called(ctx, id, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Campaign), args.Error(1)
}

func (m *MockCampaignRepo) SetStatus(ctx context.Context, id int64, status domain.CampaignStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockCampaignRepo) Snapshot(ctx context.Context) ([]domain.CorpusEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CorpusEntry), args.Error(1)
}

// MockEmbedder is a mock of Embedder.
type MockEmbedder struct {
	mock.Mock
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float64), args.Error(1)
}

func (m *MockEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	args := m.Called(ctx, texts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), args.Error(1)
}

// MockArtifactStore is a mock of ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(family string, blob []byte) error {
	args := m.Called(family, blob)
	return args.Error(0)
}

func (m *MockArtifactStore) Load(family string) ([]byte, error) {
	args := m.Called(family)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockExporter is a mock of CampaignExporter.
type MockExporter struct {
	mock.Mock
}

func (m *MockExporter) Export(ctx context.Context, campaigns []*domain.Campaign) error {
	args := m.Called(ctx, campaigns)
	return args.Error(0)
}

// MockTrainer is a mock of the campaign service's Trainer collaborator.
type MockTrainer struct {
	mock.Mock
}

func (m *MockTrainer) Train(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockRefresher is a mock of the campaign service's EmbeddingRefresher
// collaborator.
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) RefreshEmbeddings(ctx context.Context) ([][]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]float64), args.Error(1)
}
