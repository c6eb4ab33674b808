package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fundraising-service/internal/core/domain"
	"fundraising-service/internal/testutil"
)

func TestFindSimilar_EmptyCorpus(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{}, nil)

	report, err := svc.FindSimilar(context.Background(), "Books", "Help fund books", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, report.Matches)
	assert.Equal(t, domain.SimilarityStatusEmptyCorpus, report.Status)

	// The embedder must not be touched when there is nothing to compare.
	embedder.AssertNotCalled(t, "Embed")
	embedder.AssertNotCalled(t, "EmbedBatch")
}

func TestFindSimilar_EmbedderUnavailable(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{
		{Title: "Books", Description: "Help fund books"},
	}, nil)
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return(nil, domain.ErrModelUnavailable)

	report, err := svc.FindSimilar(context.Background(), "Wells", "Dig wells", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, report.Matches)
	assert.Equal(t, domain.SimilarityStatusEmbedderUnavailable, report.Status)
}

func TestFindSimilar_ThresholdIsStrict(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{
		{Title: "exactly at threshold", Description: "a"},
		{Title: "above threshold", Description: "b"},
	}, nil)

	// Against query [1,0]: [3,4] scores 3/5 = 0.6 exactly, [4,3] scores 0.8.
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float64{
		{3, 4},
		{4, 3},
	}, nil)
	embedder.On("Embed", mock.Anything, mock.Anything).Return([]float64{1, 0}, nil)

	report, err := svc.FindSimilar(context.Background(), "q", "q", 3, 0.6)
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.Equal(t, "above threshold", report.Matches[0].Title)
	assert.InDelta(t, 0.8, report.Matches[0].Score, 1e-12)
}

func TestFindSimilar_TopKTruncation(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	corpus := make([]domain.CorpusEntry, 10)
	vecs := make([][]float64, 10)
	for i := range corpus {
		corpus[i] = domain.CorpusEntry{Title: fmt.Sprintf("campaign-%d", i), Description: "d"}
		// cos([1,0], [k,1]) = k/sqrt(k²+1), strictly increasing in k.
		vecs[i] = []float64{float64(i + 1), 1}
	}

	repo.On("Snapshot", mock.Anything).Return(corpus, nil)
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return(vecs, nil)
	embedder.On("Embed", mock.Anything, mock.Anything).Return([]float64{1, 0}, nil)

	report, err := svc.FindSimilar(context.Background(), "q", "q", 3, 0.3)
	require.NoError(t, err)
	require.Len(t, report.Matches, 3)

	assert.Equal(t, "campaign-9", report.Matches[0].Title)
	assert.Equal(t, "campaign-8", report.Matches[1].Title)
	assert.Equal(t, "campaign-7", report.Matches[2].Title)
	assert.Greater(t, report.Matches[0].Score, report.Matches[1].Score)
	assert.Greater(t, report.Matches[1].Score, report.Matches[2].Score)
}

func TestFindSimilar_NoSelfExclusion(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{
		{Title: "Books", Description: "Help fund books"},
	}, nil)
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float64{{1, 0}}, nil)
	embedder.On("Embed", mock.Anything, mock.Anything).Return([]float64{1, 0}, nil)

	// Re-checking a campaign against itself returns the self-match.
	report, err := svc.FindSimilar(context.Background(), "Books", "Help fund books", 3, 0.3)
	require.NoError(t, err)
	require.Len(t, report.Matches, 1)
	assert.InDelta(t, 1.0, report.Matches[0].Score, 1e-12)
}

func TestFindSimilar_RanksRelatedCampaignsFirst(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	corpus := []domain.CorpusEntry{
		{Title: "Books for rural schools", Description: "Help fund books for children in remote villages", Status: domain.CampaignStatusFunded},
		{Title: "Clean water wells", Description: "Dig wells to bring clean water to dry regions", Status: domain.CampaignStatusActive},
		{Title: "Books for rural colleges", Description: "Donate books and learning material to colleges", Status: domain.CampaignStatusFunded},
	}
	repo.On("Snapshot", mock.Anything).Return(corpus, nil)

	// Embeddings shaped like a real sentence model would place them: the two
	// book campaigns near the query, the wells campaign nearly orthogonal.
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float64{
		{0.9, 0.1, 0.05},
		{0.05, 0.9, 0.1},
		{0.85, 0.05, 0.2},
	}, nil)
	embedder.On("Embed", mock.Anything, mock.Anything).Return([]float64{0.95, 0.05, 0.1}, nil)

	report, err := svc.FindSimilar(context.Background(),
		"Books for remote colleges and schools",
		"Help us raise funds to donate learning materials", 3, 0.3)
	require.NoError(t, err)
	require.Len(t, report.Matches, 2)

	titles := []string{report.Matches[0].Title, report.Matches[1].Title}
	assert.Contains(t, titles, "Books for rural schools")
	assert.Contains(t, titles, "Books for rural colleges")
	for _, m := range report.Matches {
		assert.Greater(t, m.Score, 0.3)
	}
}

func TestFindSimilar_NegativeThresholdHonored(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{
		{Title: "aligned", Description: "a"},
		{Title: "opposed", Description: "b"},
	}, nil)

	// Against query [1,0]: [1,0] scores 1, [-1,0] scores -1. A negative
	// threshold must not be coerced to the default.
	embedder.On("EmbedBatch", mock.Anything, mock.Anything).Return([][]float64{
		{1, 0},
		{-1, 0},
	}, nil)
	embedder.On("Embed", mock.Anything, mock.Anything).Return([]float64{1, 0}, nil)

	report, err := svc.FindSimilar(context.Background(), "query", "text", 5, -2)
	require.NoError(t, err)
	require.Len(t, report.Matches, 2)
	assert.Equal(t, "aligned", report.Matches[0].Title)
	assert.Equal(t, 1.0, report.Matches[0].Score)
	assert.Equal(t, "opposed", report.Matches[1].Title)
	assert.Equal(t, -1.0, report.Matches[1].Score)
}

func TestRefreshEmbeddings(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{
		{Title: "a", Description: "b"},
		{Title: "c", Description: "d"},
	}, nil)
	embedder.On("EmbedBatch", mock.Anything, []string{"a b", "c d"}).Return([][]float64{{1}, {2}}, nil)

	vecs, err := svc.RefreshEmbeddings(context.Background())
	require.NoError(t, err)
	assert.Len(t, vecs, 2)
}

func TestRefreshEmbeddings_EmptyCorpus(t *testing.T) {
	repo := new(testutil.MockCampaignRepo)
	embedder := new(testutil.MockEmbedder)
	svc := NewSimilarityService(repo, embedder)

	repo.On("Snapshot", mock.Anything).Return([]domain.CorpusEntry{}, nil)

	vecs, err := svc.RefreshEmbeddings(context.Background())
	require.NoError(t, err)
	assert.Nil(t, vecs)
	embedder.AssertNotCalled(t, "EmbedBatch")
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, cosineSimilarity([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, 0.0, cosineSimilarity([]float64{1, 0}, []float64{0, 1}), 1e-12)
	assert.InDelta(t, -1.0, cosineSimilarity([]float64{1, 0}, []float64{-1, 0}), 1e-12)

	// Degenerate inputs collapse to 0 instead of NaN.
	assert.Equal(t, 0.0, cosineSimilarity([]float64{0, 0}, []float64{1, 1}))
	assert.Equal(t, 0.0, cosineSimilarity([]float64{1}, []float64{1, 2}))
	assert.Equal(t, 0.0, cosineSimilarity(nil, nil))
}
