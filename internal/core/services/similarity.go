package services

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"fundraising-service/internal/core/domain"
	"fundraising-service/internal/core/ports/output"
)

// Similarity lookup defaults, used when a caller passes zero values.
const (
	DefaultTopK      = 3
	DefaultThreshold = 0.3
)

// SimilarityService ranks existing campaigns by semantic closeness to a
// candidate (title, description) pair. Every lookup reads a fresh corpus
// snapshot and recomputes embeddings; nothing is cached.
type SimilarityService struct {
	repo     ports.CampaignRepository
	embedder ports.Embedder
}

func NewSimilarityService(repo ports.CampaignRepository, embedder ports.Embedder) *SimilarityService {
	return &SimilarityService{repo: repo, embedder: embedder}
}

// FindSimilar returns at most topK corpus campaigns scoring strictly above
// threshold, sorted by score descending with insertion order kept on ties.
// A topK <= 0 or a threshold of exactly 0 selects the default; negative
// thresholds are honored, since cosine scores span [-1, 1]. An empty corpus
// or an unavailable embedder degrades to an empty report with the reason in
// Status; neither is an error. The candidate itself is not excluded if its
// exact text already exists in the corpus.
func (s *SimilarityService) FindSimilar(ctx context.Context, title, description string, topK int, threshold float64) (*domain.SimilarityReport, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if threshold == 0 {
		threshold = DefaultThreshold
	}

	corpus, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot corpus: %w", err)
	}
	if len(corpus) == 0 {
		log.Info("similarity lookup on empty corpus")
		return &domain.SimilarityReport{
			Matches: []domain.SimilarityMatch{},
			Status:  domain.SimilarityStatusEmptyCorpus,
		}, nil
	}

	texts := make([]string, len(corpus))
	for i, entry := range corpus {
		texts[i] = entry.Text()
	}

	corpusVecs, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return s.degradedReport(err), nil
	}

	queryVec, err := s.embedder.Embed(ctx, title+" "+description)
	if err != nil {
		return s.degradedReport(err), nil
	}

	matches := make([]domain.SimilarityMatch, 0, len(corpus))
	for i, vec := range corpusVecs {
		score := cosineSimilarity(queryVec, vec)
		if score > threshold {
			matches = append(matches, domain.SimilarityMatch{
				Title:       corpus[i].Title,
				Description: corpus[i].Description,
				Score:       score,
			})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}

	return &domain.SimilarityReport{
		Matches: matches,
		Status:  domain.SimilarityStatusOK,
	}, nil
}

// RefreshEmbeddings recomputes the full corpus embedding batch. It is used
// to pre-warm the embedding backend after a store mutation; there is no
// caching side effect, every lookup still embeds from scratch.
func (s *SimilarityService) RefreshEmbeddings(ctx context.Context) ([][]float64, error) {
	corpus, err := s.repo.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot corpus: %w", err)
	}
	if len(corpus) == 0 {
		log.Info("no campaigns to refresh embeddings for")
		return nil, nil
	}

	texts := make([]string, len(corpus))
	for i, entry := range corpus {
		texts[i] = entry.Text()
	}

	vecs, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("refresh embeddings: %w", err)
	}

	log.WithField("count", len(vecs)).Info("corpus embeddings refreshed")
	return vecs, nil
}

func (s *SimilarityService) degradedReport(err error) *domain.SimilarityReport {
	log.WithError(err).Warn("similarity lookup degraded: embedder unavailable")
	return &domain.SimilarityReport{
		Matches: []domain.SimilarityMatch{},
		Status:  domain.SimilarityStatusEmbedderUnavailable,
	}
}

// cosineSimilarity returns the cosine of the angle between two vectors, or 0
// when either has zero magnitude or the dimensions disagree.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	dot := floats.Dot(a, b)
	na := floats.Norm(a, 2)
	nb := floats.Norm(b, 2)
	if na == 0 || nb == 0 {
		return 0
	}

	return dot / (na * nb)
}
