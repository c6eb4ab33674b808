package domain

// SimilarityMatch is one corpus campaign ranked against a query. Score is
// cosine similarity; for natural-language text with the embedding backends we
// use it lands in [0, 1].
type SimilarityMatch struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// SimilarityStatus tells the caller why a report may be empty. Degraded
// lookups are an expected condition, never an error.
type SimilarityStatus string

const (
	SimilarityStatusOK                  SimilarityStatus = "ok"
	SimilarityStatusEmptyCorpus         SimilarityStatus = "empty_corpus"
	SimilarityStatusEmbedderUnavailable SimilarityStatus = "embedder_unavailable"
)

type SimilarityReport struct {
	Matches []SimilarityMatch `json:"matches"`
	Status  SimilarityStatus  `json:"status"`
}

// Prediction is the displayed success estimate for a campaign. Trained is
// false when no model artifact exists yet; Probability is 0 in that case and
// Feedback carries the untrained notice.
type Prediction struct {
	Probability float64 `json:"probability"`
	Feedback    string  `json:"feedback"`
	Trained     bool    `json:"trained"`
}
