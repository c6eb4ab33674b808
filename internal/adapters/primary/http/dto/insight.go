package dto

import (
	"fundraising-service/internal/core/domain"
)

type SimilarityRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type SimilarityMatchResponse struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

type SimilarityReportResponse struct {
	Matches []SimilarityMatchResponse `json:"matches"`
	Status  string                    `json:"status"`
}

type PredictionRequest struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	TargetAmount float64 `json:"target_amount"`
}

type PredictionResponse struct {
	Probability float64 `json:"probability"`
	Feedback    string  `json:"feedback"`
	Trained     bool    `json:"trained"`
}

type TrainResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

func ToSimilarityReportResponse(r *domain.SimilarityReport) SimilarityReportResponse {
	matches := make([]SimilarityMatchResponse, 0, len(r.Matches))
	for _, m := range r.Matches {
		matches = append(matches, SimilarityMatchResponse{
			Title:       m.Title,
			Description: m.Description,
			Score:       m.Score,
		})
	}
	return SimilarityReportResponse{
		Matches: matches,
		Status:  string(r.Status),
	}
}

func ToPredictionResponse(p *domain.Prediction) PredictionResponse {
	return PredictionResponse{
		Probability: p.Probability,
		Feedback:    p.Feedback,
		Trained:     p.Trained,
	}
}
