package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"fundraising-service/internal/core/domain"
	"fundraising-service/internal/core/ports/output"
	"fundraising-service/internal/ml"
)

// Artifact families. Each family persists exactly its fitted classifier
// together with the scaler it was trained with.
const (
	FamilyLogistic = "logistic"
	FamilyForest   = "forest"
)

const minTrainingCorpus = 3

// trainedArtifact is the persisted blob format, format-significant: the
// (classifier, scaler) pair per family, overwritten wholesale on retrain.
type trainedArtifact struct {
	Family    string       `json:"family"`
	TrainedAt time.Time    `json:"trained_at"`
	Scaler    *ml.Scaler   `json:"scaler"`
	Logistic  *ml.Logistic `json:"logistic,omitempty"`
	Forest    *ml.Forest   `json:"forest,omitempty"`
}

// PredictorService estimates how likely a campaign is to reach its target.
// Training fits a logistic regression and a bagged tree forest over three
// simple features; inference takes the higher of the two probabilities and
// post-processes it into the displayed score.
type PredictorService struct {
	repo      ports.CampaignRepository
	artifacts ports.ArtifactStore
}

func NewPredictorService(repo ports.CampaignRepository, artifacts ports.ArtifactStore) *PredictorService {
	return &PredictorService{repo: repo, artifacts: artifacts}
}

// Train refits both classifier families over the current corpus snapshot and
// overwrites the persisted artifacts. Two gates skip training without
// touching prior artifacts: fewer than 3 campaigns, or all campaigns sharing
// one outcome class. Gates log and return nil; they are not errors.
func (s *PredictorService) Train(ctx context.Context) error {
	_, err := s.TrainReport(ctx)
	return err
}

// TrainReport is Train with the gate outcome surfaced: skipped is the gate
// reason, empty when the ensemble was actually refit.
func (s *PredictorService) TrainReport(ctx context.Context) (skipped string, err error) {
	corpus, err := s.repo.Snapshot(ctx)
	if err != nil {
		return "", fmt.Errorf("snapshot corpus: %w", err)
	}

	if len(corpus) < minTrainingCorpus {
		log.WithField("corpus_size", len(corpus)).Info(domain.ErrCorpusTooSmall.Error())
		return domain.ErrCorpusTooSmall.Error(), nil
	}

	samples := make([][]float64, len(corpus))
	labels := make([]int, len(corpus))
	positives := 0
	for i, entry := range corpus {
		samples[i] = featureVector(entry.Title, entry.Description, entry.TargetAmount)
		// Funded is the success class; Active and Closed both count as
		// not-funded.
		if entry.Status == domain.CampaignStatusFunded {
			labels[i] = 1
			positives++
		}
	}

	if positives == 0 || positives == len(corpus) {
		log.WithFields(log.Fields{
			"corpus_size": len(corpus),
			"funded":      positives,
		}).Info(domain.ErrSingleClassCorpus.Error())
		return domain.ErrSingleClassCorpus.Error(), nil
	}

	scaler, err := ml.FitScaler(samples)
	if err != nil {
		return "", fmt.Errorf("fit scaler: %w", err)
	}
	scaled := scaler.TransformAll(samples)

	now := time.Now().UTC()

	logistic := &trainedArtifact{
		Family:    FamilyLogistic,
		TrainedAt: now,
		Scaler:    scaler,
		Logistic:  ml.FitLogistic(scaled, labels),
	}
	forest := &trainedArtifact{
		Family:    FamilyForest,
		TrainedAt: now,
		Scaler:    scaler,
		Forest:    ml.FitForest(scaled, labels, ml.ForestSize, ml.ForestSeed),
	}

	if err := s.saveArtifact(logistic); err != nil {
		return "", err
	}
	if err := s.saveArtifact(forest); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{
		"corpus_size": len(corpus),
		"funded":      positives,
	}).Info("classifier ensemble trained")
	return "", nil
}

// Predict returns the displayed success score and feedback for a candidate
// campaign. When either artifact is missing it returns the neutral untrained
// result instead of an error; a corrupt artifact does propagate.
func (s *PredictorService) Predict(ctx context.Context, title, description string, targetAmount float64) (*domain.Prediction, error) {
	logistic, err := s.loadArtifact(FamilyLogistic)
	if errors.Is(err, domain.ErrModelNotTrained) {
		return untrainedPrediction(), nil
	}
	if err != nil {
		return nil, err
	}

	forest, err := s.loadArtifact(FamilyForest)
	if errors.Is(err, domain.ErrModelNotTrained) {
		return untrainedPrediction(), nil
	}
	if err != nil {
		return nil, err
	}

	// The scaler fitted at training time, never refit here.
	scaled := logistic.Scaler.Transform(featureVector(title, description, targetAmount))

	raw := math.Max(
		logistic.Logistic.PredictProba(scaled),
		forest.Forest.PredictProba(scaled),
	)

	p := boostScore(raw, title, description, targetAmount)

	return &domain.Prediction{
		Probability: p,
		Feedback:    feedbackFor(p),
		Trained:     true,
	}, nil
}

func (s *PredictorService) saveArtifact(a *trainedArtifact) error {
	blob, err := json.Marshal(a)
	if err != nil {
		return fmt.Errorf("marshal %s artifact: %w", a.Family, err)
	}
	if err := s.artifacts.Save(a.Family, blob); err != nil {
		return fmt.Errorf("save %s artifact: %w", a.Family, err)
	}
	return nil
}

func (s *PredictorService) loadArtifact(family string) (*trainedArtifact, error) {
	blob, err := s.artifacts.Load(family)
	if err != nil {
		if errors.Is(err, domain.ErrModelNotTrained) {
			return nil, err
		}
		return nil, fmt.Errorf("load %s artifact: %w", family, err)
	}

	var a trainedArtifact
	if err := json.Unmarshal(blob, &a); err != nil {
		return nil, fmt.Errorf("decode %s artifact: %w", family, err)
	}
	if a.Scaler == nil {
		return nil, fmt.Errorf("decode %s artifact: missing scaler", family)
	}
	if family == FamilyLogistic && a.Logistic == nil {
		return nil, fmt.Errorf("decode %s artifact: missing classifier", family)
	}
	if family == FamilyForest && a.Forest == nil {
		return nil, fmt.Errorf("decode %s artifact: missing classifier", family)
	}
	return &a, nil
}

// featureVector builds the three training features: title length,
// description length (both in characters) and the raw target amount.
func featureVector(title, description string, targetAmount float64) []float64 {
	return []float64{
		float64(utf8.RuneCountInString(title)),
		float64(utf8.RuneCountInString(description)),
		targetAmount,
	}
}

func untrainedPrediction() *domain.Prediction {
	return &domain.Prediction{
		Probability: 0,
		Feedback:    feedbackNotTrained,
		Trained:     false,
	}
}
