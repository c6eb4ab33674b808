// Package ml implements the small supervised-learning toolkit behind the
// campaign success predictor: feature standardization, logistic regression
// and a bagged decision-tree forest. Every model is deterministic for fixed
// inputs and serializes to JSON for artifact persistence.
package ml

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance using the
// statistics of the corpus it was fit on. The fitted scaler is persisted
// with each classifier and reused unmodified at inference time.
type Scaler struct {
	Means   []float64 `json:"means"`
	StdDevs []float64 `json:"stddevs"`
}

// FitScaler computes per-column mean and population standard deviation.
// Columns with zero variance scale by 1 so constant features pass through
// centered.
func FitScaler(samples [][]float64) (*Scaler, error) {
	if len(samples) == 0 {
		return nil, fmt.Errorf("fit scaler: no samples")
	}

	dims := len(samples[0])
	column := make([]float64, len(samples))
	s := &Scaler{
		Means:   make([]float64, dims),
		StdDevs: make([]float64, dims),
	}

	for j := 0; j < dims; j++ {
		for i, row := range samples {
			if len(row) != dims {
				return nil, fmt.Errorf("fit scaler: sample %d has %d features, want %d", i, len(row), dims)
			}
			column[i] = row[j]
		}
		s.Means[j] = stat.Mean(column, nil)
		s.StdDevs[j] = stat.PopStdDev(column, nil)
		if s.StdDevs[j] == 0 {
			s.StdDevs[j] = 1
		}
	}

	return s, nil
}

// Transform standardizes a single feature vector.
func (s *Scaler) Transform(features []float64) []float64 {
	scaled := make([]float64, len(features))
	for j, v := range features {
		scaled[j] = (v - s.Means[j]) / s.StdDevs[j]
	}
	return scaled
}

// TransformAll standardizes a batch of feature vectors.
func (s *Scaler) TransformAll(samples [][]float64) [][]float64 {
	scaled := make([][]float64, len(samples))
	for i, row := range samples {
		scaled[i] = s.Transform(row)
	}
	return scaled
}
