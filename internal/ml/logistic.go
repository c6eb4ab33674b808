package ml

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

const (
	logisticLearningRate = 0.1
	logisticIterations   = 1000
)

// Logistic is a binary logistic-regression classifier fit by full-batch
// gradient descent. Training touches samples in input order with no
// shuffling, so a given corpus always yields the same weights.
type Logistic struct {
	Weights []float64 `json:"weights"`
	Bias    float64   `json:"bias"`
}

// FitLogistic trains on standardized features with labels in {0, 1}.
func FitLogistic(samples [][]float64, labels []int) *Logistic {
	dims := len(samples[0])
	m := &Logistic{Weights: make([]float64, dims)}

	n := float64(len(samples))
	gradW := make([]float64, dims)

	for iter := 0; iter < logisticIterations; iter++ {
		for j := range gradW {
			gradW[j] = 0
		}
		gradB := 0.0

		for i, x := range samples {
			p := m.PredictProba(x)
			diff := p - float64(labels[i])
			for j := range x {
				gradW[j] += diff * x[j]
			}
			gradB += diff
		}

		floats.AddScaled(m.Weights, -logisticLearningRate/n, gradW)
		m.Bias -= logisticLearningRate / n * gradB
	}

	return m
}

// PredictProba returns P(label=1) for one standardized feature vector.
func (m *Logistic) PredictProba(features []float64) float64 {
	return sigmoid(floats.Dot(m.Weights, features) + m.Bias)
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
