package ml

import (
	"math/rand"
	"sort"
)

const (
	// ForestSize and ForestSeed are fixed so retraining the same corpus
	// reproduces the same ensemble bit for bit.
	ForestSize = 100
	ForestSeed = 42

	maxTreeDepth = 10
)

// Forest is a bagged ensemble of binary decision trees. Each tree is grown
// on a bootstrap resample of the training set; the ensemble probability is
// the mean of the per-tree leaf probabilities.
type Forest struct {
	Trees []*TreeNode `json:"trees"`
}

// TreeNode is either an internal split (Left/Right set) or a leaf carrying
// P(label=1) over the training samples that reached it.
type TreeNode struct {
	Feature   int       `json:"feature,omitempty"`
	Threshold float64   `json:"threshold,omitempty"`
	Left      *TreeNode `json:"left,omitempty"`
	Right     *TreeNode `json:"right,omitempty"`
	Leaf      bool      `json:"leaf,omitempty"`
	Prob      float64   `json:"prob"`
}

// FitForest trains size trees on bootstrap resamples drawn from a
// deterministic source seeded with seed.
func FitForest(samples [][]float64, labels []int, size int, seed int64) *Forest {
	rng := rand.New(rand.NewSource(seed))
	n := len(samples)

	f := &Forest{Trees: make([]*TreeNode, 0, size)}
	for t := 0; t < size; t++ {
		bootX := make([][]float64, n)
		bootY := make([]int, n)
		for i := 0; i < n; i++ {
			k := rng.Intn(n)
			bootX[i] = samples[k]
			bootY[i] = labels[k]
		}
		f.Trees = append(f.Trees, growTree(bootX, bootY, 0))
	}
	return f
}

// PredictProba returns the mean P(label=1) across all trees.
func (f *Forest) PredictProba(features []float64) float64 {
	if len(f.Trees) == 0 {
		return 0
	}
	sum := 0.0
	for _, t := range f.Trees {
		sum += t.predict(features)
	}
	return sum / float64(len(f.Trees))
}

func (n *TreeNode) predict(features []float64) float64 {
	for !n.Leaf {
		if features[n.Feature] <= n.Threshold {
			n = n.Left
		} else {
			n = n.Right
		}
	}
	return n.Prob
}

func growTree(samples [][]float64, labels []int, depth int) *TreeNode {
	positives := 0
	for _, y := range labels {
		positives += y
	}
	prob := float64(positives) / float64(len(labels))

	if positives == 0 || positives == len(labels) || depth >= maxTreeDepth {
		return &TreeNode{Leaf: true, Prob: prob}
	}

	feature, threshold, ok := bestSplit(samples, labels)
	if !ok {
		return &TreeNode{Leaf: true, Prob: prob}
	}

	var leftX, rightX [][]float64
	var leftY, rightY []int
	for i, x := range samples {
		if x[feature] <= threshold {
			leftX = append(leftX, x)
			leftY = append(leftY, labels[i])
		} else {
			rightX = append(rightX, x)
			rightY = append(rightY, labels[i])
		}
	}

	return &TreeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      growTree(leftX, leftY, depth+1),
		Right:     growTree(rightX, rightY, depth+1),
	}
}

// bestSplit scans every feature for the threshold with the lowest weighted
// Gini impurity. Candidate thresholds are midpoints between consecutive
// distinct values, so ties resolve identically on every run.
func bestSplit(samples [][]float64, labels []int) (int, float64, bool) {
	dims := len(samples[0])
	bestGini := gini(labels)
	bestFeature, bestThreshold := -1, 0.0

	values := make([]float64, 0, len(samples))
	for j := 0; j < dims; j++ {
		values = values[:0]
		for _, x := range samples {
			values = append(values, x[j])
		}
		sort.Float64s(values)

		for i := 1; i < len(values); i++ {
			if values[i] == values[i-1] {
				continue
			}
			threshold := (values[i] + values[i-1]) / 2

			var leftY, rightY []int
			for k, x := range samples {
				if x[j] <= threshold {
					leftY = append(leftY, labels[k])
				} else {
					rightY = append(rightY, labels[k])
				}
			}

			nl, nr := float64(len(leftY)), float64(len(rightY))
			weighted := (nl*gini(leftY) + nr*gini(rightY)) / (nl + nr)
			if weighted < bestGini {
				bestGini = weighted
				bestFeature = j
				bestThreshold = threshold
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, false
	}
	return bestFeature, bestThreshold, true
}

func gini(labels []int) float64 {
	if len(labels) == 0 {
		return 0
	}
	positives := 0
	for _, y := range labels {
		positives += y
	}
	p := float64(positives) / float64(len(labels))
	return 2 * p * (1 - p)
}
