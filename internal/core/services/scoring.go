package services

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display-score bounds. The floor means a campaign never shows below 33%;
// jitter may lift a clamped score up to 0.99 but never past it.
const (
	scoreFloor  = 0.33
	scoreCeil   = 0.98
	scoreJitMax = 0.99
)

const feedbackNotTrained = "Model not found. Train first."

// boostScore turns a raw ensemble probability into the displayed score:
// piecewise band rescaling, clamp to [0.33, 0.98], then a deterministic
// per-campaign jitter so distinct campaigns with equal raw probabilities
// still display distinct scores. Pure function of its four inputs.
func boostScore(raw float64, title, description string, targetAmount float64) float64 {
	p := raw
	switch {
	case raw < 0.10:
		p = raw*1.8 + 0.12
	case raw < 0.30:
		p = raw*1.6 + 0.18
	case raw < 0.50:
		p = raw*1.4 + 0.22
	case raw > 0.85:
		p = math.Min(raw+0.06, scoreJitMax)
	}

	p = math.Min(math.Max(p, scoreFloor), scoreCeil)

	return math.Min(p+scoreJitter(title, description, targetAmount), scoreJitMax)
}

// scoreJitter hashes the lowercased "title_description_target" string and
// maps the first 8 hex digits to [0, 0.00999].
func scoreJitter(title, description string, targetAmount float64) float64 {
	raw := strings.ToLower(fmt.Sprintf("%s_%s_%s",
		title, description, strconv.FormatFloat(targetAmount, 'g', -1, 64)))

	digest := sha256.Sum256([]byte(raw))
	value, _ := strconv.ParseUint(hex.EncodeToString(digest[:4]), 16, 64)

	return float64(value%1000) / 100000
}

// feedbackFor bands the final boosted probability into reviewer feedback.
// Band lower bounds are inclusive.
func feedbackFor(p float64) string {
	switch {
	case p >= 0.9:
		return "This campaign is very clear and has a strong chance of being funded."
	case p >= 0.7:
		return "The campaign looks solid and just needs wider reach."
	case p >= 0.5:
		return "There is potential, but the story could use more clarity or emotion."
	default:
		return "Consider refining your goal or improving how the purpose is explained."
	}
}
