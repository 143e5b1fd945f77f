// Package risk holds the two dropout-risk heuristics used by the dashboard:
// the roster score over attendance, marks and fee status, and the
// rule-based predictor over the enrollment form. They use different inputs
// and weights and are deliberately kept apart.
package risk

import (
	"math"

	"github.com/yigit/mentoraid/internal/app/models"
)

// Classification thresholds shared by both heuristics
const (
	HighThreshold   = 70
	MediumThreshold = 50
)

const (
	attendanceWeight = 0.6
	academicWeight   = 0.4

	overduePenalty = 15
	pendingPenalty = 5

	// MaxNoise bounds the perturbation the mock generator adds to a score
	MaxNoise = 5.0
)

// Assessment is the result of scoring a student
type Assessment struct {
	Score int              `json:"score" example:"29"`
	Level models.RiskLevel `json:"level" example:"low"`
}

// Classify maps a score to its risk level: >=70 high, >=50 medium, else low.
func Classify(score int) models.RiskLevel {
	switch {
	case score >= HighThreshold:
		return models.RiskHigh
	case score >= MediumThreshold:
		return models.RiskMedium
	default:
		return models.RiskLow
	}
}

// FeePenalty returns the fixed score penalty for a fee status. Unknown
// statuses carry no penalty.
func FeePenalty(status models.FeeStatus) float64 {
	switch status {
	case models.FeeOverdue:
		return overduePenalty
	case models.FeePending:
		return pendingPenalty
	default:
		return 0
	}
}

// Score computes the deterministic roster risk score.
func Score(attendance, averageMarks float64, status models.FeeStatus) Assessment {
	return ScoreWithNoise(attendance, averageMarks, status, 0)
}

// ScoreWithNoise computes the roster risk score with an extra perturbation.
// The perturbation is only used by the mock generator and is bounded to
// [-MaxNoise, MaxNoise].
func ScoreWithNoise(attendance, averageMarks float64, status models.FeeStatus, noise float64) Assessment {
	raw := (100-percent(attendance))*attendanceWeight +
		(100-percent(averageMarks))*academicWeight +
		FeePenalty(status) +
		clampFloat(sanitize(noise), -MaxNoise, MaxNoise)

	score := int(clampFloat(math.Round(raw), 0, 100))
	return Assessment{Score: score, Level: Classify(score)}
}

// percent coerces malformed input into a usable percentage.
func percent(v float64) float64 {
	return clampFloat(sanitize(v), 0, 100)
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
