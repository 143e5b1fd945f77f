package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
)

func ptr(v float64) *float64 { return &v }

func TestRiskServiceScore(t *testing.T) {
	svc := NewRiskService()

	got := svc.Score(dto.RiskScoreRequest{Attendance: ptr(40), AverageMarks: ptr(30), FeeStatus: models.FeeOverdue})
	// (100-40)*0.6 + (100-30)*0.4 + 15 = 36 + 28 + 15
	assert.Equal(t, dto.RiskScoreResponse{RiskScore: 79, RiskLevel: models.RiskHigh}, got)

	got = svc.Score(dto.RiskScoreRequest{Attendance: ptr(100), AverageMarks: ptr(100), FeeStatus: models.FeePaid})
	assert.Equal(t, dto.RiskScoreResponse{RiskScore: 0, RiskLevel: models.RiskLow}, got)
}

func TestRiskServiceScoreMissingNumbers(t *testing.T) {
	svc := NewRiskService()

	got := svc.Score(dto.RiskScoreRequest{FeeStatus: models.FeePaid})
	assert.Equal(t, dto.RiskScoreResponse{RiskScore: 100, RiskLevel: models.RiskHigh}, got)

	got = svc.Score(dto.RiskScoreRequest{Attendance: ptr(100)})
	assert.Equal(t, 40, got.RiskScore)
	assert.Equal(t, models.RiskLow, got.RiskLevel)
}

func TestRiskServicePredictDefaults(t *testing.T) {
	svc := NewRiskService()

	prediction := svc.Predict(svc.PredictorDefaults())
	assert.Equal(t, models.RiskLow, prediction.Risk)
}
