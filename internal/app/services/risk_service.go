package services

import (
	"github.com/yigit/mentoraid/internal/app/models/dto"
	"github.com/yigit/mentoraid/internal/app/risk"
)

// RiskService exposes both risk heuristics
type RiskService interface {
	Score(req dto.RiskScoreRequest) dto.RiskScoreResponse
	Predict(in risk.PredictorInput) risk.Prediction
	PredictorDefaults() risk.PredictorInput
}

type riskServiceImpl struct{}

// NewRiskService creates a new RiskService
func NewRiskService() RiskService {
	return &riskServiceImpl{}
}

// Score applies the roster scoring rule without noise
func (s *riskServiceImpl) Score(req dto.RiskScoreRequest) dto.RiskScoreResponse {
	var attendance, marks float64
	if req.Attendance != nil {
		attendance = *req.Attendance
	}
	if req.AverageMarks != nil {
		marks = *req.AverageMarks
	}

	assessment := risk.Score(attendance, marks, req.FeeStatus)
	return dto.RiskScoreResponse{
		RiskScore: assessment.Score,
		RiskLevel: assessment.Level,
	}
}

// Predict runs the enrollment-form predictor
func (s *riskServiceImpl) Predict(in risk.PredictorInput) risk.Prediction {
	return risk.Predict(in)
}

// PredictorDefaults returns the form values the predictor page starts with
func (s *riskServiceImpl) PredictorDefaults() risk.PredictorInput {
	return risk.DefaultPredictorInput()
}
