package dto

import "github.com/yigit/mentoraid/internal/app/models"

// RiskScoreRequest is the input of the production scoring rule.
// Missing numbers score as zero.
type RiskScoreRequest struct {
	Attendance   *float64         `json:"attendance" example:"72"`
	AverageMarks *float64         `json:"averageMarks" example:"64"`
	FeeStatus    models.FeeStatus `json:"feeStatus" binding:"omitempty,oneof=paid pending overdue" example:"pending"`
}

// RiskScoreResponse is the scoring result
type RiskScoreResponse struct {
	RiskScore int              `json:"riskScore" example:"36"`
	RiskLevel models.RiskLevel `json:"riskLevel" example:"low" enums:"low,medium,high"`
}
