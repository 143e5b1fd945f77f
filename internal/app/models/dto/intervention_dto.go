package dto

// CreateInterventionRequest logs a new intervention for a student. Title and
// description are checked by the service so the dashboard gets one message
// for both.
type CreateInterventionRequest struct {
	Type        string `json:"type" binding:"omitempty,oneof=meeting call email resource plan" example:"meeting"`
	Title       string `json:"title" example:"Parent-Teacher Conference"`
	Description string `json:"description" example:"Discussed attendance concerns with parents."`
	Outcome     string `json:"outcome" binding:"omitempty,oneof=completed pending scheduled" example:"pending"`
}
