package dto

// InsightRequest carries optional free text for an insight. Only the syllabus
// kind reads it.
type InsightRequest struct {
	Input string `json:"input,omitempty" example:"Photosynthesis is the process..."`
}

// InsightResponse is generated text for a student
type InsightResponse struct {
	Kind      string `json:"kind" example:"risk_story" enums:"risk_story,resources,email_draft,intervention_plan,syllabus"`
	StudentID string `json:"studentId" example:"1"`
	Content   string `json:"content"`
}

// SendEmailRequest delivers an email draft to a guardian
type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email" example:"parent@example.com"`
	ToName  string `json:"toName,omitempty" example:"Mrs. Thompson"`
	Subject string `json:"subject" binding:"required,max=200" example:"Supporting Emma's Academic Journey"`
	Body    string `json:"body" binding:"required"`
}

// SendEmailResponse confirms delivery
type SendEmailResponse struct {
	StudentID string `json:"studentId" example:"1"`
	To        string `json:"to" example:"parent@example.com"`
	Delivered bool   `json:"delivered" example:"true"`
}
