package models

import "time"

// InterventionType is the kind of support action taken
type InterventionType string

const (
	InterventionMeeting  InterventionType = "meeting"
	InterventionCall     InterventionType = "call"
	InterventionEmail    InterventionType = "email"
	InterventionResource InterventionType = "resource"
	InterventionPlan     InterventionType = "plan"
)

// InterventionOutcome is the state of an intervention
type InterventionOutcome string

const (
	OutcomeCompleted InterventionOutcome = "completed"
	OutcomePending   InterventionOutcome = "pending"
	OutcomeScheduled InterventionOutcome = "scheduled"
)

// Intervention is one entry of a student's intervention history
type Intervention struct {
	ID          string              `json:"id"`
	StudentID   string              `json:"studentId"`
	Date        time.Time           `json:"date"`
	Type        InterventionType    `json:"type" enums:"meeting,call,email,resource,plan"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Outcome     InterventionOutcome `json:"outcome" enums:"completed,pending,scheduled"`
	Mentor      string              `json:"mentor"`
}
