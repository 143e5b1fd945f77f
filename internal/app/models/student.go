package models

import "time"

// Student is one synthetic roster record. Records are never mutated after
// generation; repositories hand out copies.
type Student struct {
	ID           string    `json:"id" example:"1"`
	Name         string    `json:"name" example:"Emma Thompson"`
	Email        string    `json:"email" example:"emma.thompson@school.edu"`
	StudentID    string    `json:"studentId" example:"STU0001"`
	Class        string    `json:"class" example:"10A"`
	Department   string    `json:"department" example:"Science"`
	Attendance   int       `json:"attendance" example:"72"`
	AverageMarks int       `json:"averageMarks" example:"64"`
	FeeStatus    FeeStatus `json:"feeStatus" example:"pending" enums:"paid,pending,overdue"`
	RiskLevel    RiskLevel `json:"riskLevel" example:"low" enums:"low,medium,high"`
	RiskScore    int       `json:"riskScore" example:"31"`
	LastActivity time.Time `json:"lastActivity" example:"2024-01-15T10:00:00Z"`
}
