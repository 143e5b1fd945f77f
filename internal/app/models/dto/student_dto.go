package dto

import "github.com/yigit/mentoraid/internal/app/models"

// StudentFilter selects a view of the roster. Empty or "all" values do not filter.
type StudentFilter struct {
	Search     string `form:"search" json:"search,omitempty" example:"emma"`
	RiskLevel  string `form:"riskLevel" json:"riskLevel,omitempty" binding:"omitempty,oneof=all low medium high" example:"high"`
	Class      string `form:"class" json:"class,omitempty" example:"10A"`
	Department string `form:"department" json:"department,omitempty" example:"Science"`
}

// StudentListResponse is a page of the filtered roster
type StudentListResponse struct {
	Students   []models.Student `json:"students"`
	Pagination PaginationInfo   `json:"pagination"`
}

// MetricStatus is a traffic-light band for a percentage metric
type MetricStatus string

const (
	MetricGood     MetricStatus = "good"
	MetricWarning  MetricStatus = "warning"
	MetricCritical MetricStatus = "critical"
)

// MetricBand is a metric value with its band
type MetricBand struct {
	Value  int          `json:"value" example:"72"`
	Status MetricStatus `json:"status" example:"warning" enums:"good,warning,critical"`
}

// GradeEntry is one subject grade in the detail view
type GradeEntry struct {
	Subject string `json:"subject" example:"Mathematics"`
	Grade   string `json:"grade" example:"B+"`
	Score   int    `json:"score" example:"87"`
}

// MonthValue is one point of a monthly series
type MonthValue struct {
	Month string `json:"month" example:"January"`
	Value int    `json:"value" example:"85"`
}

// StudentMetrics is the academic summary shown for one student
type StudentMetrics struct {
	Attendance        MetricBand   `json:"attendance"`
	AverageMarks      MetricBand   `json:"averageMarks"`
	FeeStatus         string       `json:"feeStatus" example:"Pending"`
	RecentGrades      []GradeEntry `json:"recentGrades"`
	AttendanceHistory []MonthValue `json:"attendanceHistory"`
}

// ProgressPoint is one month of a progress series compared to a reference line
type ProgressPoint struct {
	Month     string `json:"month" example:"Aug"`
	Value     int    `json:"value" example:"92"`
	Reference int    `json:"reference" example:"80"`
}

// SubjectProgress compares the current and previous term for a subject
type SubjectProgress struct {
	Subject     string `json:"subject" example:"Math"`
	Current     int    `json:"current" example:"72"`
	Previous    int    `json:"previous" example:"68"`
	Improvement int    `json:"improvement" example:"4"`
}

// RiskPoint is the risk score on a given day
type RiskPoint struct {
	Date      string `json:"date" example:"2024-01-01"`
	RiskScore int    `json:"riskScore" example:"78"`
}

// StudentProgress holds the progress charts of the detail view. The last
// point of each time series is the student's current value.
type StudentProgress struct {
	Attendance []ProgressPoint   `json:"attendance"`
	Academic   []ProgressPoint   `json:"academic"`
	Subjects   []SubjectProgress `json:"subjects"`
	RiskTrend  []RiskPoint       `json:"riskTrend"`
}

// StudentDetailResponse combines a record with its metrics
type StudentDetailResponse struct {
	Student  models.Student  `json:"student"`
	Metrics  StudentMetrics  `json:"metrics"`
	Progress StudentProgress `json:"progress"`
}
