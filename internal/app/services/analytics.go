package services

import (
	"math"

	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
)

// Metric band limits for attendance and marks
const (
	goodMetric    = 80
	warningMetric = 60
)

// attendanceTrend is the school-wide monthly attendance chart
var attendanceTrend = []dto.MonthValue{
	{Month: "Jan", Value: 85},
	{Month: "Feb", Value: 82},
	{Month: "Mar", Value: 78},
	{Month: "Apr", Value: 75},
	{Month: "May", Value: 73},
	{Month: "Jun", Value: 76},
}

var recentGrades = []dto.GradeEntry{
	{Subject: "Mathematics", Grade: "B+", Score: 87},
	{Subject: "Science", Grade: "A-", Score: 92},
	{Subject: "English", Grade: "B", Score: 78},
	{Subject: "History", Grade: "C+", Score: 72},
	{Subject: "Physics", Grade: "B+", Score: 85},
}

var subjectProgress = []dto.SubjectProgress{
	{Subject: "Math", Current: 72, Previous: 68, Improvement: 4},
	{Subject: "Science", Current: 85, Previous: 82, Improvement: 3},
	{Subject: "English", Current: 78, Previous: 75, Improvement: 3},
	{Subject: "History", Current: 69, Previous: 71, Improvement: -2},
	{Subject: "Physics", Current: 74, Previous: 70, Improvement: 4},
}

// ComputeStats derives the headline counters. At-risk means medium or high;
// pending fees counts pending and overdue.
func ComputeStats(students []models.Student) dto.DashboardStats {
	stats := dto.DashboardStats{TotalStudents: len(students)}
	if len(students) == 0 {
		return stats
	}

	attendance := 0
	for _, st := range students {
		if st.RiskLevel != models.RiskLow {
			stats.AtRiskStudents++
		}
		if st.FeeStatus != models.FeePaid {
			stats.PendingFees++
		}
		attendance += st.Attendance
	}
	stats.AverageAttendance = int(math.Round(float64(attendance) / float64(len(students))))
	return stats
}

// ComputeCharts builds the dashboard chart series. Departments appear in the
// order they are first seen in the roster.
func ComputeCharts(students []models.Student) dto.DashboardCharts {
	charts := dto.DashboardCharts{
		DepartmentRisk:  []dto.DepartmentRisk{},
		AttendanceTrend: append([]dto.MonthValue(nil), attendanceTrend...),
	}

	index := make(map[string]int)
	for _, st := range students {
		i, ok := index[st.Department]
		if !ok {
			i = len(charts.DepartmentRisk)
			index[st.Department] = i
			charts.DepartmentRisk = append(charts.DepartmentRisk, dto.DepartmentRisk{Department: st.Department})
		}

		dept := &charts.DepartmentRisk[i]
		switch st.RiskLevel {
		case models.RiskHigh:
			charts.RiskDistribution.High++
			dept.High++
		case models.RiskMedium:
			charts.RiskDistribution.Medium++
			dept.Medium++
		default:
			charts.RiskDistribution.Low++
			dept.Low++
		}
	}
	return charts
}

// MetricStatusFor bands a percentage: >=80 good, >=60 warning, else critical
func MetricStatusFor(value int) dto.MetricStatus {
	switch {
	case value >= goodMetric:
		return dto.MetricGood
	case value >= warningMetric:
		return dto.MetricWarning
	default:
		return dto.MetricCritical
	}
}

// FeeStatusLabel is the display label of a fee status
func FeeStatusLabel(status models.FeeStatus) string {
	switch status {
	case models.FeePaid:
		return "Paid"
	case models.FeePending:
		return "Pending"
	case models.FeeOverdue:
		return "Overdue"
	default:
		return string(status)
	}
}

// BuildStudentMetrics assembles the academic summary of a student
func BuildStudentMetrics(st models.Student) dto.StudentMetrics {
	return dto.StudentMetrics{
		Attendance:   dto.MetricBand{Value: st.Attendance, Status: MetricStatusFor(st.Attendance)},
		AverageMarks: dto.MetricBand{Value: st.AverageMarks, Status: MetricStatusFor(st.AverageMarks)},
		FeeStatus:    FeeStatusLabel(st.FeeStatus),
		RecentGrades: append([]dto.GradeEntry(nil), recentGrades...),
		AttendanceHistory: []dto.MonthValue{
			{Month: "January", Value: 85},
			{Month: "February", Value: 78},
			{Month: "March", Value: 72},
			{Month: "April", Value: 68},
			{Month: "May", Value: st.Attendance},
		},
	}
}

// BuildStudentProgress assembles the progress charts of a student. Every time
// series ends on the student's current value.
func BuildStudentProgress(st models.Student) dto.StudentProgress {
	return dto.StudentProgress{
		Attendance: progressSeries(80, []int{92, 89, 85, 78, 72, st.Attendance}),
		Academic:   progressSeries(78, []int{82, 79, 76, 73, 70, st.AverageMarks}),
		Subjects:   append([]dto.SubjectProgress(nil), subjectProgress...),
		RiskTrend: []dto.RiskPoint{
			{Date: "2024-01-01", RiskScore: 78},
			{Date: "2024-01-05", RiskScore: 75},
			{Date: "2024-01-10", RiskScore: 72},
			{Date: "2024-01-15", RiskScore: 68},
			{Date: "2024-01-20", RiskScore: st.RiskScore},
		},
	}
}

var progressMonths = []string{"Aug", "Sep", "Oct", "Nov", "Dec", "Jan"}

func progressSeries(reference int, values []int) []dto.ProgressPoint {
	points := make([]dto.ProgressPoint, len(values))
	for i, v := range values {
		points[i] = dto.ProgressPoint{Month: progressMonths[i], Value: v, Reference: reference}
	}
	return points
}
