package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/mentoraid/internal/app/models"
	"github.com/yigit/mentoraid/internal/app/models/dto"
)

func TestComputeStats(t *testing.T) {
	stats := ComputeStats(testStudents())
	assert.Equal(t, dto.DashboardStats{
		TotalStudents:     4,
		AtRiskStudents:    2,
		AverageAttendance: 79, // (62+70+95+88)/4 = 78.75
		PendingFees:       2,
	}, stats)

	assert.Equal(t, dto.DashboardStats{}, ComputeStats(nil))
}

func TestComputeCharts(t *testing.T) {
	charts := ComputeCharts(testStudents())

	assert.Equal(t, dto.RiskDistribution{Low: 2, Medium: 1, High: 1}, charts.RiskDistribution)
	assert.Equal(t, []dto.DepartmentRisk{
		{Department: "Science", Low: 1, High: 1},
		{Department: "Arts", Medium: 1},
		{Department: "Commerce", Low: 1},
	}, charts.DepartmentRisk)
	require.Len(t, charts.AttendanceTrend, 6)
	assert.Equal(t, dto.MonthValue{Month: "Jan", Value: 85}, charts.AttendanceTrend[0])
}

func TestMetricStatusFor(t *testing.T) {
	assert.Equal(t, dto.MetricGood, MetricStatusFor(80))
	assert.Equal(t, dto.MetricWarning, MetricStatusFor(79))
	assert.Equal(t, dto.MetricWarning, MetricStatusFor(60))
	assert.Equal(t, dto.MetricCritical, MetricStatusFor(59))
}

func TestFeeStatusLabel(t *testing.T) {
	assert.Equal(t, "Paid", FeeStatusLabel(models.FeePaid))
	assert.Equal(t, "Pending", FeeStatusLabel(models.FeePending))
	assert.Equal(t, "Overdue", FeeStatusLabel(models.FeeOverdue))
}

func TestBuildStudentProgressEndsOnCurrentValues(t *testing.T) {
	st := testStudents()[0]
	progress := BuildStudentProgress(st)

	assert.Equal(t, dto.ProgressPoint{Month: "Jan", Value: st.Attendance, Reference: 80}, progress.Attendance[5])
	assert.Equal(t, dto.ProgressPoint{Month: "Jan", Value: st.AverageMarks, Reference: 78}, progress.Academic[5])
	assert.Equal(t, dto.ProgressPoint{Month: "Aug", Value: 92, Reference: 80}, progress.Attendance[0])
	assert.Len(t, progress.Subjects, 5)
}

func TestDashboardServiceReload(t *testing.T) {
	repos := newTestRepos(t)
	students := newTestStudentService(repos, &recordingPublisher{})
	svc := NewDashboardService(repos.RosterRepository, students, zerolog.Nop())
	ctx := context.Background()

	resp, err := svc.GetDashboard(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Stats.TotalStudents)

	resp, err = svc.GetDashboard(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 20, resp.Stats.TotalStudents)
	dist := resp.Charts.RiskDistribution
	assert.Equal(t, 20, dist.Low+dist.Medium+dist.High)
}
