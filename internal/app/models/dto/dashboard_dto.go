package dto

// DashboardStats are the headline counters of the dashboard
type DashboardStats struct {
	TotalStudents     int `json:"totalStudents" example:"150"`
	AtRiskStudents    int `json:"atRiskStudents" example:"41"`
	AverageAttendance int `json:"averageAttendance" example:"80"`
	PendingFees       int `json:"pendingFees" example:"97"`
}

// RiskDistribution counts students per risk level
type RiskDistribution struct {
	Low    int `json:"low" example:"109"`
	Medium int `json:"medium" example:"33"`
	High   int `json:"high" example:"8"`
}

// DepartmentRisk counts students per risk level within one department
type DepartmentRisk struct {
	Department string `json:"department" example:"Science"`
	Low        int    `json:"low" example:"28"`
	Medium     int    `json:"medium" example:"8"`
	High       int    `json:"high" example:"2"`
}

// DashboardCharts holds the chart series
type DashboardCharts struct {
	RiskDistribution RiskDistribution `json:"riskDistribution"`
	DepartmentRisk   []DepartmentRisk `json:"departmentRisk"`
	AttendanceTrend  []MonthValue     `json:"attendanceTrend"`
}

// DashboardResponse is everything the overview page renders
type DashboardResponse struct {
	Stats  DashboardStats  `json:"stats"`
	Charts DashboardCharts `json:"charts"`
}
