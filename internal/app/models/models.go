package models

// RoleType defines the dashboard user role
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleMentor  RoleType = "mentor"
	RoleTeacher RoleType = "teacher"
)

// FeeStatus is the categorical fee state of a student
type FeeStatus string

const (
	FeePaid    FeeStatus = "paid"
	FeePending FeeStatus = "pending"
	FeeOverdue FeeStatus = "overdue"
)

// FeeStatuses lists every fee status in generator draw order
var FeeStatuses = []FeeStatus{FeePaid, FeePending, FeeOverdue}

// Valid reports whether the fee status is one of the known states
func (s FeeStatus) Valid() bool {
	switch s {
	case FeePaid, FeePending, FeeOverdue:
		return true
	}
	return false
}

// RiskLevel is the three-way classification of a risk score
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// RiskLevels lists the risk levels from lowest to highest
var RiskLevels = []RiskLevel{RiskLow, RiskMedium, RiskHigh}

// Valid reports whether the risk level is one of the known levels
func (l RiskLevel) Valid() bool {
	switch l {
	case RiskLow, RiskMedium, RiskHigh:
		return true
	}
	return false
}

// Departments and Classes are the fixed enumerations the roster draws from
var (
	Departments = []string{"Science", "Arts", "Commerce", "Technology"}
	Classes     = []string{"10A", "10B", "11A", "11B", "12A", "12B"}
)
