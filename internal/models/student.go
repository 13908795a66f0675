package models

import "time"

type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// PerformanceEntry is one month of the student's history.
type PerformanceEntry struct {
	Month      string  `json:"month"`
	GPA        float64 `json:"gpa"`
	Attendance float64 `json:"attendance"`
}

type Student struct {
	ID                   string             `json:"id"`
	UserID               string             `json:"userId,omitempty"`
	StudentID            string             `json:"studentId"`
	FirstName            string             `json:"firstName"`
	LastName             string             `json:"lastName"`
	Email                string             `json:"email"`
	Grade                string             `json:"grade"`
	Section              string             `json:"section"`
	Subjects             []string           `json:"subjects"`
	Attendance           float64            `json:"attendance"`
	CurrentGPA           float64            `json:"currentGPA"`
	RiskLevel            RiskLevel          `json:"riskLevel"`
	EnrollmentDate       string             `json:"enrollmentDate"`
	PerformanceHistory   []PerformanceEntry `json:"performanceHistory"`
	Badges               []string           `json:"badges"`
	Streak               int                `json:"streak"`
	StudyHours           float64            `json:"studyHours"`
	AssignmentsCompleted int                `json:"assignmentsCompleted"`
	TotalAssignments     int                `json:"totalAssignments"`
	CreatedAt            time.Time          `json:"createdAt"`
	UpdatedAt            time.Time          `json:"updatedAt"`
}

type StudentFilter struct {
	Grade     string
	Section   string
	RiskLevel string
}

// StudentStats is the aggregate returned by /api/students/stats.
type StudentStats struct {
	TotalStudents     int            `json:"totalStudents"`
	RiskDistribution  map[string]int `json:"riskDistribution"`
	AverageGPA        float64        `json:"averageGPA"`
	AverageAttendance float64        `json:"averageAttendance"`
	AtRiskCount       int            `json:"atRiskCount"`
}
