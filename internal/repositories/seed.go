package repositories

import (
	"time"

	"github.com/google/uuid"

	"gradevision/internal/models"
)

// SeedSampleData loads the demo cohort into empty stores. Used by the
// in-memory mode so the dashboard has something to render out of the box.
func SeedSampleData(students StudentRepository, alerts AlertRepository) error {
	existing, err := students.List(models.StudentFilter{})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	for i := range sampleStudents {
		s := sampleStudents[i]
		s.ID = uuid.NewString()
		if err := students.Create(&s); err != nil {
			return err
		}
	}
	for i := range sampleAlerts {
		a := sampleAlerts[i]
		a.ID = uuid.NewString()
		if err := alerts.Create(&a); err != nil {
			return err
		}
	}
	return nil
}

var sampleStudents = []models.Student{
	{
		StudentID: "STU001", FirstName: "Alex", LastName: "Johnson",
		Email: "alex.johnson@student.edu", Grade: "10", Section: "A",
		Subjects:   []string{"Mathematics", "Physics", "Chemistry", "English", "Computer Science"},
		Attendance: 92, CurrentGPA: 3.7, RiskLevel: models.RiskLow,
		EnrollmentDate: "2024-08-15",
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 3.5, Attendance: 95},
			{Month: "Oct", GPA: 3.6, Attendance: 92},
			{Month: "Nov", GPA: 3.7, Attendance: 90},
			{Month: "Dec", GPA: 3.7, Attendance: 92},
		},
		Badges: []string{"Perfect Attendance", "Math Wizard", "Quick Learner"},
		Streak: 15, StudyHours: 28, AssignmentsCompleted: 45, TotalAssignments: 48,
	},
	{
		StudentID: "STU002", FirstName: "Sarah", LastName: "Williams",
		Email: "sarah.williams@student.edu", Grade: "10", Section: "B",
		Subjects:   []string{"Mathematics", "Biology", "Chemistry", "English", "History"},
		Attendance: 78, CurrentGPA: 2.8, RiskLevel: models.RiskMedium,
		EnrollmentDate: "2024-08-15",
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 3.2, Attendance: 88},
			{Month: "Oct", GPA: 3.0, Attendance: 82},
			{Month: "Nov", GPA: 2.9, Attendance: 75},
			{Month: "Dec", GPA: 2.8, Attendance: 78},
		},
		Badges: []string{"Team Player", "Creative Thinker"},
		Streak: 5, StudyHours: 18, AssignmentsCompleted: 38, TotalAssignments: 48,
	},
	{
		StudentID: "STU003", FirstName: "Michael", LastName: "Chen",
		Email: "michael.chen@student.edu", Grade: "11", Section: "A",
		Subjects:   []string{"Advanced Mathematics", "Physics", "Computer Science", "English", "Economics"},
		Attendance: 96, CurrentGPA: 3.9, RiskLevel: models.RiskLow,
		EnrollmentDate: "2023-08-20",
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 3.8, Attendance: 98},
			{Month: "Oct", GPA: 3.85, Attendance: 95},
			{Month: "Nov", GPA: 3.9, Attendance: 97},
			{Month: "Dec", GPA: 3.9, Attendance: 96},
		},
		Badges: []string{"Honor Roll", "Science Star", "Perfect Attendance", "Coding Champion"},
		Streak: 30, StudyHours: 35, AssignmentsCompleted: 50, TotalAssignments: 50,
	},
	{
		StudentID: "STU004", FirstName: "Emily", LastName: "Davis",
		Email: "emily.davis@student.edu", Grade: "9", Section: "C",
		Subjects:   []string{"Mathematics", "Biology", "English", "Art", "Geography"},
		Attendance: 65, CurrentGPA: 2.3, RiskLevel: models.RiskHigh,
		EnrollmentDate: "2024-08-15",
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 2.8, Attendance: 80},
			{Month: "Oct", GPA: 2.6, Attendance: 72},
			{Month: "Nov", GPA: 2.4, Attendance: 65},
			{Month: "Dec", GPA: 2.3, Attendance: 65},
		},
		Badges: []string{"Art Enthusiast"},
		Streak: 2, StudyHours: 12, AssignmentsCompleted: 30, TotalAssignments: 48,
	},
	{
		StudentID: "STU005", FirstName: "James", LastName: "Brown",
		Email: "james.brown@student.edu", Grade: "12", Section: "A",
		Subjects:   []string{"Calculus", "Physics", "Chemistry", "English Literature", "Psychology"},
		Attendance: 88, CurrentGPA: 3.4, RiskLevel: models.RiskLow,
		EnrollmentDate: "2022-08-18",
		PerformanceHistory: []models.PerformanceEntry{
			{Month: "Sep", GPA: 3.3, Attendance: 90},
			{Month: "Oct", GPA: 3.35, Attendance: 88},
			{Month: "Nov", GPA: 3.4, Attendance: 86},
			{Month: "Dec", GPA: 3.4, Attendance: 88},
		},
		Badges: []string{"Senior Leader", "Consistent Performer", "Mentor"},
		Streak: 12, StudyHours: 25, AssignmentsCompleted: 44, TotalAssignments: 48,
	},
}

var sampleAlerts = []models.Alert{
	{
		StudentID: "STU004", Type: models.AlertAttendance, Severity: "high",
		Title:          "Critical Attendance Drop",
		Message:        "Emily Davis has missed 5 consecutive classes. Attendance dropped below 70%.",
		ActionRequired: true,
		CreatedAt:      time.Now().Add(-2 * time.Hour),
	},
	{
		StudentID: "STU002", Type: models.AlertPerformance, Severity: "medium",
		Title:          "GPA Decline Detected",
		Message:        "Sarah Williams GPA has declined by 0.4 points over the last 2 months.",
		ActionRequired: true,
		CreatedAt:      time.Now().Add(-5 * time.Hour),
	},
	{
		StudentID: "STU003", Type: models.AlertAchievement, Severity: "low",
		Title:     "New Achievement Unlocked",
		Message:   "Michael Chen has earned the \"30 Day Streak\" badge!",
		Read:      true,
		CreatedAt: time.Now().Add(-24 * time.Hour),
	},
	{
		StudentID: "STU001", Type: models.AlertRecommendation, Severity: "low",
		Title:     "Study Recommendation",
		Message:   "Based on recent performance, Alex Johnson might benefit from additional practice in Organic Chemistry.",
		CreatedAt: time.Now().Add(-48 * time.Hour),
	},
	{
		StudentID: "STU004", Type: models.AlertIntervention, Severity: "high",
		Title:          "Intervention Required",
		Message:        "Emily Davis performance prediction shows high risk of failing the semester. Immediate intervention recommended.",
		ActionRequired: true,
		CreatedAt:      time.Now().Add(-1 * time.Hour),
	},
}
